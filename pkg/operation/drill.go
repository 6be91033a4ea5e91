package operation

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/gcam/pkg/gcode"
	"github.com/chazu/gcam/pkg/job"
	"github.com/chazu/gcam/pkg/kernel"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// DrillParams describes a drilling task.
type DrillParams struct {
	// Targets are points, wires or faces; each face contributes one hole
	// per inner wire, or its own centroid when it has none.
	Targets []kernel.Shape
	// Depth below the stock surface. The sign is ignored.
	Depth gcode.Coord
	// Dwell pauses at the bottom of each hole, in seconds. Zero skips it.
	Dwell float64
	// Name labels the operation in the program; defaults to "drill".
	Name string
}

// Drill drills every target once, visiting them in nearest-neighbour
// order.
type Drill struct {
	name     string
	holes    []v2.Vec
	commands []gcode.Command
}

// Compile-time interface check.
var _ job.Operation = (*Drill)(nil)

// NewDrill validates p against j, orders the holes and builds the command
// list. On error no Drill is returned.
func NewDrill(j *job.Job, p DrillParams) (*Drill, error) {
	name := p.Name
	if name == "" {
		name = "drill"
	}
	if p.Targets == nil {
		return nil, opError(name, ErrTargetsRequired)
	}
	if !p.Depth.Valid {
		return nil, opError(name, ErrDepthRequired)
	}
	if j == nil || j.Kernel() == nil {
		return nil, opError(name, errors.New("job has no geometry kernel"))
	}

	k := j.Kernel()
	cfg := j.Config()

	targets, err := k.ExtractTargets(p.Targets)
	if err != nil {
		if errors.Is(err, kernel.ErrUnsupportedShape) {
			return nil, opError(name, fmt.Errorf("%w: %w", ErrUnsupportedShape, err))
		}
		return nil, opError(name, err)
	}
	if len(targets) == 0 {
		return nil, opError(name, ErrNoTargets)
	}

	points := make([]v2.Vec, len(targets))
	for i, t := range targets {
		w := k.Transform(cfg.Frame, t)
		points[i] = v2.Vec{X: w.X, Y: w.Y}
	}
	holes := OrderNearest(points)

	depth := -math.Abs(p.Depth.V)
	feed := gcode.Set(cfg.Feed)
	perHole := 4
	if p.Dwell > 0 {
		perHole++
	}
	cmds := make([]gcode.Command, 0, perHole*len(holes))
	for _, h := range holes {
		cmds = append(cmds,
			gcode.RapidTo(gcode.OnlyZ(cfg.SafeHeight)),
			gcode.RapidTo(gcode.XY(h.X, h.Y)),
			gcode.RapidTo(gcode.OnlyZ(0)),
			gcode.PlungeTo(depth, feed),
		)
		if p.Dwell > 0 {
			cmds = append(cmds, gcode.Dwell(p.Dwell))
		}
	}

	return &Drill{name: name, holes: holes, commands: cmds}, nil
}

// Name implements job.Operation.
func (d *Drill) Name() string {
	return d.name
}

// Commands implements job.Operation.
func (d *Drill) Commands() []gcode.Command {
	return d.commands
}

// Holes returns the hole positions in visiting order.
func (d *Drill) Holes() []v2.Vec {
	return d.holes
}
