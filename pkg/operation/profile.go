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

// ProfileParams describes a contour cut along closed wires. The tool
// centre follows the wire itself; there is no offsetting.
type ProfileParams struct {
	// Targets are wires or faces; a face contributes its outer wire and
	// then each inner wire.
	Targets []kernel.Shape
	// Depth below the stock surface. The sign is ignored.
	Depth gcode.Coord
	// StepDown is the largest depth cut in one pass. Zero or less cuts
	// the full depth in a single pass.
	StepDown float64
	// Name labels the operation in the program; defaults to "profile".
	Name string
}

// Profile cuts around each wire in input order, stepping down pass by
// pass, and retracts to the safe height between wires.
type Profile struct {
	name     string
	paths    [][]v2.Vec
	passes   []float64
	commands []gcode.Command
}

var _ job.Operation = (*Profile)(nil)

// NewProfile validates p against j and builds the command list. On error
// no Profile is returned.
func NewProfile(j *job.Job, p ProfileParams) (*Profile, error) {
	name := p.Name
	if name == "" {
		name = "profile"
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

	wires, err := profileWires(p.Targets)
	if err != nil {
		return nil, opError(name, err)
	}
	if len(wires) == 0 {
		return nil, opError(name, ErrNoTargets)
	}

	k := j.Kernel()
	cfg := j.Config()

	paths := make([][]v2.Vec, len(wires))
	for i, w := range wires {
		if len(w.Vertices) == 0 {
			return nil, opError(name, fmt.Errorf("wire %d: %w", i+1, kernel.ErrEmptyWire))
		}
		path := make([]v2.Vec, len(w.Vertices))
		for n, v := range w.Vertices {
			t := k.Transform(cfg.Frame, v)
			path[n] = v2.Vec{X: t.X, Y: t.Y}
		}
		paths[i] = path
	}

	passes := passDepths(p.Depth.V, p.StepDown)
	feed := gcode.Set(cfg.Feed)
	var cmds []gcode.Command
	for _, path := range paths {
		first := path[0]
		cmds = append(cmds,
			gcode.RapidTo(gcode.OnlyZ(cfg.SafeHeight)),
			gcode.RapidTo(gcode.XY(first.X, first.Y)),
			gcode.RapidTo(gcode.OnlyZ(0)),
		)
		for _, z := range passes {
			cmds = append(cmds, gcode.PlungeTo(z, feed))
			for _, v := range path[1:] {
				cmds = append(cmds, gcode.CutTo(gcode.XY(v.X, v.Y), feed))
			}
			// close the loop
			cmds = append(cmds, gcode.CutTo(gcode.XY(first.X, first.Y), feed))
		}
	}

	return &Profile{name: name, paths: paths, passes: passes, commands: cmds}, nil
}

// profileWires flattens targets into the wires to follow.
func profileWires(shapes []kernel.Shape) ([]kernel.Wire, error) {
	var wires []kernel.Wire
	for i, s := range shapes {
		switch shape := s.(type) {
		case kernel.Wire:
			wires = append(wires, shape)
		case kernel.Face:
			wires = append(wires, shape.Outer)
			wires = append(wires, shape.Inner...)
		default:
			kind := fmt.Sprintf("%T", s)
			if s != nil {
				kind = s.ShapeKind()
			}
			return nil, fmt.Errorf("target %d: %w: %s", i+1, ErrUnsupportedShape, kind)
		}
	}
	return wires, nil
}

// passDepths returns the Z level of each pass, ending exactly at
// -|depth|.
func passDepths(depth, step float64) []float64 {
	total := math.Abs(depth)
	if step <= 0 || step >= total {
		return []float64{-total}
	}
	n := int(math.Ceil(total/step - 1e-9))
	out := make([]float64, 0, n)
	for i := 1; i < n; i++ {
		out = append(out, -float64(i)*step)
	}
	return append(out, -total)
}

// Name implements job.Operation.
func (p *Profile) Name() string {
	return p.name
}

// Commands implements job.Operation.
func (p *Profile) Commands() []gcode.Command {
	return p.commands
}

// Paths returns the XY path of each wire in machine coordinates.
func (p *Profile) Paths() [][]v2.Vec {
	return p.paths
}

// Passes returns the Z level of each pass.
func (p *Profile) Passes() []float64 {
	return p.passes
}
