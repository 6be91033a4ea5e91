// Package job holds the shared, read-only configuration of a machining job
// and the ordered operations that belong to it.
package job

import (
	"fmt"
	"strings"

	"github.com/chazu/gcam/pkg/gcode"
	"github.com/chazu/gcam/pkg/kernel"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Unit is the program's length unit.
type Unit int

const (
	Metric   Unit = iota // G21, millimetres
	Imperial             // G20, inches
)

func (u Unit) String() string {
	switch u {
	case Metric:
		return "mm"
	case Imperial:
		return "inch"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// Precision returns the customary fractional digits for the unit.
func (u Unit) Precision() int {
	if u == Imperial {
		return 4
	}
	return gcode.DefaultPrecision
}

// ParseUnit maps "mm"/"metric" or "inch"/"in"/"imperial" to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(s) {
	case "mm", "metric":
		return Metric, nil
	case "inch", "in", "imperial":
		return Imperial, nil
	}
	return Metric, fmt.Errorf("invalid unit %q, expected mm or inch", s)
}

// Default configuration values.
const (
	DefaultFeed       = 300.0
	DefaultSafeHeight = 5.0
)

// Config is the job-wide configuration every operation reads.
type Config struct {
	Feed       float64       `json:"feed"`        // cutting feed, units per minute
	Speed      int           `json:"speed"`       // spindle rpm, 0 leaves S out
	SafeHeight float64       `json:"safe_height"` // Z retract plane between moves
	Precision  int           `json:"precision"`   // fractional digits of axis words
	Unit       Unit          `json:"unit"`
	Coolant    gcode.Coolant `json:"coolant"`
	Tool       int           `json:"tool"` // 0 skips the tool change
	Frame      kernel.Frame  `json:"frame"`
	// InitialPosition is where the machine is when the program starts.
	InitialPosition v3.Vec `json:"initial_position"`
}

// Default returns a metric configuration with default feed and safe height.
func Default() Config {
	return Config{
		Feed:       DefaultFeed,
		SafeHeight: DefaultSafeHeight,
		Precision:  gcode.DefaultPrecision,
		Unit:       Metric,
		Coolant:    gcode.CoolantOff,
	}
}

// Operation is one machining task that has already produced its commands.
type Operation interface {
	Name() string
	Commands() []gcode.Command
}

// Job is a configuration, a geometry kernel and an ordered list of
// operations. Operations read the configuration but never change it.
type Job struct {
	config     Config
	kernel     kernel.Kernel
	operations []Operation
}

// New creates a Job.
func New(cfg Config, k kernel.Kernel) *Job {
	return &Job{config: cfg, kernel: k}
}

// Config returns a copy of the job configuration.
func (j *Job) Config() Config {
	return j.config
}

// Kernel returns the geometry kernel.
func (j *Job) Kernel() kernel.Kernel {
	return j.kernel
}

// Add appends operations in program order.
func (j *Job) Add(ops ...Operation) {
	j.operations = append(j.operations, ops...)
}

// Operations returns the operations in program order.
func (j *Job) Operations() []Operation {
	return j.operations
}

// Validate checks the job configuration.
func (j *Job) Validate() []ValidationError {
	return Validate(j.config)
}
