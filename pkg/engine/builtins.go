package engine

import (
	"errors"
	"fmt"

	"github.com/chazu/gcam/pkg/gcode"
	"github.com/chazu/gcam/pkg/job"
	"github.com/chazu/gcam/pkg/kernel"
	"github.com/chazu/gcam/pkg/operation"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
)

// errJobSealed is returned by (job ...) once an operation exists.
var errJobSealed = errors.New("job: configuration is fixed once an operation has been added")

// jobBuilder collects the configuration and operations of one evaluation.
// The Job is created on the first operation; from then on the
// configuration is read-only.
type jobBuilder struct {
	kernel kernel.Kernel
	cfg    job.Config
	job    *job.Job
}

func newJobBuilder(k kernel.Kernel) *jobBuilder {
	return &jobBuilder{kernel: k, cfg: job.Default()}
}

// seal creates the Job if it does not exist yet.
func (b *jobBuilder) seal() *job.Job {
	if b.job == nil {
		b.job = job.New(b.cfg, b.kernel)
	}
	return b.job
}

func (b *jobBuilder) build() *job.Job {
	return b.seal()
}

// registerBuiltins installs the gcam DSL builtins into a zygomys environment.
// The builtins populate b during evaluation.
//
// Source must be preprocessed with preprocessSource() first so that :keyword
// tokens reach the builtins as recognizable strings.
func registerBuiltins(env *zygo.Zlisp, b *jobBuilder) {

	// -----------------------------------------------------------------------
	// (job :feed 300 :speed 12000 :safe-height 5 :unit :mm :coolant :flood
	//      :tool 1 :precision 3 :origin (vec3 ..) :rotation (vec3 ..)
	//      :start (vec3 ..))
	// -----------------------------------------------------------------------
	env.AddFunction("job", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if b.job != nil {
			return zygo.SexpNull, errJobSealed
		}
		pa := parseArgs(args)
		cfg := b.cfg

		if v, ok := pa.kw["feed"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("job: feed: %w", err)
			}
			cfg.Feed = f
		}
		if v, ok := pa.kw["speed"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("job: speed: %w", err)
			}
			cfg.Speed = n
		}
		if v, ok := pa.kw["safe-height"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("job: safe-height: %w", err)
			}
			cfg.SafeHeight = f
		}
		if v, ok := pa.kw["unit"]; ok {
			s, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("job: unit: %w", err)
			}
			u, err := job.ParseUnit(s)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("job: %w", err)
			}
			cfg.Unit = u
			cfg.Precision = u.Precision()
		}
		if v, ok := pa.kw["precision"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("job: precision: %w", err)
			}
			cfg.Precision = n
		}
		if v, ok := pa.kw["coolant"]; ok {
			s, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("job: coolant: %w", err)
			}
			c, err := gcode.ParseCoolant(s)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("job: %w", err)
			}
			cfg.Coolant = c
		}
		if v, ok := pa.kw["tool"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("job: tool: %w", err)
			}
			cfg.Tool = n
		}
		if v, ok := pa.kw["origin"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("job: origin: %w", err)
			}
			cfg.Frame.Origin = vec
		}
		if v, ok := pa.kw["rotation"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("job: rotation: %w", err)
			}
			cfg.Frame.Rotation = vec
		}
		if v, ok := pa.kw["start"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("job: start: %w", err)
			}
			cfg.InitialPosition = vec
		}

		b.cfg = cfg
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var xyz [3]float64
		for i, axis := range []string{"x", "y", "z"} {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %s: %w", axis, err)
			}
			xyz[i] = f
		}
		return &sexpVec3{vec: v3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (point 10 20) or (point 10 20 -1)
	// -----------------------------------------------------------------------
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 || len(args) > 3 {
			return zygo.SexpNull, fmt.Errorf("point requires 2 or 3 arguments, got %d", len(args))
		}
		var xyz [3]float64
		for i, arg := range args {
			f, err := toFloat64(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("point: argument %d: %w", i+1, err)
			}
			xyz[i] = f
		}
		return &sexpShape{shape: kernel.NewPoint(xyz[0], xyz[1], xyz[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (polygon (point 0 0) (point 10 0) (point 10 10))
	// -----------------------------------------------------------------------
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("polygon requires at least one vertex")
		}
		vs := make([]v3.Vec, len(args))
		for i, arg := range args {
			v, err := toVec3(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: vertex %d: %w", i+1, err)
			}
			vs[i] = v
		}
		return &sexpShape{shape: kernel.Polygon(vs...)}, nil
	})

	// -----------------------------------------------------------------------
	// (rect :center (point 0 0) :width 20 :height 10)
	// -----------------------------------------------------------------------
	env.AddFunction("rect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var center v3.Vec
		var w, h float64

		if v, ok := pa.kw["center"]; ok {
			c, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rect: center: %w", err)
			}
			center = c
		}
		if v, ok := pa.kw["width"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rect: width: %w", err)
			}
			w = f
		}
		if v, ok := pa.kw["height"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rect: height: %w", err)
			}
			h = f
		}

		wire, err := kernel.Rect(center, w, h)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpShape{shape: wire}, nil
	})

	// -----------------------------------------------------------------------
	// (circle :center (point 0 0) :radius 3 :segments 16)
	// -----------------------------------------------------------------------
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var center v3.Vec
		var r float64
		segments := kernel.DefaultCircleSegments

		if v, ok := pa.kw["center"]; ok {
			c, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: center: %w", err)
			}
			center = c
		}
		if v, ok := pa.kw["radius"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: radius: %w", err)
			}
			r = f
		}
		if v, ok := pa.kw["segments"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: segments: %w", err)
			}
			segments = n
		}

		wire, err := kernel.Circle(center, r, segments)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpShape{shape: wire}, nil
	})

	// -----------------------------------------------------------------------
	// (face (rect ...) (circle ...) (circle ...))
	// -----------------------------------------------------------------------
	env.AddFunction("face", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("face requires an outer wire")
		}
		outer, err := toWire(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("face: outer: %w", err)
		}
		f := kernel.Face{Outer: outer}
		for i := 1; i < len(args); i++ {
			w, err := toWire(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("face: hole %d: %w", i, err)
			}
			f.Inner = append(f.Inner, w)
		}
		return &sexpShape{shape: f}, nil
	})

	// -----------------------------------------------------------------------
	// (drill :depth 3 :targets (list (point 0 0) (point 10 0)) :dwell 0.5
	//        :name "pilot holes")
	// -----------------------------------------------------------------------
	env.AddFunction("drill", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var p operation.DrillParams

		if v, ok := pa.kw["targets"]; ok {
			targets, err := toTargets("drill", v)
			if err != nil {
				return zygo.SexpNull, err
			}
			p.Targets = targets
		}
		if v, ok := pa.kw["depth"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("drill: depth: %w", err)
			}
			p.Depth = gcode.Set(f)
		}
		if v, ok := pa.kw["dwell"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("drill: dwell: %w", err)
			}
			p.Dwell = f
		}
		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("drill: name: %w", err)
			}
			p.Name = s
		}

		j := b.seal()
		d, err := operation.NewDrill(j, p)
		if err != nil {
			return zygo.SexpNull, err
		}
		j.Add(d)

		return &sexpOpRef{name: d.Name(), index: len(j.Operations()) - 1}, nil
	})

	// -----------------------------------------------------------------------
	// (profile :depth 6 :targets (list (rect ...)) :step-down 2
	//          :name "outline")
	// -----------------------------------------------------------------------
	env.AddFunction("profile", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var p operation.ProfileParams

		if v, ok := pa.kw["targets"]; ok {
			targets, err := toTargets("profile", v)
			if err != nil {
				return zygo.SexpNull, err
			}
			p.Targets = targets
		}
		if v, ok := pa.kw["depth"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("profile: depth: %w", err)
			}
			p.Depth = gcode.Set(f)
		}
		if v, ok := pa.kw["step-down"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("profile: step-down: %w", err)
			}
			p.StepDown = f
		}
		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("profile: name: %w", err)
			}
			p.Name = s
		}

		j := b.seal()
		prof, err := operation.NewProfile(j, p)
		if err != nil {
			return zygo.SexpNull, err
		}
		j.Add(prof)

		return &sexpOpRef{name: prof.Name(), index: len(j.Operations()) - 1}, nil
	})
}
