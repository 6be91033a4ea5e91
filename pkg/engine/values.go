package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/gcam/pkg/kernel"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values between builtins
// ---------------------------------------------------------------------------

// sexpVec3 wraps a position or rotation.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpShape wraps a kernel shape returned by point, polygon, rect, circle
// or face.
type sexpShape struct {
	shape kernel.Shape
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	switch sh := s.shape.(type) {
	case kernel.Point:
		return fmt.Sprintf("(point %g %g %g)", sh.X, sh.Y, sh.Z)
	case kernel.Wire:
		return fmt.Sprintf("(wire %d vertices)", len(sh.Vertices))
	case kernel.Face:
		return fmt.Sprintf("(face %d holes)", len(sh.Inner))
	}
	return "(" + s.shape.ShapeKind() + ")"
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// sexpOpRef is returned by operation builtins.
type sexpOpRef struct {
	name  string
	index int
}

func (o *sexpOpRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(operation %d %q)", o.index, o.name)
}
func (o *sexpOpRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			// Trailing keyword with no value.
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts a whole number. Floats are accepted when integral.
func toInt(s zygo.Sexp) (int, error) {
	f, err := toFloat64(s)
	if err != nil {
		return 0, err
	}
	// float64(math.MaxInt) rounds up to a power of two; the upper bound is exclusive.
	if f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
		return 0, fmt.Errorf("expected whole number, got %g", f)
	}
	return int(f), nil
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Both :flood and "flood" yield "flood".
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// toVec3 accepts a vec3 or a point.
func toVec3(s zygo.Sexp) (v3.Vec, error) {
	switch v := s.(type) {
	case *sexpVec3:
		return v.vec, nil
	case *sexpShape:
		if p, ok := v.shape.(kernel.Point); ok {
			return p.Vec, nil
		}
	}
	return v3.Vec{}, fmt.Errorf("expected vec3 or point, got %T (%s)", s, s.SexpString(nil))
}

// toShape extracts a kernel shape. A bare vec3 is read as a point.
func toShape(s zygo.Sexp) (kernel.Shape, error) {
	switch v := s.(type) {
	case *sexpShape:
		return v.shape, nil
	case *sexpVec3:
		return kernel.Point{Vec: v.vec}, nil
	}
	return nil, fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

// toTargets reads an operation's :targets value. A single shape is
// accepted in place of a list; an empty list yields an empty, non-nil
// slice.
func toTargets(op string, v zygo.Sexp) ([]kernel.Shape, error) {
	targets := []kernel.Shape{}
	items, err := sexpListToSlice(v)
	if err != nil {
		s, serr := toShape(v)
		if serr != nil {
			return nil, fmt.Errorf("%s: targets: %w", op, err)
		}
		return append(targets, s), nil
	}
	for i, item := range items {
		s, err := toShape(item)
		if err != nil {
			return nil, fmt.Errorf("%s: target %d: %w", op, i+1, err)
		}
		targets = append(targets, s)
	}
	return targets, nil
}

// toWire extracts a wire.
func toWire(s zygo.Sexp) (kernel.Wire, error) {
	if v, ok := s.(*sexpShape); ok {
		if w, ok := v.shape.(kernel.Wire); ok {
			return w, nil
		}
	}
	return kernel.Wire{}, fmt.Errorf("expected wire, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}
