// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx CAD library's vector and matrix types.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/gcam/pkg/kernel"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// areaEpsilon is the signed area below which a wire is treated as
// degenerate and its centroid falls back to the vertex average.
const areaEpsilon = 1e-12

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// frameMatrix builds the local-to-world matrix of f: rotate about X, Y
// then Z (degrees), then translate to the origin.
func frameMatrix(f kernel.Frame) sdf.M44 {
	xRad := f.Rotation.X * math.Pi / 180.0
	yRad := f.Rotation.Y * math.Pi / 180.0
	zRad := f.Rotation.Z * math.Pi / 180.0

	rot := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return sdf.Translate3d(f.Origin).Mul(rot)
}

// Transform maps p from frame-local into world coordinates.
func (k *SdfxKernel) Transform(f kernel.Frame, p v3.Vec) v3.Vec {
	if f.IsIdentity() {
		return p
	}
	return frameMatrix(f).MulPosition(p)
}

// ExtractTargets reduces each shape to its drillable points.
func (k *SdfxKernel) ExtractTargets(shapes []kernel.Shape) ([]v3.Vec, error) {
	var targets []v3.Vec
	for i, s := range shapes {
		switch shape := s.(type) {
		case kernel.Point:
			targets = append(targets, shape.Vec)
		case kernel.Wire:
			c, err := Centroid(shape)
			if err != nil {
				return nil, fmt.Errorf("shape %d: %w", i, err)
			}
			targets = append(targets, c)
		case kernel.Face:
			wires := shape.Inner
			if len(wires) == 0 {
				wires = []kernel.Wire{shape.Outer}
			}
			for _, w := range wires {
				c, err := Centroid(w)
				if err != nil {
					return nil, fmt.Errorf("shape %d: %w", i, err)
				}
				targets = append(targets, c)
			}
		default:
			kind := fmt.Sprintf("%T", s)
			if s != nil {
				kind = s.ShapeKind()
			}
			return nil, fmt.Errorf("shape %d: %w: %s", i, kernel.ErrUnsupportedShape, kind)
		}
	}
	return targets, nil
}

// Centroid returns the centroid of the planar region bounded by w. The XY
// position is the area centroid of the polygon; Z is the mean vertex
// height. Wires enclosing no area use the vertex average.
func Centroid(w kernel.Wire) (v3.Vec, error) {
	n := len(w.Vertices)
	if n == 0 {
		return v3.Vec{}, kernel.ErrEmptyWire
	}

	var area float64
	var weighted v2.Vec
	var mean v3.Vec
	for i, a := range w.Vertices {
		b := w.Vertices[(i+1)%n]
		cross := a.X*b.Y - b.X*a.Y
		area += cross
		weighted = weighted.Add(v2.Vec{X: a.X + b.X, Y: a.Y + b.Y}.MulScalar(cross))
		mean = mean.Add(a)
	}
	mean = mean.MulScalar(1 / float64(n))
	area /= 2

	if math.Abs(area) < areaEpsilon {
		return mean, nil
	}
	c := weighted.MulScalar(1 / (6 * area))
	return v3.Vec{X: c.X, Y: c.Y, Z: mean.Z}, nil
}
