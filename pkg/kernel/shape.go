package kernel

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Shape is a resolved geometric input to an operation.
type Shape interface {
	// ShapeKind names the shape for error messages.
	ShapeKind() string
}

// Point is a single location.
type Point struct {
	v3.Vec
}

// ShapeKind implements Shape.
func (Point) ShapeKind() string { return "point" }

// Wire is a closed polyline. The closing edge from the last vertex back to
// the first is implicit.
type Wire struct {
	Vertices []v3.Vec
}

// ShapeKind implements Shape.
func (Wire) ShapeKind() string { return "wire" }

// Face is a planar region bounded by an outer wire, with optional holes.
type Face struct {
	Outer Wire
	Inner []Wire
}

// ShapeKind implements Shape.
func (Face) ShapeKind() string { return "face" }

// NewPoint returns a Point at (x, y, z).
func NewPoint(x, y, z float64) Point {
	return Point{v3.Vec{X: x, Y: y, Z: z}}
}

// Polygon returns a wire through the given vertices.
func Polygon(vertices ...v3.Vec) Wire {
	return Wire{Vertices: vertices}
}

// Rect returns an axis-aligned rectangle centered on center.
func Rect(center v3.Vec, width, height float64) (Wire, error) {
	if width <= 0 || height <= 0 {
		return Wire{}, fmt.Errorf("rect: width and height must be positive, got %gx%g", width, height)
	}
	hw, hh := width/2, height/2
	return Polygon(
		v3.Vec{X: center.X - hw, Y: center.Y - hh, Z: center.Z},
		v3.Vec{X: center.X + hw, Y: center.Y - hh, Z: center.Z},
		v3.Vec{X: center.X + hw, Y: center.Y + hh, Z: center.Z},
		v3.Vec{X: center.X - hw, Y: center.Y + hh, Z: center.Z},
	), nil
}

// DefaultCircleSegments is the polygon resolution used for circles.
const DefaultCircleSegments = 32

// Circle returns a regular polygon approximating a circle.
func Circle(center v3.Vec, radius float64, segments int) (Wire, error) {
	if radius <= 0 {
		return Wire{}, fmt.Errorf("circle: radius must be positive, got %g", radius)
	}
	if segments < 3 {
		return Wire{}, fmt.Errorf("circle: need at least 3 segments, got %d", segments)
	}
	vs := make([]v3.Vec, segments)
	for i := range vs {
		a := 2 * math.Pi * float64(i) / float64(segments)
		vs[i] = v3.Vec{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
			Z: center.Z,
		}
	}
	return Polygon(vs...), nil
}
