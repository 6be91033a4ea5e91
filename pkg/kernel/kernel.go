// Package kernel defines the narrow geometry kernel interface the CAM
// core depends on. Implementations (sdfx) map local points into the
// machine frame and reduce shapes to drillable target points behind this
// interface, so operations never do kernel geometry themselves.
package kernel

import (
	"errors"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

var (
	// ErrUnsupportedShape is returned for shape kinds a kernel cannot reduce.
	ErrUnsupportedShape = errors.New("unsupported shape")
	// ErrEmptyWire is returned for a wire without vertices.
	ErrEmptyWire = errors.New("wire has no vertices")
)

// Frame maps local coordinates into the machine's world coordinates.
// Rotation holds Euler angles in degrees, applied about X, then Y, then Z,
// before the translation to Origin.
type Frame struct {
	Origin   v3.Vec `json:"origin"`
	Rotation v3.Vec `json:"rotation"`
}

// IsIdentity reports whether the frame leaves points unchanged.
func (f Frame) IsIdentity() bool {
	return f.Origin == (v3.Vec{}) && f.Rotation == (v3.Vec{})
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Transform maps p from frame-local into world coordinates.
	Transform(f Frame, p v3.Vec) v3.Vec

	// ExtractTargets returns one representative point per drillable
	// location: a point is itself, a wire is the centroid of the region it
	// bounds, and a face contributes the centroid of each inner wire, or
	// of its outer wire when it has none.
	ExtractTargets(shapes []Shape) ([]v3.Vec, error)
}
