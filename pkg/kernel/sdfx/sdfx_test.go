package sdfx

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/gcam/pkg/kernel"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const tol = 1e-9

func near(a, b v3.Vec) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func TestTransformIdentity(t *testing.T) {
	k := New()
	p := v3.Vec{X: 1, Y: 2, Z: 3}
	if got := k.Transform(kernel.Frame{}, p); got != p {
		t.Errorf("Transform(identity) = %v, want %v", got, p)
	}
}

func TestTransformTranslate(t *testing.T) {
	k := New()
	f := kernel.Frame{Origin: v3.Vec{X: 100, Y: 200, Z: 300}}
	got := k.Transform(f, v3.Vec{X: 1, Y: 2, Z: 3})
	want := v3.Vec{X: 101, Y: 202, Z: 303}
	if !near(got, want) {
		t.Errorf("Transform() = %v, want %v", got, want)
	}
}

func TestTransformRotate(t *testing.T) {
	k := New()

	// A point on +X rotated 90 degrees about Z lands on +Y, then moves
	// with the origin.
	f := kernel.Frame{Origin: v3.Vec{X: 10}, Rotation: v3.Vec{Z: 90}}
	got := k.Transform(f, v3.Vec{X: 5})
	want := v3.Vec{X: 10, Y: 5}
	if !near(got, want) {
		t.Errorf("Transform() = %v, want %v", got, want)
	}
}

func TestCentroidSquare(t *testing.T) {
	w, err := kernel.Rect(v3.Vec{X: 3, Y: -4, Z: 2}, 10, 6)
	if err != nil {
		t.Fatalf("Rect() error = %v", err)
	}
	c, err := Centroid(w)
	if err != nil {
		t.Fatalf("Centroid() error = %v", err)
	}
	if !near(c, v3.Vec{X: 3, Y: -4, Z: 2}) {
		t.Errorf("Centroid() = %v, want (3,-4,2)", c)
	}
}

func TestCentroidIsAreaWeighted(t *testing.T) {
	// An L-shape: the vertex average and the area centroid differ.
	w := kernel.Polygon(
		v3.Vec{X: 0, Y: 0},
		v3.Vec{X: 2, Y: 0},
		v3.Vec{X: 2, Y: 1},
		v3.Vec{X: 1, Y: 1},
		v3.Vec{X: 1, Y: 2},
		v3.Vec{X: 0, Y: 2},
	)
	c, err := Centroid(w)
	if err != nil {
		t.Fatalf("Centroid() error = %v", err)
	}
	// Three unit squares at (0.5,0.5), (1.5,0.5), (0.5,1.5).
	want := v3.Vec{X: 2.5 / 3, Y: 2.5 / 3}
	if !near(c, want) {
		t.Errorf("Centroid() = %v, want %v", c, want)
	}
}

func TestCentroidClockwiseWire(t *testing.T) {
	w := kernel.Polygon(
		v3.Vec{X: 0, Y: 0},
		v3.Vec{X: 0, Y: 4},
		v3.Vec{X: 4, Y: 4},
		v3.Vec{X: 4, Y: 0},
	)
	c, err := Centroid(w)
	if err != nil {
		t.Fatalf("Centroid() error = %v", err)
	}
	if !near(c, v3.Vec{X: 2, Y: 2}) {
		t.Errorf("Centroid() = %v, want (2,2,0)", c)
	}
}

func TestCentroidDegenerate(t *testing.T) {
	w := kernel.Polygon(v3.Vec{X: 0}, v3.Vec{X: 2}, v3.Vec{X: 4})
	c, err := Centroid(w)
	if err != nil {
		t.Fatalf("Centroid() error = %v", err)
	}
	if !near(c, v3.Vec{X: 2}) {
		t.Errorf("Centroid() = %v, want (2,0,0)", c)
	}
}

func TestCentroidEmpty(t *testing.T) {
	if _, err := Centroid(kernel.Wire{}); !errors.Is(err, kernel.ErrEmptyWire) {
		t.Errorf("Centroid(empty) error = %v, want ErrEmptyWire", err)
	}
}

func TestExtractTargets(t *testing.T) {
	k := New()

	outer, _ := kernel.Rect(v3.Vec{}, 100, 100)
	hole1, _ := kernel.Circle(v3.Vec{X: 10, Y: 10}, 2, 16)
	hole2, _ := kernel.Circle(v3.Vec{X: -10, Y: 20}, 3, 16)
	plain, _ := kernel.Rect(v3.Vec{X: 50, Y: 50}, 4, 4)
	wire, _ := kernel.Rect(v3.Vec{X: 7, Y: 8}, 2, 2)

	shapes := []kernel.Shape{
		kernel.NewPoint(1, 2, 3),
		wire,
		kernel.Face{Outer: outer, Inner: []kernel.Wire{hole1, hole2}},
		kernel.Face{Outer: plain},
	}
	got, err := k.ExtractTargets(shapes)
	if err != nil {
		t.Fatalf("ExtractTargets() error = %v", err)
	}
	want := []v3.Vec{
		{X: 1, Y: 2, Z: 3},
		{X: 7, Y: 8},
		{X: 10, Y: 10},
		{X: -10, Y: 20},
		{X: 50, Y: 50},
	}
	if len(got) != len(want) {
		t.Fatalf("ExtractTargets() returned %d targets, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !near(got[i], want[i]) {
			t.Errorf("target %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestExtractTargetsUnsupported(t *testing.T) {
	k := New()
	_, err := k.ExtractTargets([]kernel.Shape{&kernel.Point{}})
	if !errors.Is(err, kernel.ErrUnsupportedShape) {
		t.Errorf("error = %v, want ErrUnsupportedShape", err)
	}
}

func TestExtractTargetsEmptyWire(t *testing.T) {
	k := New()
	_, err := k.ExtractTargets([]kernel.Shape{kernel.Face{}})
	if !errors.Is(err, kernel.ErrEmptyWire) {
		t.Errorf("error = %v, want ErrEmptyWire", err)
	}
}
