package kernel

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// --- Shape builder tests ---

func TestRect(t *testing.T) {
	w, err := Rect(v3.Vec{X: 10, Y: 20, Z: 1}, 4, 2)
	if err != nil {
		t.Fatalf("Rect() error = %v", err)
	}
	want := []v3.Vec{
		{X: 8, Y: 19, Z: 1},
		{X: 12, Y: 19, Z: 1},
		{X: 12, Y: 21, Z: 1},
		{X: 8, Y: 21, Z: 1},
	}
	if len(w.Vertices) != len(want) {
		t.Fatalf("Rect() has %d vertices, want %d", len(w.Vertices), len(want))
	}
	for i := range want {
		if w.Vertices[i] != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, w.Vertices[i], want[i])
		}
	}
}

func TestRectInvalid(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
	}{
		{"zero width", 0, 1},
		{"negative height", 1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Rect(v3.Vec{}, tt.width, tt.height); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCircle(t *testing.T) {
	w, err := Circle(v3.Vec{X: 5, Y: 5}, 2, 8)
	if err != nil {
		t.Fatalf("Circle() error = %v", err)
	}
	if len(w.Vertices) != 8 {
		t.Fatalf("Circle() has %d vertices, want 8", len(w.Vertices))
	}
	for i, v := range w.Vertices {
		r := math.Hypot(v.X-5, v.Y-5)
		if math.Abs(r-2) > 1e-9 {
			t.Errorf("vertex %d at radius %f, want 2", i, r)
		}
	}
	if _, err := Circle(v3.Vec{}, 1, 2); err == nil {
		t.Error("expected error for 2 segments")
	}
	if _, err := Circle(v3.Vec{}, 0, 8); err == nil {
		t.Error("expected error for zero radius")
	}
}

func TestShapeKinds(t *testing.T) {
	tests := []struct {
		shape Shape
		want  string
	}{
		{NewPoint(1, 2, 3), "point"},
		{Polygon(), "wire"},
		{Face{}, "face"},
	}
	for _, tt := range tests {
		if got := tt.shape.ShapeKind(); got != tt.want {
			t.Errorf("ShapeKind() = %q, want %q", got, tt.want)
		}
	}
}

func TestFrameIsIdentity(t *testing.T) {
	if !(Frame{}).IsIdentity() {
		t.Error("zero frame should be identity")
	}
	if (Frame{Origin: v3.Vec{Z: 1}}).IsIdentity() {
		t.Error("translated frame should not be identity")
	}
}

// --- Compile-time interface check with a stub kernel ---

// stubKernel passes points through and ignores other shapes.
type stubKernel struct{}

func (k *stubKernel) Transform(_ Frame, p v3.Vec) v3.Vec { return p }

func (k *stubKernel) ExtractTargets(shapes []Shape) ([]v3.Vec, error) {
	var out []v3.Vec
	for _, s := range shapes {
		if p, ok := s.(Point); ok {
			out = append(out, p.Vec)
		}
	}
	return out, nil
}

var _ Kernel = (*stubKernel)(nil)

func TestStubKernelExtractTargets(t *testing.T) {
	var k Kernel = &stubKernel{}
	got, err := k.ExtractTargets([]Shape{NewPoint(1, 2, 0), Polygon()})
	if err != nil {
		t.Fatalf("ExtractTargets() error = %v", err)
	}
	if len(got) != 1 || got[0] != (v3.Vec{X: 1, Y: 2}) {
		t.Errorf("ExtractTargets() = %v, want [(1,2,0)]", got)
	}
}
