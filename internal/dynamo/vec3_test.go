package dynamo

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}

	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"add", a.Add(b), Vec3{5, -3, 9}},
		{"sub", a.Sub(b), Vec3{-3, 7, -3}},
		{"scale", a.Scale(2), Vec3{2, 4, 6}},
		{"div", a.Div(2), Vec3{0.5, 1, 1.5}},
		{"cross", a.Cross(b), Vec3{27, 6, -13}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if d := a.Dot(b); d != 12 {
		t.Errorf("dot: got %f, want 12", d)
	}
}

func TestVec3CrossIsOrthogonal(t *testing.T) {
	a := Vec3{0.3, -1.2, 2.5}
	b := Vec3{4.1, 0.7, -0.9}
	c := a.Cross(b)

	if math.Abs(c.Dot(a)) > 1e-12 || math.Abs(c.Dot(b)) > 1e-12 {
		t.Errorf("cross product not orthogonal to inputs: %v", c)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 0, 4}.Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("expected unit length, got %f", n.Length())
	}
	if math.Abs(n.X-0.6) > 1e-12 || math.Abs(n.Z-0.8) > 1e-12 {
		t.Errorf("unexpected direction %v", n)
	}

	zero := Vec3{}.Normalize()
	if zero.IsFinite() {
		t.Errorf("normalizing the zero vector should not be finite, got %v", zero)
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("finite vector reported as non-finite")
	}
	if (Vec3{math.NaN(), 0, 0}).IsFinite() {
		t.Error("NaN component not detected")
	}
	if (Vec3{0, math.Inf(-1), 0}).IsFinite() {
		t.Error("Inf component not detected")
	}
}
