package dynamo

import "math"

// Vec3 is a 3-component vector. Every operation returns a new value.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Length2() float64     { return v.Dot(v) }
func (v Vec3) Length() float64      { return math.Sqrt(v.Dot(v)) }

// Div multiplies by the reciprocal of s.
func (v Vec3) Div(s float64) Vec3 {
	inv := 1.0 / s
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Normalize returns the unit vector along v. The zero vector yields NaN
// components; callers must not normalize it.
func (v Vec3) Normalize() Vec3 {
	return v.Scale(1 / v.Length())
}

// IsFinite reports whether no component is NaN or Inf.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
