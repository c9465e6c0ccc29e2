package camera

import (
	"math"

	"github.com/san-kum/geodesic/internal/dynamo"
)

const (
	DefaultRadius = 15.0
	DefaultYaw    = 0.0
	DefaultPitch  = 0.3
	DefaultFOV    = 90.0

	MinRadius = 2.5
	MaxRadius = 200.0
	maxPitch  = 89.0 * math.Pi / 180.0

	DefaultMouseSensitivity  = 0.005
	DefaultScrollSensitivity = 1.2
	DefaultMoveSpeed         = 0.3
)

var worldUp = dynamo.Vec3{Y: 1}

// Orbit is a spherical camera revolving around Center. Pitch is clamped
// short of the poles so the basis never degenerates.
type Orbit struct {
	Yaw    float64
	Pitch  float64
	Radius float64
	Center dynamo.Vec3

	position dynamo.Vec3
	forward  dynamo.Vec3
	right    dynamo.Vec3
	up       dynamo.Vec3
	fovScale float64
}

// NewOrbit builds a camera with a field of view in degrees.
func NewOrbit(radius, yaw, pitch, fovDegrees float64) *Orbit {
	c := &Orbit{Yaw: yaw, Pitch: pitch, Radius: radius}
	c.SetFOV(fovDegrees)
	c.Update()
	return c
}

func NewDefault() *Orbit {
	return NewOrbit(DefaultRadius, DefaultYaw, DefaultPitch, DefaultFOV)
}

func (c *Orbit) SetFOV(degrees float64) {
	c.fovScale = math.Tan(degrees * math.Pi / 180.0 * 0.5)
}

// Update clamps pitch and radius and recomputes position and basis.
func (c *Orbit) Update() {
	c.Pitch = clamp(c.Pitch, -maxPitch, maxPitch)
	c.Radius = clamp(c.Radius, MinRadius, MaxRadius)

	sinP, cosP := math.Sincos(c.Pitch)
	sinY, cosY := math.Sincos(c.Yaw)

	c.position = dynamo.Vec3{
		X: c.Center.X + c.Radius*cosP*sinY,
		Y: c.Center.Y + c.Radius*sinP,
		Z: c.Center.Z + c.Radius*cosP*cosY,
	}

	c.forward = c.Center.Sub(c.position).Normalize()
	c.right = c.forward.Cross(worldUp).Normalize()
	c.up = c.right.Cross(c.forward).Normalize()
}

func (c *Orbit) Position() dynamo.Vec3 { return c.position }
func (c *Orbit) Forward() dynamo.Vec3  { return c.forward }
func (c *Orbit) Right() dynamo.Vec3    { return c.right }
func (c *Orbit) Up() dynamo.Vec3       { return c.up }

// Ray maps normalized screen coordinates u, v in [-1, 1] to a world ray.
// v = 1 is the top of the screen. The direction is unit length.
func (c *Orbit) Ray(u, v, aspect float64) (origin, dir dynamo.Vec3) {
	d := c.forward.
		Add(c.right.Scale(u * c.fovScale * aspect)).
		Add(c.up.Scale(v * c.fovScale))
	return c.position, d.Normalize()
}

// Orbit rotates the camera by a drag of dx, dy pixels.
func (c *Orbit) Orbit(dx, dy float64) {
	c.Yaw -= dx * DefaultMouseSensitivity
	c.Pitch += dy * DefaultMouseSensitivity
	c.Update()
}

// Zoom moves the camera along its radius by scroll notches.
func (c *Orbit) Zoom(notches float64) {
	c.Radius -= notches * DefaultScrollSensitivity
	c.Update()
}

// Pan moves the orbit center. forward and right are projected onto the
// equatorial plane; up moves along world Y.
func (c *Orbit) Pan(forward, right, up float64) {
	panForward := dynamo.Vec3{X: c.forward.X, Z: c.forward.Z}.Normalize()
	panRight := dynamo.Vec3{X: c.right.X, Z: c.right.Z}.Normalize()

	c.Center = c.Center.
		Add(panForward.Scale(forward * DefaultMoveSpeed)).
		Add(panRight.Scale(right * DefaultMoveSpeed)).
		Add(worldUp.Scale(up * DefaultMoveSpeed))
	c.Update()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
