package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/geodesic/internal/dynamo"
)

const (
	DefaultMass         = 1.0
	DefaultEscapeRadius = 20.0
	DefaultStepSize     = 0.05
	DefaultDiskInner    = 2.6 // just outside the horizon
	DefaultDiskOuter    = 12.0
	DefaultMaxSteps     = 10000
)

// Params are the physical and numerical constants of one black hole scene.
type Params struct {
	Mass         float64
	EscapeRadius float64
	StepSize     float64
	DiskInner    float64
	DiskOuter    float64
	MaxSteps     int
}

func DefaultParams() Params {
	return Params{
		Mass:         DefaultMass,
		EscapeRadius: DefaultEscapeRadius,
		StepSize:     DefaultStepSize,
		DiskInner:    DefaultDiskInner,
		DiskOuter:    DefaultDiskOuter,
		MaxSteps:     DefaultMaxSteps,
	}
}

// SchwarzschildRadius returns RS = 2M.
func (p Params) SchwarzschildRadius() float64 {
	return 2 * p.Mass
}

// Map keys each parameter by its SetParam name.
func (p Params) Map() map[string]float64 {
	return map[string]float64{
		"mass":          p.Mass,
		"escape_radius": p.EscapeRadius,
		"step_size":     p.StepSize,
		"disk_inner":    p.DiskInner,
		"disk_outer":    p.DiskOuter,
		"max_steps":     float64(p.MaxSteps),
	}
}

// ParamsFromMap overlays named values on the defaults and validates the
// result as a whole.
func ParamsFromMap(m map[string]float64) (Params, error) {
	return DefaultParams().With(m)
}

// With returns a copy of p with the named values replaced.
func (p Params) With(m map[string]float64) (Params, error) {
	for name, value := range m {
		if err := p.set(name, value); err != nil {
			return Params{}, err
		}
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func (p *Params) set(name string, value float64) error {
	switch name {
	case "mass":
		p.Mass = value
	case "escape_radius":
		p.EscapeRadius = value
	case "step_size":
		p.StepSize = value
	case "disk_inner":
		p.DiskInner = value
	case "disk_outer":
		p.DiskOuter = value
	case "max_steps":
		p.MaxSteps = int(value)
	default:
		return fmt.Errorf("unknown parameter %q: %w", name, dynamo.ErrParameterBounds)
	}
	return nil
}

// Validate checks that every photon either terminates or is cut off by
// MaxSteps and that the disk annulus is not empty.
func (p Params) Validate() error {
	switch {
	case !(p.Mass > 0) || math.IsInf(p.Mass, 0):
		return fmt.Errorf("mass must be positive, got %g: %w", p.Mass, dynamo.ErrParameterBounds)
	case !(p.StepSize > 0) || math.IsInf(p.StepSize, 0):
		return fmt.Errorf("step size must be positive, got %g: %w", p.StepSize, dynamo.ErrParameterBounds)
	case !(p.EscapeRadius > p.SchwarzschildRadius()) || math.IsInf(p.EscapeRadius, 0):
		return fmt.Errorf("escape radius %g must exceed the Schwarzschild radius %g: %w",
			p.EscapeRadius, p.SchwarzschildRadius(), dynamo.ErrParameterBounds)
	case p.DiskInner < 0 || !(p.DiskOuter >= p.DiskInner):
		return fmt.Errorf("disk annulus [%g, %g] is empty: %w", p.DiskInner, p.DiskOuter, dynamo.ErrParameterBounds)
	case p.MaxSteps < 1:
		return fmt.Errorf("max steps must be at least 1, got %d: %w", p.MaxSteps, dynamo.ErrParameterBounds)
	}
	return nil
}

// Schwarzschild is a non-rotating, uncharged point mass at the origin.
type Schwarzschild struct {
	p Params
}

func NewSchwarzschild(p Params) *Schwarzschild {
	return &Schwarzschild{p: p}
}

func (s *Schwarzschild) Params() Params  { return s.p }
func (s *Schwarzschild) Radius() float64 { return s.p.SchwarzschildRadius() }
func (s *Schwarzschild) StateDim() int   { return dynamo.PhotonStateDim }
func (s *Schwarzschild) Mass() float64   { return s.p.Mass }
func (s *Schwarzschild) String() string  { return fmt.Sprintf("schwarzschild(M=%g)", s.p.Mass) }

// Acceleration returns the weak-field bending term pos * (-3·M·h²/r⁵) with
// h = pos × vel. pos must not be the zero vector.
func (s *Schwarzschild) Acceleration(pos, vel dynamo.Vec3) dynamo.Vec3 {
	r2 := pos.Dot(pos)
	r := math.Sqrt(r2)
	h := pos.Cross(vel)
	h2 := h.Dot(h)
	r5 := r2 * r2 * r

	return pos.Scale(-3.0 * s.p.Mass * h2 / r5)
}

// Derive implements dynamo.System over [x, y, z, vx, vy, vz].
func (s *Schwarzschild) Derive(x dynamo.State, _ float64) dynamo.State {
	pos := dynamo.Vec3{X: x[0], Y: x[1], Z: x[2]}
	vel := dynamo.Vec3{X: x[3], Y: x[4], Z: x[5]}
	a := s.Acceleration(pos, vel)
	return dynamo.State{vel.X, vel.Y, vel.Z, a.X, a.Y, a.Z}
}

// GetParams implements dynamo.Configurable
func (s *Schwarzschild) GetParams() map[string]float64 {
	return s.p.Map()
}

// SetParam implements dynamo.Configurable. The change is rejected if the
// resulting parameter set does not validate.
func (s *Schwarzschild) SetParam(name string, value float64) error {
	next := s.p
	if err := next.set(name, value); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	s.p = next
	return nil
}
