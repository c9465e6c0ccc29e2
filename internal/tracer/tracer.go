package tracer

import (
	"math"

	"github.com/san-kum/geodesic/internal/dynamo"
	"github.com/san-kum/geodesic/internal/integrators"
	"github.com/san-kum/geodesic/internal/physics"
)

// Tracer classifies photons against one black hole. It holds no mutable
// state and may be shared by any number of goroutines as long as its
// stepper is stateless (integrators.RK4 and integrators.Euler are).
type Tracer struct {
	field   dynamo.Field
	stepper dynamo.PhotonStepper
	params  physics.Params
}

// New builds a tracer for bh. A nil stepper selects RK4.
func New(bh *physics.Schwarzschild, stepper dynamo.PhotonStepper) *Tracer {
	if stepper == nil {
		stepper = integrators.NewRK4()
	}
	return &Tracer{
		field:   bh,
		stepper: stepper,
		params:  bh.Params(),
	}
}

func (t *Tracer) Params() physics.Params { return t.params }

// Trace runs p to termination. It is the hot path used by the renderer.
func (t *Tracer) Trace(p dynamo.Photon) (HitRecord, error) {
	return t.follow(p, nil)
}

// Follow is Trace with observers notified of the initial state (step 0) and
// after every integration step.
func (t *Tracer) Follow(p dynamo.Photon, observers ...dynamo.Observer) (HitRecord, error) {
	return t.follow(p, observers)
}

func (t *Tracer) follow(p dynamo.Photon, observers []dynamo.Observer) (HitRecord, error) {
	if !p.Valid() {
		return HitRecord{Outcome: Invalid, Position: p.Pos}, &dynamo.SimulationError{Photon: p, Wrapped: dynamo.ErrInvalidState}
	}

	for _, o := range observers {
		o.OnStep(0, p)
	}

	rs := t.params.SchwarzschildRadius()
	dt := t.params.StepSize

	for step := 0; ; step++ {
		prevY := p.Pos.Y

		r := p.Pos.Length()
		if r <= rs {
			return HitRecord{Outcome: Captured, Steps: step, Position: p.Pos}, nil
		}
		if r > t.params.EscapeRadius {
			return HitRecord{Outcome: Escaped, Steps: step, Position: p.Pos}, nil
		}
		if step >= t.params.MaxSteps {
			return HitRecord{Outcome: Timeout, Steps: step, Position: p.Pos}, nil
		}

		t.stepper.StepPhoton(t.field, &p, dt)

		if !p.Valid() {
			return HitRecord{Outcome: Invalid, Steps: step + 1, Position: p.Pos},
				&dynamo.SimulationError{Step: step + 1, Photon: p, Wrapped: dynamo.ErrInvalidState}
		}

		for _, o := range observers {
			o.OnStep(step+1, p)
		}

		// The in-plane radius is sampled at the post-step position, not
		// interpolated to the exact crossing point.
		if crossesPlane(prevY, p.Pos.Y) {
			rho := math.Sqrt(p.Pos.X*p.Pos.X + p.Pos.Z*p.Pos.Z)
			if rho >= t.params.DiskInner && rho <= t.params.DiskOuter {
				return HitRecord{Outcome: DiskHit, Steps: step + 1, Position: p.Pos, DiskRadius: rho}, nil
			}
		}
	}
}

// crossesPlane reports a crossing of y = 0: strictly opposite signs, or
// exactly one of the two heights being zero.
func crossesPlane(prevY, newY float64) bool {
	if (prevY > 0 && newY < 0) || (prevY < 0 && newY > 0) {
		return true
	}
	return (prevY == 0) != (newY == 0)
}
