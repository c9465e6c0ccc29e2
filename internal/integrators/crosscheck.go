package integrators

import (
	"fmt"

	"github.com/san-kum/geodesic/internal/dynamo"
)

// Model is a photon field that can also be stepped as a generic system.
type Model interface {
	dynamo.System
	dynamo.Field
}

// Divergence advances p for n steps of dt twice, once through StepPhoton and
// once through the generic Step over m.Derive, and returns the largest
// position gap seen. The two paths compute the same scheme, so anything
// above rounding noise means one of them is wrong.
func Divergence(s Stepper, m Model, p dynamo.Photon, dt float64, n int) (float64, error) {
	if m.StateDim() != dynamo.PhotonStateDim {
		return 0, fmt.Errorf("model state has %d components: %w", m.StateDim(), dynamo.ErrDimensionMismatch)
	}

	fast := p
	x := p.State()
	maxGap := 0.0
	for i := 0; i < n; i++ {
		s.StepPhoton(m, &fast, dt)
		x = s.Step(m, x, float64(i)*dt, dt)

		generic, err := dynamo.PhotonFromState(x)
		if err != nil {
			return maxGap, err
		}
		if !generic.Valid() || !fast.Valid() {
			return maxGap, &dynamo.SimulationError{Step: i + 1, Photon: fast, Wrapped: dynamo.ErrInvalidState}
		}
		if gap := generic.Pos.Sub(fast.Pos).Length(); gap > maxGap {
			maxGap = gap
		}
	}
	return maxGap, nil
}
