package metrics

import (
	"math"

	"github.com/san-kum/geodesic/internal/dynamo"
)

// AngularMomentumDrift tracks the largest relative change of |pos × vel|
// from its value at the first observed step. The central force conserves it
// exactly, so the drift measures integrator error.
type AngularMomentumDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewAngularMomentumDrift() *AngularMomentumDrift {
	return &AngularMomentumDrift{}
}

func (a *AngularMomentumDrift) Name() string { return "angular_momentum_drift" }

func (a *AngularMomentumDrift) OnStep(step int, p dynamo.Photon) {
	h := p.AngularMomentum().Length()
	if a.samples == 0 {
		a.initial = h
	}
	a.samples++

	if a.initial != 0 {
		drift := math.Abs(h-a.initial) / a.initial
		a.maxDrift = math.Max(a.maxDrift, drift)
	}
}

func (a *AngularMomentumDrift) Value() float64 { return a.maxDrift }

func (a *AngularMomentumDrift) Reset() {
	a.initial = 0
	a.maxDrift = 0
	a.samples = 0
}
