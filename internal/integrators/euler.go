package integrators

import "github.com/san-kum/geodesic/internal/dynamo"

// Euler is the explicit first-order method. It is kept as a baseline to
// measure RK4 against.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) StepPhoton(f dynamo.Field, p *dynamo.Photon, dt float64) {
	a := f.Acceleration(p.Pos, p.Vel)
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Vel = p.Vel.Add(a.Scale(dt))
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	dx := dyn.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
