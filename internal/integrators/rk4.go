package integrators

import "github.com/san-kum/geodesic/internal/dynamo"

// RK4 is the classical fixed-step 4th-order Runge-Kutta method.
//
// StepPhoton keeps no state and is safe for concurrent use. Step reuses
// scratch buffers and is not.
type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	scratch        dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

// StepPhoton advances p by dt in place on the coupled system
// dpos/dt = vel, dvel/dt = f.Acceleration(pos, vel).
func (r *RK4) StepPhoton(f dynamo.Field, p *dynamo.Photon, dt float64) {
	half := dt * 0.5

	k1v := f.Acceleration(p.Pos, p.Vel)
	k1x := p.Vel

	k2v := f.Acceleration(p.Pos.Add(k1x.Scale(half)), p.Vel.Add(k1v.Scale(half)))
	k2x := p.Vel.Add(k1v.Scale(half))

	k3v := f.Acceleration(p.Pos.Add(k2x.Scale(half)), p.Vel.Add(k2v.Scale(half)))
	k3x := p.Vel.Add(k2v.Scale(half))

	k4v := f.Acceleration(p.Pos.Add(k3x.Scale(dt)), p.Vel.Add(k3v.Scale(dt)))
	k4x := p.Vel.Add(k3v.Scale(dt))

	dt6 := dt / 6.0
	p.Vel = p.Vel.Add(k1v.Add(k2v.Scale(2)).Add(k3v.Scale(2)).Add(k4v).Scale(dt6))
	p.Pos = p.Pos.Add(k1x.Add(k2x.Scale(2)).Add(k3x.Scale(2)).Add(k4x).Scale(dt6))
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	r.ensureScratch(n)

	k1 := dyn.Derive(x, t)
	copy(r.k1, k1)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	k2 := dyn.Derive(r.scratch, t+dt*0.5)
	copy(r.k2, k2)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	k3 := dyn.Derive(r.scratch, t+dt*0.5)
	copy(r.k3, k3)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	k4 := dyn.Derive(r.scratch, t+dt)
	copy(r.k4, k4)

	result := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
