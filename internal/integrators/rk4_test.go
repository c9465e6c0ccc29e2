package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/geodesic/internal/dynamo"
	"github.com/san-kum/geodesic/internal/physics"
)

type simpleDynamics struct{}

func (s *simpleDynamics) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (s *simpleDynamics) StateDim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

// harmonic is a = -pos, which lets StepPhoton be checked against a closed form.
type harmonic struct{}

func (harmonic) Acceleration(pos, _ dynamo.Vec3) dynamo.Vec3 { return pos.Scale(-1) }

func TestRK4StepPhotonHarmonic(t *testing.T) {
	integ := NewRK4()
	p := dynamo.Photon{Pos: dynamo.Vec3{X: 1}, Vel: dynamo.Vec3{Y: 1}}

	dt := 0.01
	steps := 314
	for i := 0; i < steps; i++ {
		integ.StepPhoton(harmonic{}, &p, dt)
	}

	tEnd := float64(steps) * dt
	want := dynamo.Vec3{X: math.Cos(tEnd), Y: math.Sin(tEnd)}
	if d := p.Pos.Sub(want).Length(); d > 1e-6 {
		t.Errorf("position off by %g: got %v, want %v", d, p.Pos, want)
	}
}

func TestRK4StepPhotonMatchesGenericStep(t *testing.T) {
	bh := physics.NewSchwarzschild(physics.DefaultParams())
	integ := NewRK4()

	p := dynamo.Photon{Pos: dynamo.Vec3{X: 7, Y: 0.4, Z: 1}, Vel: dynamo.Vec3{X: -0.3, Z: -0.95}}
	x := p.State()

	for i := 0; i < 50; i++ {
		integ.StepPhoton(bh, &p, 0.05)
		x = integ.Step(bh, x, 0, 0.05)
	}

	got := p.State()
	for i := range got {
		if math.Abs(got[i]-x[i]) > 1e-12 {
			t.Errorf("component %d diverged: photon %g, generic %g", i, got[i], x[i])
		}
	}
}

// wideModel reports a state size no photon can fill.
type wideModel struct{ *physics.Schwarzschild }

func (wideModel) StateDim() int { return 7 }

func TestDivergence(t *testing.T) {
	bh := physics.NewSchwarzschild(physics.DefaultParams())
	p := dynamo.Photon{Pos: dynamo.Vec3{X: 7, Y: 0.4, Z: 1}, Vel: dynamo.Vec3{X: -0.3, Z: -0.95}}

	for _, name := range Names() {
		s, err := Get(name)
		if err != nil {
			t.Fatal(err)
		}
		gap, err := Divergence(s, bh, p, 0.05, 200)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if gap > 1e-9 {
			t.Errorf("%s: photon and generic paths drifted %g apart", name, gap)
		}
	}

	if _, err := Divergence(NewRK4(), wideModel{bh}, p, 0.05, 1); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestRK4ConservesAngularMomentum(t *testing.T) {
	bh := physics.NewSchwarzschild(physics.DefaultParams())
	integ := NewRK4()

	p := dynamo.Photon{Pos: dynamo.Vec3{X: 10}, Vel: dynamo.Vec3{Z: -1}}
	l0 := p.AngularMomentum().Length()

	for i := 0; i < 100; i++ {
		integ.StepPhoton(bh, &p, physics.DefaultStepSize)
	}

	l1 := p.AngularMomentum().Length()
	drift := math.Abs(l1-l0) / l0
	if drift >= 0.01 {
		t.Errorf("angular momentum drift %.6f exceeds 1%%", drift)
	}
}

func TestRK4StepPhotonDoesNotAllocate(t *testing.T) {
	bh := physics.NewSchwarzschild(physics.DefaultParams())
	integ := NewRK4()
	p := dynamo.Photon{Pos: dynamo.Vec3{X: 10}, Vel: dynamo.Vec3{Z: -1}}

	allocs := testing.AllocsPerRun(100, func() {
		integ.StepPhoton(bh, &p, 0.05)
	})
	if allocs != 0 {
		t.Errorf("expected zero allocations per step, got %.1f", allocs)
	}
}

func TestEulerLessAccurateThanRK4(t *testing.T) {
	euler := NewEuler()
	rk4 := NewRK4()

	pe := dynamo.Photon{Pos: dynamo.Vec3{X: 1}, Vel: dynamo.Vec3{Y: 1}}
	pr := pe
	for i := 0; i < 100; i++ {
		euler.StepPhoton(harmonic{}, &pe, 0.05)
		rk4.StepPhoton(harmonic{}, &pr, 0.05)
	}

	want := dynamo.Vec3{X: math.Cos(5), Y: math.Sin(5)}
	if pe.Pos.Sub(want).Length() <= pr.Pos.Sub(want).Length() {
		t.Error("expected euler error to exceed rk4 error")
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"rk4", "euler"} {
		if _, err := Get(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if _, err := Get("rk45"); err == nil {
		t.Error("expected error for unknown integrator")
	}
	if n := Names(); len(n) != 2 || n[0] != "euler" {
		t.Errorf("unexpected names %v", n)
	}
}
