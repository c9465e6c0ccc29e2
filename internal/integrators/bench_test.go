package integrators

import (
	"testing"

	"github.com/san-kum/geodesic/internal/dynamo"
	"github.com/san-kum/geodesic/internal/physics"
)

func BenchmarkEulerPhoton(b *testing.B) {
	integrator := NewEuler()
	bh := physics.NewSchwarzschild(physics.DefaultParams())
	p := dynamo.Photon{Pos: dynamo.Vec3{X: 10}, Vel: dynamo.Vec3{Z: -1}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integrator.StepPhoton(bh, &p, 0.05)
	}
}

func BenchmarkRK4Photon(b *testing.B) {
	integrator := NewRK4()
	bh := physics.NewSchwarzschild(physics.DefaultParams())
	p := dynamo.Photon{Pos: dynamo.Vec3{X: 10}, Vel: dynamo.Vec3{Z: -1}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integrator.StepPhoton(bh, &p, 0.05)
	}
}

func BenchmarkRK4Generic(b *testing.B) {
	integrator := NewRK4()
	bh := physics.NewSchwarzschild(physics.DefaultParams())
	x := dynamo.State{10, 0, 0, 0, 0, -1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(bh, x, 0, 0.05)
	}
}
