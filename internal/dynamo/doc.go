// Package dynamo provides the core primitives shared by the photon tracer.
//
// The package defines the value types and interfaces everything else is
// built on:
//
//   - [Vec3]: 3-component vector, immutable by convention
//   - [Photon]: mutable position/velocity state of a single light ray
//   - [Field]: acceleration law a photon moves under
//   - [PhotonStepper]: in-place fixed-step integrator for photons
//   - [System] and [Integrator]: generic ODE stepping over a flat [State]
//   - [Bands] and [ParallelBands]: static row partitioning with fork-join
//
// # Example
//
//	bh := physics.NewSchwarzschild(physics.DefaultParams())
//	p, _ := dynamo.NewPhoton(dynamo.Vec3{X: 10}, dynamo.Vec3{Z: -1})
//	integrators.NewRK4().StepPhoton(bh, &p, 0.05)
//
// # Thread Safety
//
// Vec3 and Photon are plain values. A Photon must not be shared between
// goroutines while it is being stepped.
package dynamo
