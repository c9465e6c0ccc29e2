// Package physics provides the Schwarzschild geodesic model photons are
// traced through.
//
// [Schwarzschild] implements [dynamo.Field] for the allocation-free photon
// hot path and [dynamo.System] for the generic integrators, so the same
// acceleration law can be stepped either way:
//
//	bh := physics.NewSchwarzschild(physics.DefaultParams())
//	acc := bh.Acceleration(pos, vel)
//
// Natural units are used throughout (G = c = 1), so the Schwarzschild radius
// is 2M.
package physics
