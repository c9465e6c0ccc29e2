// Package tracer follows single photons through a black hole field and
// classifies where they end up.
//
// Each iteration of [Tracer.Follow] runs, in order: record the pre-step
// height above the equatorial plane, test the capture radius, test the
// escape radius, advance one fixed step, then test for a crossing of the
// equatorial plane inside the accretion disk annulus. The capture test comes
// before the step so a photon inside the horizon is never advanced toward
// the singular origin.
//
// Two outcomes harden the loop: [Timeout] when the step budget runs out, and
// [Invalid] when the state stops being finite.
package tracer
