package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/geodesic/internal/dynamo"
	"github.com/san-kum/geodesic/internal/metrics"
	"github.com/san-kum/geodesic/internal/physics"
	"github.com/san-kum/geodesic/internal/tracer"
)

var ErrNoBracket = errors.New("impact parameters do not bracket the capture boundary")

// startFraction keeps launch points just inside the escape sphere.
const startFraction = 0.999

// Probe launches a photon in the y = 0 plane parallel to -z, offset by the
// impact parameter b along x. The orbit never leaves the plane, so the disk
// plays no part and the outcome is capture, escape or timeout.
func Probe(p physics.Params, b float64) (dynamo.Photon, error) {
	r0 := p.EscapeRadius * startFraction
	if math.Abs(b) >= r0 {
		return dynamo.Photon{}, fmt.Errorf("impact parameter %g outside launch radius %g: %w", b, r0, dynamo.ErrParameterBounds)
	}
	return dynamo.Photon{
		Pos: dynamo.Vec3{X: b, Z: math.Sqrt(r0*r0 - b*b)},
		Vel: dynamo.Vec3{Z: -1},
	}, nil
}

type Sample struct {
	B         float64
	Outcome   tracer.Outcome
	Steps     int
	MinRadius float64
}

// Scan traces one probe per impact parameter, spread over workers.
func Scan(ctx context.Context, tr *tracer.Tracer, bs []float64, workers int) ([]Sample, error) {
	out := make([]Sample, len(bs))
	errs := make([]error, len(bs))
	p := tr.Params()

	dynamo.ParallelBands(len(bs), workers, func(_, start, end int) {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				errs[i] = ctx.Err()
				return
			}
			photon, err := Probe(p, bs[i])
			if err != nil {
				errs[i] = err
				continue
			}
			minR := metrics.NewMinRadius()
			hit, err := tr.Follow(photon, minR)
			if err != nil {
				errs[i] = err
			}
			out[i] = Sample{B: bs[i], Outcome: hit.Outcome, Steps: hit.Steps, MinRadius: minR.Value()}
		}
	})

	return out, errors.Join(errs...)
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

type Result struct {
	Critical   float64
	Lo, Hi     float64
	Iterations int
}

// CriticalImpact bisects for the impact parameter separating captured from
// escaping probes. lo must be captured and hi must escape.
func CriticalImpact(ctx context.Context, tr *tracer.Tracer, lo, hi, tol float64) (Result, error) {
	if !(tol > 0) || !(lo < hi) {
		return Result{}, fmt.Errorf("bisection range [%g, %g] tol %g: %w", lo, hi, tol, dynamo.ErrParameterBounds)
	}

	params := tr.Params()
	outcome := func(b float64) (tracer.Outcome, error) {
		photon, err := Probe(params, b)
		if err != nil {
			return tracer.Invalid, err
		}
		hit, err := tr.Trace(photon)
		return hit.Outcome, err
	}

	if o, err := outcome(lo); err != nil {
		return Result{}, err
	} else if o != tracer.Captured {
		return Result{}, fmt.Errorf("b=%g is %s: %w", lo, o, ErrNoBracket)
	}
	if o, err := outcome(hi); err != nil {
		return Result{}, err
	} else if o != tracer.Escaped {
		return Result{}, fmt.Errorf("b=%g is %s: %w", hi, o, ErrNoBracket)
	}

	res := Result{Lo: lo, Hi: hi}
	for res.Hi-res.Lo > tol {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		mid := (res.Lo + res.Hi) / 2
		o, err := outcome(mid)
		if err != nil {
			return res, err
		}
		switch o {
		case tracer.Captured:
			res.Lo = mid
		case tracer.Escaped:
			res.Hi = mid
		default:
			// a probe that orbits until MaxSteps sits on the boundary
			res.Lo, res.Hi = mid, mid
		}
		res.Iterations++
	}
	res.Critical = (res.Lo + res.Hi) / 2
	return res, nil
}

// AnalyticCritical is 3√3·M, the critical impact parameter for light in the
// Schwarzschild geometry.
func AnalyticCritical(mass float64) float64 {
	return 3 * math.Sqrt(3) * mass
}
