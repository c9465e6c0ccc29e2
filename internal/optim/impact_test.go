package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/geodesic/internal/dynamo"
	"github.com/san-kum/geodesic/internal/physics"
	"github.com/san-kum/geodesic/internal/tracer"
)

func newTracer() *tracer.Tracer {
	return tracer.New(physics.NewSchwarzschild(physics.DefaultParams()), nil)
}

func TestProbe(t *testing.T) {
	p := physics.DefaultParams()
	photon, err := Probe(p, 5)
	if err != nil {
		t.Fatal(err)
	}
	if r := photon.Pos.Length(); math.Abs(r-p.EscapeRadius*startFraction) > 1e-9 {
		t.Errorf("probe should start on the launch sphere, r=%f", r)
	}
	if h := photon.AngularMomentum().Length(); math.Abs(h-5) > 1e-9 {
		t.Errorf("expected |h| = b = 5, got %f", h)
	}
	if photon.Pos.Y != 0 || photon.Vel.Y != 0 {
		t.Error("probe should stay in the y = 0 plane")
	}

	if _, err := Probe(p, 25); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestCriticalImpact(t *testing.T) {
	res, err := CriticalImpact(context.Background(), newTracer(), 2, 10, 1e-3)
	if err != nil {
		t.Fatalf("bisection failed: %v", err)
	}
	if res.Hi-res.Lo > 1e-3 {
		t.Errorf("bracket not converged: [%f, %f]", res.Lo, res.Hi)
	}
	if res.Iterations == 0 {
		t.Error("expected iterations")
	}

	// launching from r ≈ 20 instead of infinity shifts the boundary slightly
	// below 3√3
	want := AnalyticCritical(1)
	if math.Abs(res.Critical-want) > 0.2 {
		t.Errorf("critical impact %f too far from %f", res.Critical, want)
	}
}

func TestCriticalImpactBracket(t *testing.T) {
	tr := newTracer()
	if _, err := CriticalImpact(context.Background(), tr, 7, 10, 1e-3); !errors.Is(err, ErrNoBracket) {
		t.Errorf("escaping lo: expected ErrNoBracket, got %v", err)
	}
	if _, err := CriticalImpact(context.Background(), tr, 1, 3, 1e-3); !errors.Is(err, ErrNoBracket) {
		t.Errorf("captured hi: expected ErrNoBracket, got %v", err)
	}
	if _, err := CriticalImpact(context.Background(), tr, 5, 4, 1e-3); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("inverted range: expected ErrParameterBounds, got %v", err)
	}
}

func TestCriticalImpactCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CriticalImpact(ctx, newTracer(), 2, 10, 1e-6); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestScan(t *testing.T) {
	bs := Linspace(1, 9, 9)
	samples, err := Scan(context.Background(), newTracer(), bs, 4)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(samples) != len(bs) {
		t.Fatalf("expected %d samples, got %d", len(bs), len(samples))
	}

	for _, s := range samples {
		switch {
		case s.B <= 4 && s.Outcome != tracer.Captured:
			t.Errorf("b=%v should be captured, got %v", s.B, s.Outcome)
		case s.B >= 6 && s.Outcome != tracer.Escaped:
			t.Errorf("b=%v should escape, got %v", s.B, s.Outcome)
		}
		if s.Outcome == tracer.Escaped && s.MinRadius < 3 {
			t.Errorf("b=%v escaped after reaching r=%f inside the photon sphere", s.B, s.MinRadius)
		}
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if len(Linspace(3, 4, 1)) != 1 {
		t.Error("n < 2 should return the start value")
	}
}
