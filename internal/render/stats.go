package render

import (
	"time"

	"github.com/san-kum/geodesic/internal/tracer"
)

// Stats summarises one frame. Workers keep a private Stats each and the
// results are merged after the join.
type Stats struct {
	Width, Height int
	Workers       int
	Elapsed       time.Duration

	Counts     [tracer.Invalid + 1]int
	Steps      int64
	MaxSteps   int
	Errors     int
	FirstError error
}

func (s *Stats) record(hit tracer.HitRecord, err error) {
	s.Counts[hit.Outcome]++
	s.Steps += int64(hit.Steps)
	if hit.Steps > s.MaxSteps {
		s.MaxSteps = hit.Steps
	}
	if err != nil {
		s.Errors++
		if s.FirstError == nil {
			s.FirstError = err
		}
	}
}

func (s *Stats) merge(o *Stats) {
	for i := range s.Counts {
		s.Counts[i] += o.Counts[i]
	}
	s.Steps += o.Steps
	if o.MaxSteps > s.MaxSteps {
		s.MaxSteps = o.MaxSteps
	}
	s.Errors += o.Errors
	if s.FirstError == nil {
		s.FirstError = o.FirstError
	}
}

func (s Stats) Pixels() int { return s.Width * s.Height }

func (s Stats) Count(o tracer.Outcome) int { return s.Counts[o] }

// Fraction returns the share of pixels with outcome o.
func (s Stats) Fraction(o tracer.Outcome) float64 {
	if s.Pixels() == 0 {
		return 0
	}
	return float64(s.Counts[o]) / float64(s.Pixels())
}

// MeanSteps is the average number of integration steps per pixel.
func (s Stats) MeanSteps() float64 {
	if s.Pixels() == 0 {
		return 0
	}
	return float64(s.Steps) / float64(s.Pixels())
}

// PixelsPerSecond is the frame throughput.
func (s Stats) PixelsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Pixels()) / s.Elapsed.Seconds()
}

// Metrics flattens the stats for run metadata.
func (s Stats) Metrics() map[string]float64 {
	m := map[string]float64{
		"mean_steps": s.MeanSteps(),
		"max_steps":  float64(s.MaxSteps),
		"elapsed_ms": float64(s.Elapsed.Microseconds()) / 1000,
		"errors":     float64(s.Errors),
	}
	for _, o := range tracer.Outcomes() {
		m["frac_"+o.String()] = s.Fraction(o)
	}
	return m
}
