package metrics

import (
	"math"

	"github.com/san-kum/geodesic/internal/dynamo"
)

// MinRadius is the closest approach to the singularity (periapsis).
type MinRadius struct {
	min float64
}

func NewMinRadius() *MinRadius {
	return &MinRadius{min: math.Inf(1)}
}

func (m *MinRadius) Name() string { return "min_radius" }

func (m *MinRadius) OnStep(step int, p dynamo.Photon) {
	m.min = math.Min(m.min, p.Pos.Length())
}

func (m *MinRadius) Value() float64 { return m.min }

func (m *MinRadius) Reset() { m.min = math.Inf(1) }

// PathLength sums the distance travelled between observed positions.
type PathLength struct {
	last    dynamo.Vec3
	total   float64
	started bool
}

func NewPathLength() *PathLength {
	return &PathLength{}
}

func (l *PathLength) Name() string { return "path_length" }

func (l *PathLength) OnStep(step int, p dynamo.Photon) {
	if l.started {
		l.total += p.Pos.Sub(l.last).Length()
	}
	l.last = p.Pos
	l.started = true
}

func (l *PathLength) Value() float64 { return l.total }

func (l *PathLength) Reset() {
	l.total = 0
	l.started = false
}
