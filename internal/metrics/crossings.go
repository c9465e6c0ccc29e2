package metrics

import "github.com/san-kum/geodesic/internal/dynamo"

// PlaneCrossings counts sign changes of y between observed steps. A photon
// that loops around the hole can cross the disk plane several times.
type PlaneCrossings struct {
	lastY   float64
	count   int
	started bool
}

func NewPlaneCrossings() *PlaneCrossings {
	return &PlaneCrossings{}
}

func (c *PlaneCrossings) Name() string { return "plane_crossings" }

func (c *PlaneCrossings) OnStep(step int, p dynamo.Photon) {
	y := p.Pos.Y
	if c.started && ((c.lastY < 0 && y >= 0) || (c.lastY > 0 && y <= 0)) {
		c.count++
	}
	c.lastY = y
	c.started = true
}

func (c *PlaneCrossings) Value() float64 { return float64(c.count) }

func (c *PlaneCrossings) Reset() {
	c.count = 0
	c.started = false
}
