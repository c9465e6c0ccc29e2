package viz

import (
	"fmt"
	"math"

	"github.com/san-kum/geodesic/internal/dynamo"
)

// Plane selects the two world axes a trajectory is projected onto.
type Plane int

const (
	PlaneXZ Plane = iota // top-down onto the disk plane
	PlaneXY
	PlaneZY
)

func (p Plane) String() string {
	switch p {
	case PlaneXZ:
		return "xz"
	case PlaneXY:
		return "xy"
	case PlaneZY:
		return "zy"
	}
	return "unknown"
}

func ParsePlane(s string) (Plane, error) {
	for _, p := range []Plane{PlaneXZ, PlaneXY, PlaneZY} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown plane %q (want xz, xy or zy)", s)
}

// Project returns the horizontal and vertical plot coordinates of v.
func (p Plane) Project(v dynamo.Vec3) (a, b float64) {
	switch p {
	case PlaneXY:
		return v.X, v.Y
	case PlaneZY:
		return v.Z, v.Y
	default:
		return v.X, v.Z
	}
}

// Plot maps world coordinates in [-Extent, Extent] onto a canvas, centred on
// the origin with equal scale on both axes.
type Plot struct {
	Canvas *Canvas
	Plane  Plane
	Extent float64
}

func NewPlot(c *Canvas, plane Plane, extent float64) *Plot {
	return &Plot{Canvas: c, Plane: plane, Extent: extent}
}

func (p *Plot) scale() float64 {
	return float64(min(p.Canvas.DotsWide(), p.Canvas.DotsHigh())) / (2 * p.Extent)
}

func (p *Plot) toDots(v dynamo.Vec3) (int, int) {
	a, b := p.Plane.Project(v)
	s := p.scale()
	x := float64(p.Canvas.DotsWide())/2 + a*s
	y := float64(p.Canvas.DotsHigh())/2 - b*s
	return int(math.Round(x)), int(math.Round(y))
}

// Circle draws a world-space circle around the origin, e.g. the horizon.
func (p *Plot) Circle(radius float64) {
	cx, cy := p.toDots(dynamo.Vec3{})
	p.Canvas.DrawCircle(cx, cy, radius*p.scale())
}

// Path connects consecutive positions with line segments.
func (p *Plot) Path(points []dynamo.Vec3) {
	if len(points) == 0 {
		return
	}
	x0, y0 := p.toDots(points[0])
	p.Canvas.Set(x0, y0)
	for _, pt := range points[1:] {
		x1, y1 := p.toDots(pt)
		p.Canvas.DrawLine(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}
}
