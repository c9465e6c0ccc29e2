package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/geodesic/internal/dynamo"
	"github.com/san-kum/geodesic/internal/physics"
	"github.com/san-kum/geodesic/internal/viz"
)

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.DotsWide()) * scale
	height := float64(canvas.DotsHigh()) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, fill)

	dotRadius := scale * 0.4
	for y := 0; y < canvas.DotsHigh(); y++ {
		for x := 0; x < canvas.DotsWide(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws photon paths projected onto plane, centred on the
// hole with equal axis scale. The horizon is filled and, in the disk plane
// view, the disk annulus is outlined.
func TrajectoryToSVG(paths [][]dynamo.Vec3, plane viz.Plane, size int, p physics.Params, stroke string) string {
	extent := p.EscapeRadius
	for _, path := range paths {
		for _, pt := range path {
			a, b := plane.Project(pt)
			extent = math.Max(extent, math.Max(math.Abs(a), math.Abs(b)))
		}
	}
	extent *= 1.05
	scale := float64(size) / (2 * extent)
	half := float64(size) / 2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size)

	if plane == viz.PlaneXZ {
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"none\" stroke=\"#ff9a3c\" stroke-opacity=\"0.35\" stroke-width=\"%.1f\"/>\n",
			half, half, (p.DiskInner+p.DiskOuter)/2*scale, (p.DiskOuter-p.DiskInner)*scale)
	} else {
		fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"#ff9a3c\" stroke-width=\"2\"/>\n",
			half-p.DiskOuter*scale, half, half+p.DiskOuter*scale, half)
	}
	fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"#000000\" stroke=\"#444466\"/>\n",
		half, half, p.SchwarzschildRadius()*scale)

	for _, path := range paths {
		if len(path) < 2 {
			continue
		}
		sb.WriteString(`<path fill="none" stroke="` + stroke + `" stroke-width="1.5" d="M`)
		for i, pt := range path {
			a, b := plane.Project(pt)
			x := half + a*scale
			y := half - b*scale
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
