package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/geodesic/internal/render"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Width(panelWidth - 2)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	SubtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))

	StatusRecording = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444")).
			Blink(true)

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// Bar renders a fraction in [0, 1] as a fixed-width bar in the given color.
func Bar(fraction float64, width int, c lipgloss.Color) string {
	filled := int(fraction*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return lipgloss.NewStyle().Foreground(c).Render(strings.Repeat("█", filled)) +
		SubtleStyle.Render(strings.Repeat("░", width-filled))
}

// SparklineChart renders the most recent width values as a sparkline.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var result strings.Builder
	for _, v := range values {
		norm := (v - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(SparkMid.Render(c))
		default:
			result.WriteString(SparkLow.Render(c))
		}
	}
	return result.String()
}

// HalfBlocks draws a packed pixel buffer two pixel rows per terminal line:
// the upper pixel is the foreground of "▀", the lower one its background.
// Runs of identical cells share one styled span.
func HalfBlocks(buf []uint32, width, height int) string {
	var b strings.Builder
	for y := 0; y < height; y += 2 {
		runStart := 0
		var runTop, runBottom uint32
		for x := 0; x <= width; x++ {
			var top, bottom uint32
			if x < width {
				top = buf[y*width+x]
				bottom = top
				if y+1 < height {
					bottom = buf[(y+1)*width+x]
				}
			}
			if x > 0 && (x == width || top != runTop || bottom != runBottom) {
				style := lipgloss.NewStyle().
					Foreground(lipgloss.Color(render.Hex(runTop))).
					Background(lipgloss.Color(render.Hex(runBottom)))
				b.WriteString(style.Render(strings.Repeat("▀", x-runStart)))
				runStart = x
			}
			runTop, runBottom = top, bottom
		}
		b.WriteByte('\n')
	}
	return b.String()
}
