package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/san-kum/geodesic/internal/tracer"
)

// Pixels are packed as 0xAARRGGBB: alpha, then red, green, blue.

func Pack(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func Unpack(c uint32) (a, r, g, b uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// NRGBA converts a packed pixel to a non-premultiplied color.
func NRGBA(c uint32) color.NRGBA {
	a, r, g, b := Unpack(c)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Hex renders the color channels as #rrggbb.
func Hex(c uint32) string {
	_, r, g, b := Unpack(c)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// ParseHex reads #rrggbb into an opaque packed pixel.
func ParseHex(s string) (uint32, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("color %q: expected #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return 0xFF000000 | uint32(v), nil
}

// Palette assigns one fixed color per outcome.
type Palette struct {
	Hole  uint32
	Disk  uint32
	Sky   uint32
	Error uint32
}

var DefaultPalette = Palette{
	Hole:  0xFF050505,
	Disk:  0xFFFF9A3C,
	Sky:   0xFF0B0D1A,
	Error: 0xFFFF00FF,
}

// Color maps an outcome to its pixel. Timeouts are drawn as sky.
func (p Palette) Color(o tracer.Outcome) uint32 {
	switch o {
	case tracer.Captured:
		return p.Hole
	case tracer.DiskHit:
		return p.Disk
	case tracer.Escaped, tracer.Timeout:
		return p.Sky
	default:
		return p.Error
	}
}
