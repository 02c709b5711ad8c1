package render

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// RGB is an 8-bit per channel colour
type RGB struct {
	R, G, B uint8
}

var (
	RGBWhite = RGB{255, 255, 255}
	RGBDim   = RGB{100, 100, 110}
	RGBRing  = RGB{70, 70, 80}
	RGBAmber = RGB{255, 200, 50}
)

// ParseHex reads "#rrggbb"; ok is false on malformed input
func ParseHex(s string) (RGB, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Scale multiplies every channel by f
func (c RGB) Scale(f float64) RGB {
	return RGB{R: clamp(float64(c.R) * f), G: clamp(float64(c.G) * f), B: clamp(float64(c.B) * f)}
}

// Lerp blends from c toward dst by t in [0,1]
func (c RGB) Lerp(dst RGB, t float64) RGB {
	mix := func(a, b uint8) uint8 { return clamp(float64(a) + (float64(b)-float64(a))*t + 0.5) }
	return RGB{R: mix(c.R, dst.R), G: mix(c.G, dst.G), B: mix(c.B, dst.B)}
}

// Color converts to a tcell true colour
func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Style is a foreground-only style in c
func (c RGB) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(c.Color()).Background(tcell.ColorBlack)
}
