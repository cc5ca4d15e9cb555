package scene

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSL builds a colour from a hue in turns, wrapping it into [0, 1).
func HSL(h, s, l float64) colorful.Color {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	return colorful.Hsl(h*360, s, l).Clamped()
}

// Hue returns the hue of c in turns.
func Hue(c colorful.Color) float64 {
	h, _, _ := c.Hsl()
	if math.IsNaN(h) {
		return 0
	}
	return h / 360
}

// OffsetHSL shifts c in HSL space like a material colour tweak: the hue
// wraps, saturation and lightness clamp.
func OffsetHSL(c colorful.Color, dh, ds, dl float64) colorful.Color {
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSL(h/360+dh, clamp01(s+ds), clamp01(l+dl))
}

// ParseColor parses "#rrggbb" and falls back to fallback on malformed input.
func ParseColor(hex string, fallback colorful.Color) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return c
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
