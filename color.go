package pdfink

import (
	"image/color"
)

// RGB represents an opaque highlight color with components in [0, 1].
// Opacity is carried separately (on the Shape or Tool) so the same color
// can be reused at different strengths.
type RGB struct {
	R, G, B float64
}

// NRGBA converts the color to a non-premultiplied color.NRGBA at the
// given alpha.
func (c RGB) NRGBA(alpha float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(alpha * 255)),
	}
}

// FromColor converts a standard color.Color to RGB, discarding alpha.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
	}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB" and "RRGGBB", with or without a leading '#'.
// Invalid input yields black.
func Hex(hex string) RGB {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint32

	switch len(hex) {
	case 3: // RGB
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 6: // RRGGBB
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	}

	return RGB{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}
}

// parseHex parses a hex substring into v, leaving v untouched on error.
func parseHex(s string, v *uint32) {
	var out uint32
	for i := 0; i < len(s); i++ {
		c := s[i]
		var d uint32
		switch {
		case c >= '0' && c <= '9':
			d = uint32(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint32(c-'A') + 10
		default:
			return
		}
		out = out*16 + d
	}
	*v = out
}

// clamp255 clamps v to the range [0, 255].
func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// clamp01 clamps v to the range [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
