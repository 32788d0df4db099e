package pdfink

import (
	"math"
	"testing"
)

// TestHex checks six- and three-digit parsing with and without '#'.
func TestHex(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b float64
	}{
		{"#ffeb3b", 1, 235.0 / 255, 59.0 / 255},
		{"ffeb3b", 1, 235.0 / 255, 59.0 / 255},
		{"#f00", 1, 0, 0},
		{"#000000", 0, 0, 0},
		{"nonsense", 0, 0, 0},
	}
	for _, tt := range tests {
		c := Hex(tt.in)
		if math.Abs(c.R-tt.r) > 1e-9 || math.Abs(c.G-tt.g) > 1e-9 || math.Abs(c.B-tt.b) > 1e-9 {
			t.Errorf("Hex(%q) = %+v, want (%v, %v, %v)", tt.in, c, tt.r, tt.g, tt.b)
		}
	}
}

// TestNRGBA checks alpha application and channel clamping.
func TestNRGBA(t *testing.T) {
	c := RGB{R: 1, G: 0.5, B: 0}.NRGBA(0.25)

	if c.R != 255 || c.G != 127 || c.B != 0 {
		t.Errorf("channels = (%d, %d, %d), want (255, 127, 0)", c.R, c.G, c.B)
	}
	if c.A != 63 {
		t.Errorf("alpha = %d, want 63", c.A)
	}

	over := RGB{R: 2, G: -1, B: 0.5}.NRGBA(1)
	if over.R != 255 || over.G != 0 {
		t.Errorf("clamping failed: %+v", over)
	}
}

// TestFromColor checks round-tripping a standard library color.
func TestFromColor(t *testing.T) {
	c := FromColor(RGB{R: 0.2, G: 0.4, B: 0.6}.NRGBA(1))

	if math.Abs(c.R-0.2) > 0.01 || math.Abs(c.G-0.4) > 0.01 || math.Abs(c.B-0.6) > 0.01 {
		t.Errorf("FromColor = %+v", c)
	}
}
