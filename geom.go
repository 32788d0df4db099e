package pdfink

import "math"

// Geometry describes one page at one render scale: the page's pixel
// extent before device-pixel-ratio expansion, produced once per render
// pass. Scale is the product of the session's base scale and the current
// zoom factor.
type Geometry struct {
	PageIndex int
	WidthPx   float64
	HeightPx  float64
	Scale     float64
}

// SurfaceSize returns the pixel dimensions of the surfaces backing this
// page at the given device-pixel-ratio. Always at least 1x1.
func (g Geometry) SurfaceSize(dpr float64) (w, h int) {
	w = int(math.Ceil(g.WidthPx * dpr))
	h = int(math.Ceil(g.HeightPx * dpr))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// NormPoint is a position expressed as a fraction (0..1) of page width
// and height, independent of zoom and device pixel density. Persisted
// annotation state uses this space exclusively.
type NormPoint struct {
	X, Y float64
}

// NormPt creates a NormPoint from x, y fractions.
func NormPt(x, y float64) NormPoint {
	return NormPoint{X: x, Y: y}
}

// DevPoint is a position in device pixels on a page's surface, origin
// top-left, used for drawing and hit-testing.
type DevPoint struct {
	X, Y float64
}

// DevPt creates a DevPoint from x, y device pixel coordinates.
func DevPt(x, y float64) DevPoint {
	return DevPoint{X: x, Y: y}
}

// ToDevice converts a normalized point to device pixels under the given
// geometry and device-pixel-ratio. It is the exact inverse of
// ToNormalized up to floating rounding; round-trip error stays under one
// device pixel.
func ToDevice(p NormPoint, g Geometry, dpr float64) DevPoint {
	return DevPoint{
		X: p.X * g.WidthPx * dpr,
		Y: p.Y * g.HeightPx * dpr,
	}
}

// ToNormalized converts a device pixel point to normalized page
// coordinates under the given geometry and device-pixel-ratio.
// Points outside the page map outside [0, 1]; callers that persist the
// result clamp it (see NormRect.Clamp).
func ToNormalized(p DevPoint, g Geometry, dpr float64) NormPoint {
	return NormPoint{
		X: p.X / (g.WidthPx * dpr),
		Y: p.Y / (g.HeightPx * dpr),
	}
}

// NormRect is an axis-aligned rectangle in normalized page coordinates.
type NormRect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside the rectangle (edges included).
func (r NormRect) Contains(p NormPoint) bool {
	return p.X >= r.X && p.X <= r.X+r.W &&
		p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Clamp restricts the rectangle to the [0,1]x[0,1] page square.
func (r NormRect) Clamp() NormRect {
	x0 := clamp01(r.X)
	y0 := clamp01(r.Y)
	x1 := clamp01(r.X + r.W)
	y1 := clamp01(r.Y + r.H)
	return NormRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// ToDeviceRect converts the rectangle to device pixel coordinates,
// returning the top-left corner and extent.
func (r NormRect) ToDeviceRect(g Geometry, dpr float64) (x, y, w, h float64) {
	tl := ToDevice(NormPoint{X: r.X, Y: r.Y}, g, dpr)
	br := ToDevice(NormPoint{X: r.X + r.W, Y: r.Y + r.H}, g, dpr)
	return tl.X, tl.Y, br.X - tl.X, br.Y - tl.Y
}

// NormRectFromPoints builds the normalized rectangle spanned by two
// device points (in either order) under the given geometry.
func NormRectFromPoints(a, b DevPoint, g Geometry, dpr float64) NormRect {
	na := ToNormalized(a, g, dpr)
	nb := ToNormalized(b, g, dpr)
	x0 := math.Min(na.X, nb.X)
	y0 := math.Min(na.Y, nb.Y)
	x1 := math.Max(na.X, nb.X)
	y1 := math.Max(na.Y, nb.Y)
	return NormRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
