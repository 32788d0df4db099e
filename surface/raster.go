// Copyright 2026 The pdfink Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Raster is the built-in CPU surface backed by a premultiplied
// image.RGBA buffer.
type Raster struct {
	img    *image.RGBA
	closed bool
}

// NewRaster creates a transparent raster surface with the given
// dimensions, clamped to a minimum of 1x1.
func NewRaster(width, height int) *Raster {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Raster{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the surface width in pixels.
func (r *Raster) Width() int { return r.img.Rect.Dx() }

// Height returns the surface height in pixels.
func (r *Raster) Height() int { return r.img.Rect.Dy() }

// Data returns the live backing image. Mutations through it are visible
// to subsequent surface operations; callers that need isolation use
// Snapshot instead.
func (r *Raster) Data() *image.RGBA { return r.img }

// Clear resets every pixel to fully transparent.
func (r *Raster) Clear() {
	pix := r.img.Pix
	for i := range pix {
		pix[i] = 0
	}
}

// StrokeLine stamps a round brush along the segment from a to b.
//
// Ink stamping is alpha-capped: a covered pixel is written only when the
// incoming alpha exceeds what is already there, so retracing a stroke
// never darkens it past the style alpha. Erase stamping zeroes covered
// pixels (destination-out with full coverage).
func (r *Raster) StrokeLine(a, b Point, style StrokeStyle) {
	radius := style.Width / 2
	if radius <= 0 {
		radius = 0.5
	}

	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)

	// Stamp spacing of a quarter radius keeps the edge of the swept
	// region smooth without revisiting pixels excessively.
	step := radius / 4
	if step < 0.25 {
		step = 0.25
	}
	n := int(dist/step) + 1

	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		r.stamp(a.X+dx*t, a.Y+dy*t, radius, style)
	}
}

// stamp draws one filled brush circle at (cx, cy).
func (r *Raster) stamp(cx, cy, radius float64, style StrokeStyle) {
	x0 := int(math.Floor(cx - radius))
	y0 := int(math.Floor(cy - radius))
	x1 := int(math.Ceil(cx + radius))
	y1 := int(math.Ceil(cy + radius))

	bounds := r.img.Rect
	if x0 < bounds.Min.X {
		x0 = bounds.Min.X
	}
	if y0 < bounds.Min.Y {
		y0 = bounds.Min.Y
	}
	if x1 > bounds.Max.X-1 {
		x1 = bounds.Max.X - 1
	}
	if y1 > bounds.Max.Y-1 {
		y1 = bounds.Max.Y - 1
	}

	rr := radius * radius
	srcA := style.Color.A
	// Premultiply once; every inked pixel receives the same value.
	pr := uint8(uint16(style.Color.R) * uint16(srcA) / 255)
	pg := uint8(uint16(style.Color.G) * uint16(srcA) / 255)
	pb := uint8(uint16(style.Color.B) * uint16(srcA) / 255)

	for y := y0; y <= y1; y++ {
		fy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			fx := float64(x) + 0.5 - cx
			if fx*fx+fy*fy > rr {
				continue
			}
			i := r.img.PixOffset(x, y)
			if style.Erase {
				r.img.Pix[i] = 0
				r.img.Pix[i+1] = 0
				r.img.Pix[i+2] = 0
				r.img.Pix[i+3] = 0
				continue
			}
			if r.img.Pix[i+3] >= srcA {
				continue // alpha cap reached
			}
			r.img.Pix[i] = pr
			r.img.Pix[i+1] = pg
			r.img.Pix[i+2] = pb
			r.img.Pix[i+3] = srcA
		}
	}
}

// FillRect composites an axis-aligned rectangle source-over onto the
// surface.
func (r *Raster) FillRect(x, y, w, h float64, c color.NRGBA) {
	if w <= 0 || h <= 0 || c.A == 0 {
		return
	}
	rect := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	).Intersect(r.img.Rect)
	if rect.Empty() {
		return
	}
	src := image.NewUniform(c)
	xdraw.Draw(r.img, rect, src, image.Point{}, xdraw.Over)
}

// DrawImage copies src into the surface, scaling to cover it fully.
func (r *Raster) DrawImage(src image.Image, f Filter) {
	scaler(f).Scale(r.img, r.img.Rect, src, src.Bounds(), xdraw.Src, nil)
}

// ResampleFrom replaces the surface content with a rescaled copy of src.
func (r *Raster) ResampleFrom(src Surface, f Filter) {
	if src == nil {
		return
	}
	if other, ok := src.(*Raster); ok {
		scaler(f).Scale(r.img, r.img.Rect, other.img, other.img.Rect, xdraw.Src, nil)
		return
	}
	snap := src.Snapshot()
	scaler(f).Scale(r.img, r.img.Rect, snap, snap.Bounds(), xdraw.Src, nil)
}

// Snapshot returns a copy of the surface contents.
func (r *Raster) Snapshot() *image.RGBA {
	out := image.NewRGBA(r.img.Rect)
	copy(out.Pix, r.img.Pix)
	return out
}

// Close releases the surface. Close is idempotent.
func (r *Raster) Close() error {
	r.closed = true
	return nil
}

// scaler maps a Filter to the x/image interpolator implementing it.
func scaler(f Filter) xdraw.Scaler {
	if f == FilterNearest {
		return xdraw.NearestNeighbor
	}
	return xdraw.BiLinear
}
