// Copyright 2026 The pdfink Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
)

// Surface is a mutable pixel buffer used for page bitmaps and overlays.
//
// Pixel content is premultiplied RGBA. A freshly created surface is fully
// transparent.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Clear resets every pixel to fully transparent.
	Clear()

	// StrokeLine stamps a round-capped line segment from a to b.
	// Coordinates are device pixels; width is the full brush diameter in
	// device pixels. With Erase set, covered pixels are cleared
	// (destination-out); otherwise ink is laid down alpha-capped: a
	// pixel's alpha never exceeds the style alpha no matter how often a
	// stroke crosses it.
	StrokeLine(a, b Point, style StrokeStyle)

	// FillRect composites an axis-aligned rectangle source-over onto the
	// surface using the color's alpha. Coordinates are device pixels.
	FillRect(x, y, w, h float64, c color.NRGBA)

	// DrawImage copies src into the surface, scaling to cover it fully.
	// Used to adopt externally rasterized page content.
	DrawImage(src image.Image, f Filter)

	// ResampleFrom replaces the surface content with a rescaled copy of
	// src, preserving annotations across a geometry change.
	ResampleFrom(src Surface, f Filter)

	// Snapshot returns a copy of the surface contents. Modifications to
	// the returned image do not affect the surface.
	Snapshot() *image.RGBA

	// Close releases resources held by the surface. Close is idempotent.
	Close() error
}

// Point is a position in device pixels.
type Point struct {
	X, Y float64
}

// Pt creates a Point from x, y device pixel coordinates.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// StrokeStyle defines how StrokeLine lays down pixels.
type StrokeStyle struct {
	// Color is the brush color; its alpha is the per-pixel cap.
	// Ignored when Erase is set.
	Color color.NRGBA

	// Width is the full brush diameter in device pixels.
	Width float64

	// Erase clears covered pixels instead of inking them.
	Erase bool
}

// Filter specifies the interpolation mode for resampling.
type Filter uint8

const (
	// FilterBilinear uses bilinear interpolation.
	FilterBilinear Filter = iota

	// FilterNearest uses nearest-neighbor interpolation.
	FilterNearest
)

// Options configures surface creation.
type Options struct {
	// Width is the surface width in pixels. Clamped to a minimum of 1.
	Width int

	// Height is the surface height in pixels. Clamped to a minimum of 1.
	Height int
}
