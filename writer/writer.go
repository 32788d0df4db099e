// Copyright 2026 The pdfink Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package writer defines the PDF mutation contract the export
// compositor serializes through.
//
// The pipeline treats PDF mutation as an external capability: given the
// original document bytes, draw images or rectangles onto specific
// pages and serialize the result back to bytes. Two adapters ship with
// the module: writer/fpdfw (full contract) and writer/pdfcpuw (image
// stamping only).
package writer

import (
	"errors"
	"image/color"
)

// ErrUnsupported is returned by adapters for contract operations their
// backing library cannot express.
var ErrUnsupported = errors.New("writer: operation not supported by backend")

// Rect is an axis-aligned region in page points, origin top-left.
type Rect struct {
	X, Y, W, H float64
}

// Writer opens documents for mutation.
type Writer interface {
	// Load prepares the original document bytes for drawing.
	Load(data []byte) (Document, error)
}

// Document is a writable document accumulating draw operations until
// Save.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageSize returns the page extent in points.
	PageSize(page int) (w, h float64)

	// DrawImage draws PNG-encoded image bytes into the given page
	// region at the given opacity.
	DrawImage(page int, png []byte, r Rect, opacity float64) error

	// DrawRect fills a rectangle on the given page at the given
	// opacity. Adapters without a vector primitive return
	// ErrUnsupported.
	DrawRect(page int, r Rect, c color.NRGBA, opacity float64) error

	// Save serializes the document, including all drawn content, back
	// to bytes.
	Save() ([]byte, error)
}
