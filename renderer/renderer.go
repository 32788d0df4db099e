// Copyright 2026 The pdfink Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package renderer defines the PDF rasterizer contract the annotation
// pipeline renders pages through.
//
// The pipeline treats PDF parsing and page rasterization as an external
// capability: given document bytes, a page index and a scale factor,
// produce a pixel bitmap and report page count and geometry. The
// renderer/fitz package provides a MuPDF-backed implementation.
package renderer

import (
	"context"
	"image"
)

// Renderer opens documents for rasterization.
type Renderer interface {
	// Load parses the document bytes into a renderable handle.
	// Malformed input yields an error wrapping the parser's diagnosis;
	// the session surfaces it as a pdfink.ParseError.
	Load(ctx context.Context, data []byte) (Document, error)
}

// Document is an open, renderable document handle.
//
// Handles are owned by the session and replaced wholesale when a new
// file is opened; implementations are free to keep native resources
// alive until Close.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageSize returns the page extent in pixels at scale 1.
	PageSize(page int) (w, h float64)

	// RenderPage rasterizes one page at the given scale. The returned
	// image is owned by the caller.
	RenderPage(ctx context.Context, page int, scale float64) (*image.RGBA, error)

	// Close releases resources held by the handle. Close is idempotent.
	Close() error
}
