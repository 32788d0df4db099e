// Copyright 2026 The pdfink Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package fitz adapts MuPDF (via gen2brain/go-fitz) to the pipeline's
// renderer contract.
//
// go-fitz uses CGo; importing this package ties the build to a MuPDF
// toolchain. Pure-Go builds use a different renderer implementation and
// never pull this package in.
package fitz

import (
	"context"
	"fmt"
	"image"
	"sync"

	gofitz "github.com/gen2brain/go-fitz"

	"github.com/pdfink/pdfink/renderer"
)

// baseDPI is the PDF point resolution; scale 1 renders one pixel per
// point.
const baseDPI = 72

// Renderer implements renderer.Renderer on top of MuPDF.
type Renderer struct{}

// New creates a MuPDF-backed renderer.
func New() *Renderer { return &Renderer{} }

// Load parses the document bytes into a renderable handle.
func (r *Renderer) Load(_ context.Context, data []byte) (renderer.Document, error) {
	doc, err := gofitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("fitz: open document: %w", err)
	}
	return &document{doc: doc}, nil
}

// document wraps an open MuPDF document.
//
// MuPDF contexts are not safe for unsynchronized concurrent use, so all
// calls into the handle serialize on a mutex.
type document struct {
	mu     sync.Mutex
	doc    *gofitz.Document
	closed bool
}

// PageCount returns the number of pages.
func (d *document) PageCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0
	}
	return d.doc.NumPage()
}

// PageSize returns the page extent in pixels at scale 1 (one pixel per
// PDF point).
func (d *document) PageSize(page int) (float64, float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, 0
	}
	bounds, err := d.doc.Bound(page)
	if err != nil {
		return 0, 0
	}
	return float64(bounds.Dx()), float64(bounds.Dy())
}

// RenderPage rasterizes one page at the given scale.
func (d *document) RenderPage(ctx context.Context, page int, scale float64) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, fmt.Errorf("fitz: render page %d: document closed", page)
	}
	img, err := d.doc.ImageDPI(page, baseDPI*scale)
	if err != nil {
		return nil, fmt.Errorf("fitz: render page %d: %w", page, err)
	}
	return img, nil
}

// Close releases the MuPDF document. Close is idempotent.
func (d *document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return d.doc.Close()
}
