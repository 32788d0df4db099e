// Copyright 2026 The pdfink Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pdfcpuw adapts pdfcpu to the pipeline's writer contract.
//
// pdfcpu stamps images through its watermark machinery, which covers the
// export compositor's only requirement: drawing a flattened page image
// over the full page. Partial-region images and vector rectangles are
// outside what the watermark API can express and return
// writer.ErrUnsupported.
package pdfcpuw

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pdfink/pdfink/writer"
)

// Writer implements writer.Writer on top of pdfcpu.
type Writer struct{}

// New creates a pdfcpu-backed writer.
func New() *Writer { return &Writer{} }

// Load validates the document and captures its page geometry.
func (w *Writer) Load(data []byte) (writer.Document, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpuw: read document: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("pdfcpuw: validate document: %w", err)
	}
	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("pdfcpuw: page dimensions: %w", err)
	}
	return &document{original: data, dims: dims, conf: conf}, nil
}

// stampOp is one queued full-page image stamp.
type stampOp struct {
	page    int
	png     []byte
	opacity float64
}

// document queues stamp operations and applies them on Save.
type document struct {
	original []byte
	dims     []types.Dim
	conf     *model.Configuration
	ops      []stampOp
}

// PageCount returns the number of pages.
func (d *document) PageCount() int { return len(d.dims) }

// PageSize returns the page extent in points.
func (d *document) PageSize(page int) (float64, float64) {
	if page < 0 || page >= len(d.dims) {
		return 0, 0
	}
	return d.dims[page].Width, d.dims[page].Height
}

// DrawImage queues a full-page image stamp. Regions smaller than the
// page are not expressible through the watermark API.
func (d *document) DrawImage(page int, png []byte, r writer.Rect, opacity float64) error {
	if page < 0 || page >= len(d.dims) {
		return fmt.Errorf("pdfcpuw: page %d out of range [0, %d)", page, len(d.dims))
	}
	pw, ph := d.dims[page].Width, d.dims[page].Height
	if r.X != 0 || r.Y != 0 || r.W != pw || r.H != ph {
		return writer.ErrUnsupported
	}
	d.ops = append(d.ops, stampOp{page: page, png: png, opacity: opacity})
	return nil
}

// DrawRect is not expressible through pdfcpu's stamping API.
func (d *document) DrawRect(int, writer.Rect, color.NRGBA, float64) error {
	return writer.ErrUnsupported
}

// Save applies the queued stamps in order and serializes the result.
func (d *document) Save() ([]byte, error) {
	cur := d.original
	for _, op := range d.ops {
		desc := fmt.Sprintf("pos:full, rot:0, op:%.2f", op.opacity)
		wm, err := api.ImageWatermarkForReader(bytes.NewReader(op.png), desc, true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("pdfcpuw: build stamp for page %d: %w", op.page, err)
		}
		var out bytes.Buffer
		pages := []string{strconv.Itoa(op.page + 1)}
		if err := api.AddWatermarks(bytes.NewReader(cur), &out, pages, wm, d.conf); err != nil {
			return nil, fmt.Errorf("pdfcpuw: stamp page %d: %w", op.page, err)
		}
		cur = out.Bytes()
	}
	return cur, nil
}
