// Copyright 2026 The pdfink Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package fpdfw adapts codeberg.org/go-pdf/fpdf (with gofpdi page
// import) to the pipeline's writer contract.
//
// Each original page is imported as a template and drawn back at full
// size; image and rectangle operations then paint over it. This adapter
// supports the complete contract and is the default export backend.
package fpdfw

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/pdfink/pdfink/writer"
)

// Writer implements writer.Writer on top of fpdf.
type Writer struct{}

// New creates an fpdf-backed writer.
func New() *Writer { return &Writer{} }

// Load imports every page of the original document into a fresh fpdf
// document ready for overdrawing.
func (w *Writer) Load(data []byte) (doc writer.Document, err error) {
	// gofpdi reports malformed input by panicking; surface it as an
	// error like any other parse failure.
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("fpdfw: import document: %v", r)
		}
	}()

	pdf := fpdf.New("P", "pt", "", "")
	imp := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(data))

	tpl := imp.ImportPageFromStream(pdf, &rs, 1, "/MediaBox")
	sizes := imp.GetPageSizes()
	n := len(sizes)
	if n == 0 {
		return nil, fmt.Errorf("fpdfw: import document: no pages")
	}

	d := &document{pdf: pdf, widths: make([]float64, n), heights: make([]float64, n)}
	for page := 1; page <= n; page++ {
		if page > 1 {
			tpl = imp.ImportPageFromStream(pdf, &rs, page, "/MediaBox")
		}
		box := sizes[page]["/MediaBox"]
		pw, ph := box["w"], box["h"]
		d.widths[page-1], d.heights[page-1] = pw, ph

		pdf.AddPageFormat("P", fpdf.SizeType{Wd: pw, Ht: ph})
		imp.UseImportedTemplate(pdf, tpl, 0, 0, pw, ph)
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("fpdfw: import document: %w", err)
	}
	return d, nil
}

// document accumulates draw operations directly into the fpdf document.
type document struct {
	pdf     *fpdf.Fpdf
	widths  []float64
	heights []float64
	images  int
}

// PageCount returns the number of pages.
func (d *document) PageCount() int { return len(d.widths) }

// PageSize returns the page extent in points.
func (d *document) PageSize(page int) (float64, float64) {
	if page < 0 || page >= len(d.widths) {
		return 0, 0
	}
	return d.widths[page], d.heights[page]
}

// DrawImage draws PNG bytes into the given page region.
func (d *document) DrawImage(page int, png []byte, r writer.Rect, opacity float64) error {
	if err := d.checkPage(page); err != nil {
		return err
	}
	d.pdf.SetPage(page + 1)
	d.images++
	name := fmt.Sprintf("overlay-%d-%d", page, d.images)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	d.pdf.SetAlpha(opacity, "Normal")
	d.pdf.ImageOptions(name, r.X, r.Y, r.W, r.H, false, opts, 0, "")
	d.pdf.SetAlpha(1, "Normal")

	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("fpdfw: draw image on page %d: %w", page, err)
	}
	return nil
}

// DrawRect fills a rectangle on the given page.
func (d *document) DrawRect(page int, r writer.Rect, c color.NRGBA, opacity float64) error {
	if err := d.checkPage(page); err != nil {
		return err
	}
	d.pdf.SetPage(page + 1)
	d.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	d.pdf.SetAlpha(opacity*float64(c.A)/255, "Normal")
	d.pdf.Rect(r.X, r.Y, r.W, r.H, "F")
	d.pdf.SetAlpha(1, "Normal")

	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("fpdfw: draw rect on page %d: %w", page, err)
	}
	return nil
}

// Save serializes the document back to bytes.
func (d *document) Save() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("fpdfw: serialize: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *document) checkPage(page int) error {
	if page < 0 || page >= len(d.widths) {
		return fmt.Errorf("fpdfw: page %d out of range [0, %d)", page, len(d.widths))
	}
	return nil
}
