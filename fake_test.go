package pdfink

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/pdfink/pdfink/renderer"
	"github.com/pdfink/pdfink/writer"
)

// validPDF is the byte prefix the fake renderer accepts as a document.
var validPDF = []byte("%PDF-fake")

// white is the fake renderer's page fill.
func white() color.RGBA { return color.RGBA{R: 255, G: 255, B: 255, A: 255} }

// fakeRenderer is an in-memory renderer producing uniformly colored
// pages. onRender, when set, runs before each page rasterization,
// letting tests interleave a competing render pass mid-flight.
type fakeRenderer struct {
	pages    int
	pageW    float64
	pageH    float64
	fill     color.RGBA
	failPage int // -1: no page fails
	onRender func(page int)
}

func newFakeRenderer(pages int) *fakeRenderer {
	return &fakeRenderer{
		pages:    pages,
		pageW:    100,
		pageH:    200,
		fill:     color.RGBA{255, 255, 255, 255},
		failPage: -1,
	}
}

func (f *fakeRenderer) Load(_ context.Context, data []byte) (renderer.Document, error) {
	if !bytes.HasPrefix(data, validPDF) {
		return nil, errors.New("not a document")
	}
	return &fakeDocument{r: f}, nil
}

type fakeDocument struct {
	r      *fakeRenderer
	closed bool
}

func (d *fakeDocument) PageCount() int { return d.r.pages }

func (d *fakeDocument) PageSize(int) (float64, float64) { return d.r.pageW, d.r.pageH }

func (d *fakeDocument) RenderPage(ctx context.Context, page int, scale float64) (*image.RGBA, error) {
	if d.r.onRender != nil {
		d.r.onRender(page)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page == d.r.failPage {
		return nil, errors.New("rasterize failed")
	}
	w := int(d.r.pageW * scale)
	h := int(d.r.pageH * scale)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Rect, image.NewUniform(d.r.fill), image.Point{}, draw.Src)
	return img, nil
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

// fakeWriter records draw operations instead of producing a real PDF.
type fakeWriter struct {
	loadErr error
	drawErr error
	saveErr error
	doc     *fakeWriterDoc
}

func (w *fakeWriter) Load(data []byte) (writer.Document, error) {
	if w.loadErr != nil {
		return nil, w.loadErr
	}
	w.doc = &fakeWriterDoc{pages: 3, pageW: 100, pageH: 200, drawErr: w.drawErr, saveErr: w.saveErr}
	return w.doc, nil
}

type stampedImage struct {
	page    int
	png     []byte
	rect    writer.Rect
	opacity float64
}

type fakeWriterDoc struct {
	pages    int
	pageW    float64
	pageH    float64
	images   []stampedImage
	drawErr  error
	saveErr  error
	saved    bool
	saveData []byte
}

func (d *fakeWriterDoc) PageCount() int { return d.pages }

func (d *fakeWriterDoc) PageSize(int) (float64, float64) { return d.pageW, d.pageH }

func (d *fakeWriterDoc) DrawImage(page int, png []byte, r writer.Rect, opacity float64) error {
	if d.drawErr != nil {
		return d.drawErr
	}
	d.images = append(d.images, stampedImage{page: page, png: png, rect: r, opacity: opacity})
	return nil
}

func (d *fakeWriterDoc) DrawRect(int, writer.Rect, color.NRGBA, float64) error {
	return writer.ErrUnsupported
}

func (d *fakeWriterDoc) Save() ([]byte, error) {
	if d.saveErr != nil {
		return nil, d.saveErr
	}
	d.saved = true
	if d.saveData == nil {
		d.saveData = []byte("%PDF-out")
	}
	return d.saveData, nil
}
