package pdfink

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"
)

// TestExportMultiplyParity checks that the exported raster matches the
// preview composite: red ink at 20% opacity over a white page multiplies
// down to (255, 204, 204).
func TestExportMultiplyParity(t *testing.T) {
	s, _ := newTestSession(t, 1)

	tool := Tool{Kind: ToolFreehand, Color: RGB{R: 1}, Opacity: 0.2, Thickness: 8}
	e := NewEngine(s, func() Tool { return tool })
	e.PointerDown(0, DevPt(20, 100))
	e.PointerMove(0, DevPt(80, 100))
	e.PointerUp(0, DevPt(80, 100))

	fw := &fakeWriter{}
	if _, err := Export(context.Background(), s, validPDF, fw); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(fw.doc.images) != 1 {
		t.Fatalf("%d pages stamped, want 1", len(fw.doc.images))
	}

	img, err := png.Decode(bytes.NewReader(fw.doc.images[0].png))
	if err != nil {
		t.Fatalf("decode stamped png: %v", err)
	}

	near := func(got uint32, want int) bool {
		g := int(got >> 8)
		return g >= want-3 && g <= want+3
	}
	r, g, b, _ := img.At(50, 100).RGBA()
	if !near(r, 255) || !near(g, 204) || !near(b, 204) {
		t.Errorf("stroked pixel = (%d, %d, %d), want about (255, 204, 204)", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = img.At(10, 20).RGBA()
	if !near(r, 255) || !near(g, 255) || !near(b, 255) {
		t.Errorf("untouched pixel = (%d, %d, %d), want white", r>>8, g>>8, b>>8)
	}

	// The preview composite and the export raster agree pixel for pixel.
	preview, err := s.Composite(0)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	pr, pg, pb, _ := preview.At(50, 100).RGBA()
	er, eg, eb, _ := img.At(50, 100).RGBA()
	if pr>>8 != er>>8 || pg>>8 != eg>>8 || pb>>8 != eb>>8 {
		t.Errorf("preview (%d, %d, %d) and export (%d, %d, %d) disagree",
			pr>>8, pg>>8, pb>>8, er>>8, eg>>8, eb>>8)
	}
}

// TestExportSkipsUnannotatedPages checks that only annotated pages are
// flattened; the rest keep their original content.
func TestExportSkipsUnannotatedPages(t *testing.T) {
	s, _ := newTestSession(t, 3)
	s.Store().Append(1, NewShape(1, NormRect{X: 0.1, Y: 0.1, W: 0.2, H: 0.1}, Hex("#ffeb3b"), 0.25))
	s.RepaintShapes(1)

	fw := &fakeWriter{}
	data, err := Export(context.Background(), s, validPDF, fw)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(data) == 0 {
		t.Error("no output bytes")
	}
	if !fw.doc.saved {
		t.Error("Save not called")
	}

	if len(fw.doc.images) != 1 {
		t.Fatalf("%d pages stamped, want 1", len(fw.doc.images))
	}
	st := fw.doc.images[0]
	if st.page != 1 {
		t.Errorf("stamped page %d, want 1", st.page)
	}
	if st.rect.X != 0 || st.rect.Y != 0 || st.rect.W != 100 || st.rect.H != 200 {
		t.Errorf("stamp rect = %+v, want full page", st.rect)
	}
	if st.opacity != 1 {
		t.Errorf("stamp opacity = %v, want 1", st.opacity)
	}
}

// TestExportNoAnnotations checks that a clean document exports without
// flattening anything.
func TestExportNoAnnotations(t *testing.T) {
	s, _ := newTestSession(t, 2)

	fw := &fakeWriter{}
	data, err := Export(context.Background(), s, validPDF, fw)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(fw.doc.images) != 0 {
		t.Errorf("%d pages stamped, want 0", len(fw.doc.images))
	}
	if len(data) == 0 {
		t.Error("no output bytes")
	}
}

// TestExportAtOverlayResolution checks that flattening happens at the
// overlay's pixel size, not the page's point size.
func TestExportAtOverlayResolution(t *testing.T) {
	s, _ := newTestSession(t, 1)
	if err := s.SetZoom(context.Background(), 2); err != nil {
		t.Fatalf("SetZoom: %v", err)
	}
	s.Store().Append(0, NewShape(0, NormRect{X: 0.1, Y: 0.1, W: 0.2, H: 0.1}, Hex("#ffeb3b"), 0.25))
	s.RepaintShapes(0)

	fw := &fakeWriter{}
	if _, err := Export(context.Background(), s, validPDF, fw); err != nil {
		t.Fatalf("Export: %v", err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(fw.doc.images[0].png))
	if err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.Width != 200 || cfg.Height != 400 {
		t.Errorf("flattened size = %dx%d, want 200x400", cfg.Width, cfg.Height)
	}
}

// TestExportLoadError checks that a writer load failure surfaces as
// *ExportError not tied to a page.
func TestExportLoadError(t *testing.T) {
	s, _ := newTestSession(t, 1)

	fw := &fakeWriter{loadErr: errors.New("corrupt")}
	_, err := Export(context.Background(), s, validPDF, fw)

	var eerr *ExportError
	if !errors.As(err, &eerr) {
		t.Fatalf("err = %v, want *ExportError", err)
	}
	if eerr.Page != -1 {
		t.Errorf("Page = %d, want -1", eerr.Page)
	}
}

// TestExportDrawErrorKeepsState checks that a failed export leaves the
// annotation state intact so the user can retry.
func TestExportDrawErrorKeepsState(t *testing.T) {
	s, _ := newTestSession(t, 1)
	sh := NewShape(0, NormRect{X: 0.1, Y: 0.1, W: 0.2, H: 0.1}, Hex("#ffeb3b"), 0.25)
	s.Store().Append(0, sh)
	s.RepaintShapes(0)

	fw := &fakeWriter{drawErr: errors.New("stamp failed")}
	_, err := Export(context.Background(), s, validPDF, fw)
	var eerr *ExportError
	if !errors.As(err, &eerr) {
		t.Fatalf("err = %v, want *ExportError", err)
	}
	if eerr.Page != 0 {
		t.Errorf("Page = %d, want 0", eerr.Page)
	}

	shapes := s.Store().Get(0)
	if len(shapes) != 1 || shapes[0].ID != sh.ID {
		t.Error("annotation state changed by failed export")
	}
}

// TestExportSaveError checks that a serialization failure surfaces as
// *ExportError not tied to a page.
func TestExportSaveError(t *testing.T) {
	s, _ := newTestSession(t, 1)
	s.Store().Append(0, NewShape(0, NormRect{X: 0.1, Y: 0.1, W: 0.2, H: 0.1}, Hex("#ffeb3b"), 0.25))
	s.RepaintShapes(0)

	fw := &fakeWriter{saveErr: errors.New("write failed")}
	_, err := Export(context.Background(), s, validPDF, fw)
	var eerr *ExportError
	if !errors.As(err, &eerr) || eerr.Page != -1 {
		t.Errorf("err = %v, want *ExportError with Page -1", err)
	}
}

// TestExportNoDocument checks exporting before any successful open.
func TestExportNoDocument(t *testing.T) {
	s := NewSession(newFakeRenderer(1))
	t.Cleanup(func() { _ = s.Close() })

	_, err := Export(context.Background(), s, validPDF, &fakeWriter{})
	var eerr *ExportError
	if !errors.As(err, &eerr) || eerr.Page != -1 {
		t.Errorf("err = %v, want *ExportError with Page -1", err)
	}
}
