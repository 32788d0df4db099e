package pdfink

import (
	"bytes"
	"context"
	"image/png"

	"github.com/pdfink/pdfink/surface"
	"github.com/pdfink/pdfink/writer"
)

// Export produces a PDF that visually reproduces the session's annotated
// preview.
//
// For each annotated page, the page content is re-rendered at the
// overlay's exact pixel resolution (not the display scale, which may
// have changed since the overlay was drawn), composited with the same
// blend rules as the preview (multiply for freehand ink, alpha-over for
// box shapes), flattened to a single image and drawn over the full page
// through the writer. Pages without any annotation keep their original,
// unflattened content.
//
// Failures surface as *ExportError; in-session annotation state is
// untouched, so a failed export can be retried.
func Export(ctx context.Context, s *Session, original []byte, w writer.Writer) ([]byte, error) {
	doc := s.document()
	if doc == nil {
		return nil, &ExportError{Page: -1, Err: errPageNotRendered}
	}

	out, err := w.Load(original)
	if err != nil {
		return nil, &ExportError{Page: -1, Err: err}
	}

	log := Logger()
	for i := 0; i < s.PageCount(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, &ExportError{Page: i, Err: err}
		}

		st := s.page(i)
		if st == nil {
			continue
		}
		if isBlank(st.ink) && isBlank(st.shapes) {
			continue
		}

		// Re-render at the overlay's resolution for exact pixel
		// alignment with the annotation layers.
		img, err := doc.RenderPage(ctx, i, st.geom.Scale*s.cfg.dpr)
		if err != nil {
			return nil, &ExportError{Page: i, Err: &RenderError{Page: i, Err: err}}
		}
		base := surface.NewRaster(st.ink.Width(), st.ink.Height())
		base.DrawImage(img, s.cfg.filter)

		flat, err := compositePage(base.Data(), st.ink, st.shapes)
		if err != nil {
			return nil, &ExportError{Page: i, Err: err}
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, flat); err != nil {
			return nil, &ExportError{Page: i, Err: err}
		}

		pw, ph := out.PageSize(i)
		if err := out.DrawImage(i, buf.Bytes(), writer.Rect{X: 0, Y: 0, W: pw, H: ph}, 1); err != nil {
			return nil, &ExportError{Page: i, Err: err}
		}
		log.Debug("page flattened", "page", i, "w", st.ink.Width(), "h", st.ink.Height())
	}

	data, err := out.Save()
	if err != nil {
		return nil, &ExportError{Page: -1, Err: err}
	}
	log.Info("document exported", "bytes", len(data))
	return data, nil
}

// isBlank reports whether a surface holds no visible pixels.
func isBlank(s surface.Surface) bool {
	snap := s.Snapshot()
	for i := 3; i < len(snap.Pix); i += 4 {
		if snap.Pix[i] != 0 {
			return false
		}
	}
	return true
}
