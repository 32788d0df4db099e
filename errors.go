package pdfink

import (
	"errors"
	"fmt"
)

// errPageNotRendered marks access to a page the current generation has
// not registered surfaces for yet.
var errPageNotRendered = errors.New("page not rendered")

// ParseError indicates the supplied bytes are not a readable document.
// It is fatal to the open operation; a previously opened document, if
// any, is left untouched.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "pdfink: parse document: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// RenderError indicates a single page failed to rasterize. It does not
// abort the remaining pages; the failed page's surface is left blank and
// is retried on the next render pass.
type RenderError struct {
	Page int
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("pdfink: render page %d: %v", e.Page, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// ExportError indicates the export pipeline failed to flatten a page or
// the writer failed to embed an image or serialize. In-session annotation
// state is preserved, so the export can be retried.
type ExportError struct {
	Page int // -1 when the failure is not tied to a single page
	Err  error
}

func (e *ExportError) Error() string {
	if e.Page < 0 {
		return "pdfink: export: " + e.Err.Error()
	}
	return fmt.Sprintf("pdfink: export page %d: %v", e.Page, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
