package pdfink

import (
	"context"
	"image"
	"sync"
	"sync/atomic"

	"github.com/pdfink/pdfink/internal/blend"
	"github.com/pdfink/pdfink/renderer"
	"github.com/pdfink/pdfink/surface"
)

// Session owns one open document and the per-page surfaces derived from
// it: a base raster of the rendered page content, an ink overlay holding
// freehand strokes, and a shape overlay replayed from the store.
//
// All three surfaces of a page share one size,
// ceil(widthPx*dpr) x ceil(heightPx*dpr), and one render generation: a
// re-render replaces them wholesale, carrying the ink overlay's pixels
// forward by resampling and re-deriving the shape overlay from the
// store's normalized coordinates.
type Session struct {
	r   renderer.Renderer
	cfg config

	// gen is the render generation token. Every RenderAll call takes a
	// new value; in-flight passes re-check it after each suspension
	// point and abort silently once superseded.
	gen atomic.Uint64

	mu         sync.Mutex
	doc        renderer.Document
	pages      []*pageState
	zoom       float64
	eraserHint bool

	store *Store
}

// pageState bundles one page's registered surfaces for one render
// generation.
type pageState struct {
	geom   Geometry
	base   surface.Surface
	ink    surface.Surface
	shapes surface.Surface
}

func (p *pageState) close() {
	if p == nil {
		return
	}
	_ = p.base.Close()
	_ = p.ink.Close()
	_ = p.shapes.Close()
}

// NewSession creates a session rendering through r.
func NewSession(r renderer.Renderer, opts ...Option) *Session {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Session{
		r:     r,
		cfg:   cfg,
		zoom:  1,
		store: NewStore(),
	}
}

// Open parses the document bytes, replaces any previously open document
// along with all derived surfaces, resets the annotation store, and
// renders every page at the current zoom.
//
// On a parse failure the previous document, if any, is left untouched
// and a *ParseError is returned.
func (s *Session) Open(ctx context.Context, data []byte) error {
	doc, err := s.r.Load(ctx, data)
	if err != nil {
		return &ParseError{Err: err}
	}

	s.mu.Lock()
	old := s.doc
	oldPages := s.pages
	s.doc = doc
	s.pages = make([]*pageState, doc.PageCount())
	s.mu.Unlock()

	// Discarding the superseded generation's state outside the lock;
	// any in-flight render pass for it aborts on its next token check.
	for _, p := range oldPages {
		p.close()
	}
	if old != nil {
		_ = old.Close()
	}
	s.store.Clear()

	Logger().Info("document opened", "pages", doc.PageCount())
	return s.RenderAll(ctx)
}

// Close discards the open document and all derived surfaces.
func (s *Session) Close() error {
	s.gen.Add(1) // invalidate in-flight renders

	s.mu.Lock()
	doc := s.doc
	pages := s.pages
	s.doc = nil
	s.pages = nil
	s.mu.Unlock()

	for _, p := range pages {
		p.close()
	}
	s.store.Clear()
	if doc != nil {
		return doc.Close()
	}
	return nil
}

// RenderAll re-renders every page at the current zoom under a fresh
// render generation.
//
// Pages are processed in order. For each page the base surface is
// rasterized by the external renderer, a fresh ink overlay is allocated
// with the prior overlay's pixels resampled into it, and the shape
// overlay is replayed from the store. The generation token is checked
// before and after the asynchronous render step and again atomically
// with registration; a stale pass stops without touching further shared
// state. Pages registered before the pass went stale remain; the newer
// pass re-renders them in its own order.
//
// A page that fails to rasterize is logged and left blank; remaining
// pages continue. The returned error is non-nil only for context
// cancellation or surface allocation failure.
func (s *Session) RenderAll(ctx context.Context) error {
	gen := s.gen.Add(1)

	s.mu.Lock()
	doc := s.doc
	zoom := s.zoom
	pageCount := len(s.pages)
	s.mu.Unlock()

	if doc == nil {
		return nil
	}

	scale := s.cfg.baseScale * zoom
	log := Logger()

	for i := 0; i < pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.gen.Load() != gen {
			log.Debug("render pass superseded", "generation", gen, "page", i)
			return nil
		}

		pw, ph := doc.PageSize(i)
		geom := Geometry{
			PageIndex: i,
			WidthPx:   pw * scale,
			HeightPx:  ph * scale,
			Scale:     scale,
		}
		w, h := geom.SurfaceSize(s.cfg.dpr)

		base, err := s.newSurface(w, h)
		if err != nil {
			return err
		}
		ink, err := s.newSurface(w, h)
		if err != nil {
			_ = base.Close()
			return err
		}
		shapes, err := s.newSurface(w, h)
		if err != nil {
			_ = base.Close()
			_ = ink.Close()
			return err
		}
		st := &pageState{geom: geom, base: base, ink: ink, shapes: shapes}

		// Suspension point: the external rasterizer.
		img, renderErr := doc.RenderPage(ctx, i, scale*s.cfg.dpr)
		if s.gen.Load() != gen {
			st.close()
			log.Debug("render pass superseded", "generation", gen, "page", i)
			return nil
		}
		if renderErr != nil {
			// Base stays blank; the page is retried on the next pass.
			log.Warn("page render failed", "err", &RenderError{Page: i, Err: renderErr})
		} else {
			base.DrawImage(img, s.cfg.filter)
		}

		s.replayShapes(st)

		// Check-then-register must not interleave with a newer pass
		// resetting the registry, so both happen under the lock.
		s.mu.Lock()
		if s.gen.Load() != gen || i >= len(s.pages) {
			s.mu.Unlock()
			st.close()
			log.Debug("render pass superseded", "generation", gen, "page", i)
			return nil
		}
		prior := s.pages[i]
		if prior != nil {
			ink.ResampleFrom(prior.ink, s.cfg.filter)
		}
		s.pages[i] = st
		s.mu.Unlock()

		prior.close()
		log.Debug("page rendered", "page", i, "scale", scale, "w", w, "h", h)
	}
	return nil
}

// SetZoom changes the zoom factor and re-renders all pages. Overlay
// content carries forward: normalized shapes are replayed at the new
// geometry and ink pixels are resampled.
func (s *Session) SetZoom(ctx context.Context, zoom float64) error {
	if zoom <= 0 {
		zoom = 1
	}
	s.mu.Lock()
	s.zoom = zoom
	s.mu.Unlock()
	return s.RenderAll(ctx)
}

// Zoom returns the current zoom factor.
func (s *Session) Zoom() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoom
}

// SetEraserCursorHint updates the pointer affordance flag hosts read to
// switch the cursor over registered overlays. No other state changes.
func (s *Session) SetEraserCursorHint(active bool) {
	s.mu.Lock()
	s.eraserHint = active
	s.mu.Unlock()
}

// EraserCursorHint reports whether the eraser affordance is active.
func (s *Session) EraserCursorHint() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eraserHint
}

// PageCount returns the number of pages of the open document, 0 when no
// document is open.
func (s *Session) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// PageGeometry returns the registered geometry for a page. ok is false
// while the page has not been rendered yet.
func (s *Session) PageGeometry(page int) (g Geometry, ok bool) {
	st := s.page(page)
	if st == nil {
		return Geometry{}, false
	}
	return st.geom, true
}

// Ink returns the page's freehand ink overlay, or nil while the page has
// not been rendered yet. The stroke engine mutates it; all other readers
// treat it as read-only.
func (s *Session) Ink(page int) surface.Surface {
	st := s.page(page)
	if st == nil {
		return nil
	}
	return st.ink
}

// DPR returns the device-pixel-ratio the session allocates surfaces at.
func (s *Session) DPR() float64 { return s.cfg.dpr }

// Store returns the session's annotation store.
func (s *Session) Store() *Store { return s.store }

// ClampOpacity caps an opacity to the session's configured maximum.
func (s *Session) ClampOpacity(v float64) float64 {
	if v > s.cfg.maxOpacity {
		return s.cfg.maxOpacity
	}
	return clamp01(v)
}

// RepaintShapes re-derives the page's shape overlay from the store by
// replaying the shape sequence in insertion order onto a cleared
// surface. Replaying is idempotent: the same sequence always yields
// pixel-identical results.
func (s *Session) RepaintShapes(page int) {
	st := s.page(page)
	if st == nil {
		return
	}
	s.replayShapes(st)
}

// Composite flattens the page to a single image using the on-screen
// blend rules: base, then ink with multiply, then shapes with alpha-over.
// Export uses the same routine, which is what guarantees preview/export
// parity.
func (s *Session) Composite(page int) (*image.RGBA, error) {
	st := s.page(page)
	if st == nil {
		return nil, &RenderError{Page: page, Err: errPageNotRendered}
	}
	return compositePage(st.base.Snapshot(), st.ink, st.shapes)
}

// replayShapes clears the shape overlay and redraws the page's shapes in
// insertion order.
func (s *Session) replayShapes(st *pageState) {
	st.shapes.Clear()
	for _, sh := range s.store.Get(st.geom.PageIndex) {
		x, y, w, h := sh.Rect.ToDeviceRect(st.geom, s.cfg.dpr)
		st.shapes.FillRect(x, y, w, h, sh.Color.NRGBA(s.ClampOpacity(sh.Opacity)))
	}
}

// compositePage applies the pipeline's blend rules onto base in place
// and returns it.
func compositePage(base *image.RGBA, ink, shapes surface.Surface) (*image.RGBA, error) {
	if err := blend.Composite(base, ink.Snapshot(), blend.Multiply); err != nil {
		return nil, err
	}
	if err := blend.Composite(base, shapes.Snapshot(), blend.SourceOver); err != nil {
		return nil, err
	}
	return base, nil
}

// page returns the registered state for a page index, nil when absent.
func (s *Session) page(i int) *pageState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.pages) {
		return nil
	}
	return s.pages[i]
}

// newSurface allocates a surface through the configured backend.
func (s *Session) newSurface(w, h int) (surface.Surface, error) {
	if s.cfg.backend != "" {
		return surface.NewByName(s.cfg.backend, w, h)
	}
	return surface.New(w, h)
}

// document returns the open renderer handle, nil when no document is
// open.
func (s *Session) document() renderer.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}
