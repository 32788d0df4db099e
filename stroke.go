package pdfink

import (
	"math"

	"github.com/pdfink/pdfink/surface"
)

// ToolKind selects the stroke engine's interaction model.
type ToolKind uint8

const (
	// ToolBox drags out rectangular highlight shapes persisted in the
	// store.
	ToolBox ToolKind = iota

	// ToolFreehand draws capped-width ink segments directly into the
	// page's overlay surface.
	ToolFreehand
)

// Tool is the live tool state sampled on every pointer event. Hosts
// supply it through a ToolFunc so a tool change mid-stroke takes effect
// on the very next segment; nothing is captured at stroke start.
type Tool struct {
	Kind ToolKind

	// Color is the highlight color.
	Color RGB

	// Opacity is the requested strength; the session caps it so
	// underlying text stays legible.
	Opacity float64

	// Thickness is the brush diameter (freehand) or the minimum box
	// height (box), in device pixels at device-pixel-ratio 1.
	Thickness float64

	// Eraser switches the tool to removal: destination-out compositing
	// for freehand, shape removal for box.
	Eraser bool
}

// ToolFunc returns the current tool state. Called on every pointer
// event.
type ToolFunc func() Tool

// minDragPx is the commit threshold for box drags: drags where either
// floored dimension stays at or under this many device pixels are
// treated as accidental clicks and discarded silently.
const minDragPx = 3

// Engine consumes pointer input and applies brush and eraser operations
// onto the active page's overlays.
//
// One stroke is active at a time; a new pointer-down implicitly ends any
// dangling prior stroke state. Pointer capture is the host's concern:
// the engine keeps a stroke open until PointerUp or PointerLeave, so a
// captured pointer may wander outside the surface bounds mid-stroke.
//
// Engine methods must be called from the session's interaction
// goroutine; they are not safe for concurrent use.
type Engine struct {
	session *Session
	tool    ToolFunc

	active     bool
	page       int
	down       DevPoint
	last       DevPoint
	preview    NormRect
	hasPreview bool
}

// NewEngine creates a stroke engine mutating s, reading live tool state
// through tool.
func NewEngine(s *Session, tool ToolFunc) *Engine {
	return &Engine{session: s, tool: tool}
}

// PointerDown starts a stroke at a device point on the given page. For
// the box tool with the eraser active it instead removes the hit shape.
func (e *Engine) PointerDown(page int, at DevPoint) {
	if e.active {
		// Dangling stroke from a missed pointer-up: drop it.
		e.reset()
	}
	t := e.tool()

	if t.Kind == ToolBox && t.Eraser {
		e.eraseShapeAt(page, at)
		return
	}

	e.active = true
	e.page = page
	e.down = at
	e.last = at
	e.hasPreview = false

	if t.Kind == ToolFreehand {
		// Zero-length segment stamps the initial dot.
		e.drawSegment(t, at, at)
	}
}

// PointerMove extends the active stroke to a new device point. Events
// for other pages or without an active stroke are ignored.
func (e *Engine) PointerMove(page int, at DevPoint) {
	if !e.active || page != e.page {
		return
	}
	t := e.tool()

	switch t.Kind {
	case ToolFreehand:
		e.drawSegment(t, e.last, at)
	case ToolBox:
		if geom, ok := e.session.PageGeometry(e.page); ok {
			x, y, w, h := e.dragRect(t, at)
			e.preview = NormRectFromPoints(
				DevPt(x, y), DevPt(x+w, y+h), geom, e.session.DPR(),
			)
			e.hasPreview = true
		}
	}
	e.last = at
}

// PointerUp ends the active stroke. A box drag commits a highlight shape
// only when both floored dimensions exceed the minimum drag threshold;
// sub-threshold drags are discarded silently (an accidental click, not
// an error).
func (e *Engine) PointerUp(page int, at DevPoint) {
	if !e.active || page != e.page {
		return
	}
	t := e.tool()

	switch t.Kind {
	case ToolFreehand:
		e.drawSegment(t, e.last, at)
	case ToolBox:
		e.commitBox(t, at)
	}
	e.reset()
}

// PointerLeave ends a freehand stroke at its last point. A box drag
// stays active: the pointer is captured for the duration of the drag.
func (e *Engine) PointerLeave(page int) {
	if !e.active || page != e.page {
		return
	}
	if t := e.tool(); t.Kind == ToolFreehand {
		e.reset()
	}
}

// PreviewRect returns the in-progress box drag in normalized
// coordinates, for hosts to paint the live preview.
func (e *Engine) PreviewRect() (NormRect, bool) {
	return e.preview, e.hasPreview
}

// drawSegment stamps one capped-width segment into the page's ink
// overlay. Width rescales by the device-pixel-ratio so visual thickness
// stays constant across DPI.
func (e *Engine) drawSegment(t Tool, from, to DevPoint) {
	ink := e.session.Ink(e.page)
	if ink == nil {
		return
	}
	ink.StrokeLine(
		surface.Pt(from.X, from.Y),
		surface.Pt(to.X, to.Y),
		surface.StrokeStyle{
			Color: t.Color.NRGBA(e.session.ClampOpacity(t.Opacity)),
			Width: t.Thickness * e.session.DPR(),
			Erase: t.Eraser,
		},
	)
}

// dragRect computes the device-space rectangle of the current box drag.
// A near-horizontal drag has its height floored to the tool thickness,
// centered on the down point, matching how a highlighter sweep across a
// text line behaves.
func (e *Engine) dragRect(t Tool, at DevPoint) (x, y, w, h float64) {
	thick := t.Thickness * e.session.DPR()

	x = math.Min(e.down.X, at.X)
	w = math.Abs(at.X - e.down.X)
	y = math.Min(e.down.Y, at.Y)
	h = math.Abs(at.Y - e.down.Y)
	if h < thick {
		y = e.down.Y - thick/2
		h = thick
	}
	return x, y, w, h
}

// commitBox persists the finished drag as a highlight shape when it
// clears the minimum drag threshold.
func (e *Engine) commitBox(t Tool, at DevPoint) {
	geom, ok := e.session.PageGeometry(e.page)
	if !ok {
		return
	}
	// The threshold applies after flooring: a flat sweep keeps its
	// floored height, an accidental click fails on width.
	x, y, w, h := e.dragRect(t, at)
	if w <= minDragPx || h <= minDragPx {
		return
	}
	rect := NormRectFromPoints(DevPt(x, y), DevPt(x+w, y+h), geom, e.session.DPR())

	shape := NewShape(e.page, rect, t.Color, e.session.ClampOpacity(t.Opacity))
	e.session.Store().Append(e.page, shape)
	e.session.RepaintShapes(e.page)
}

// eraseShapeAt removes the topmost (most recently added) shape
// containing the normalized hit point. Last-wins on overlap: the shape
// the user sees painted on top is the one removed.
func (e *Engine) eraseShapeAt(page int, at DevPoint) {
	geom, ok := e.session.PageGeometry(page)
	if !ok {
		return
	}
	np := ToNormalized(at, geom, e.session.DPR())

	shapes := e.session.Store().Get(page)
	for i := len(shapes) - 1; i >= 0; i-- {
		if shapes[i].Rect.Contains(np) {
			if e.session.Store().Remove(page, shapes[i].ID) {
				e.session.RepaintShapes(page)
			}
			return
		}
	}
}

// reset drops all in-progress stroke state.
func (e *Engine) reset() {
	e.active = false
	e.hasPreview = false
	e.preview = NormRect{}
}
