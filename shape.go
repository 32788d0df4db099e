package pdfink

import "github.com/google/uuid"

// Shape is one persisted box highlight. Coordinates are always stored
// normalized to page geometry so they remain valid across re-render and
// zoom; they are converted to pixels only at draw and export time.
//
// Shapes are immutable: erasing removes a shape, it is never edited in
// place.
type Shape struct {
	ID      uuid.UUID
	Page    int
	Rect    NormRect
	Color   RGB
	Opacity float64
}

// NewShape creates a highlight shape with a fresh identifier. The
// rectangle is clamped to the page square and the opacity to (0, 1].
func NewShape(page int, r NormRect, c RGB, opacity float64) Shape {
	return Shape{
		ID:      uuid.New(),
		Page:    page,
		Rect:    r.Clamp(),
		Color:   c,
		Opacity: clamp01(opacity),
	}
}
