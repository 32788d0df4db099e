package pdfink

import (
	"testing"

	"github.com/google/uuid"
)

// TestStoreOrder checks that Get preserves insertion (paint) order.
func TestStoreOrder(t *testing.T) {
	s := NewStore()
	a := NewShape(0, NormRect{X: 0.1, Y: 0.1, W: 0.2, H: 0.05}, Hex("#ffeb3b"), 0.25)
	b := NewShape(0, NormRect{X: 0.5, Y: 0.5, W: 0.1, H: 0.1}, Hex("#f00"), 0.25)

	s.Append(0, a)
	s.Append(0, b)

	got := s.Get(0)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != a.ID || got[1].ID != b.ID {
		t.Error("insertion order not preserved")
	}
}

// TestStoreGetCopies checks that mutating the returned slice does not
// leak into the store.
func TestStoreGetCopies(t *testing.T) {
	s := NewStore()
	s.Append(0, NewShape(0, NormRect{W: 0.1, H: 0.1}, RGB{}, 0.2))

	got := s.Get(0)
	got[0].Opacity = 0.9

	if s.Get(0)[0].Opacity != 0.2 {
		t.Error("Get returned a live reference")
	}
}

// TestStoreRemove checks removal of a middle shape keeps relative order.
func TestStoreRemove(t *testing.T) {
	s := NewStore()
	var shapes []Shape
	for i := 0; i < 3; i++ {
		sh := NewShape(0, NormRect{X: float64(i) * 0.2, W: 0.1, H: 0.1}, RGB{}, 0.2)
		shapes = append(shapes, sh)
		s.Append(0, sh)
	}

	if !s.Remove(0, shapes[1].ID) {
		t.Fatal("Remove reported missing shape")
	}
	got := s.Get(0)
	if len(got) != 2 || got[0].ID != shapes[0].ID || got[1].ID != shapes[2].ID {
		t.Errorf("unexpected sequence after remove: %v", got)
	}

	if s.Remove(0, uuid.New()) {
		t.Error("Remove reported success for unknown id")
	}
}

// TestStoreClear checks that Clear empties every page.
func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Append(0, NewShape(0, NormRect{W: 0.1, H: 0.1}, RGB{}, 0.2))
	s.Append(4, NewShape(4, NormRect{W: 0.1, H: 0.1}, RGB{}, 0.2))

	s.Clear()

	if len(s.Get(0)) != 0 || len(s.Get(4)) != 0 {
		t.Error("store not empty after Clear")
	}
}

// TestNewShapeClamps checks rect and opacity normalization on creation.
func TestNewShapeClamps(t *testing.T) {
	sh := NewShape(1, NormRect{X: -0.2, Y: 0, W: 0.5, H: 2}, RGB{R: 1}, 3)

	if sh.Rect.X != 0 || sh.Rect.Y != 0 {
		t.Errorf("rect origin = (%v, %v), want (0, 0)", sh.Rect.X, sh.Rect.Y)
	}
	if sh.Rect.H != 1 {
		t.Errorf("rect height = %v, want 1", sh.Rect.H)
	}
	if sh.Opacity != 1 {
		t.Errorf("opacity = %v, want 1", sh.Opacity)
	}
	if sh.ID == (Shape{}).ID {
		t.Error("shape id not assigned")
	}
}
