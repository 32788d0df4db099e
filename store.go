package pdfink

import (
	"sync"

	"github.com/google/uuid"
)

// Store holds, per page, the ordered sequence of persisted highlight
// shapes. Insertion order is paint order: later shapes draw over earlier
// ones.
//
// The store is a pure state container: it is created empty when a
// document is opened, mutated by the stroke engine, read by repaint and
// export, and cleared when the document is closed or replaced. Mutations
// are synchronous; the caller triggers the repaint of the affected page.
type Store struct {
	mu    sync.Mutex
	pages map[int][]Shape
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{pages: make(map[int][]Shape)}
}

// Get returns the page's shapes in insertion order. The returned slice
// is a copy; mutating it does not affect the store.
func (s *Store) Get(page int) []Shape {
	s.mu.Lock()
	defer s.mu.Unlock()

	shapes := s.pages[page]
	out := make([]Shape, len(shapes))
	copy(out, shapes)
	return out
}

// Append adds a shape at the end of the page's paint order.
func (s *Store) Append(page int, shape Shape) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pages[page] = append(s.pages[page], shape)
}

// Remove deletes the shape with the given id from the page, reporting
// whether it was present. Relative order of the remaining shapes is
// unchanged.
func (s *Store) Remove(page int, id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	shapes := s.pages[page]
	for i, sh := range shapes {
		if sh.ID == id {
			s.pages[page] = append(shapes[:i:i], shapes[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops all shapes on all pages.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pages = make(map[int][]Shape)
}
