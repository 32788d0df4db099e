// Copyright 2026 The pdfink Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"testing"
)

func rasterFactory(opts Options) (Surface, error) {
	return NewRaster(opts.Width, opts.Height), nil
}

// TestGlobalRasterBackend checks the built-in backend is registered and
// usable by name.
func TestGlobalRasterBackend(t *testing.T) {
	s, err := NewByName("raster", 10, 20)
	if err != nil {
		t.Fatalf("NewByName: %v", err)
	}
	defer s.Close()
	if s.Width() != 10 || s.Height() != 20 {
		t.Errorf("size = %dx%d", s.Width(), s.Height())
	}
}

// TestNewByNameUnknown checks the typed error for unregistered names.
func TestNewByNameUnknown(t *testing.T) {
	_, err := NewByName("metal", 10, 10)

	var nf *BackendNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want *BackendNotFoundError", err)
	}
	if nf.Name != "metal" {
		t.Errorf("Name = %q", nf.Name)
	}
}

// TestListPriorityOrder checks List sorts highest priority first.
func TestListPriorityOrder(t *testing.T) {
	r := &Registry{}
	r.Register("low", 1, rasterFactory, nil)
	r.Register("high", 50, rasterFactory, nil)
	r.Register("mid", 10, rasterFactory, nil)

	got := r.List()
	want := []string{"high", "mid", "low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List() = %v, want %v", got, want)
		}
	}
}

// TestNewFallsThroughUnavailable checks New skips unavailable backends
// in priority order.
func TestNewFallsThroughUnavailable(t *testing.T) {
	r := &Registry{}
	r.Register("gpu", 50, rasterFactory, func() bool { return false })
	r.Register("cpu", 10, rasterFactory, nil)

	s, err := r.New(Options{Width: 5, Height: 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()
}

// TestNewByNameUnavailable checks the typed error for present but
// unusable backends.
func TestNewByNameUnavailable(t *testing.T) {
	r := &Registry{}
	r.Register("gpu", 50, rasterFactory, func() bool { return false })

	_, err := r.NewByName("gpu", Options{Width: 5, Height: 5})
	var ua *BackendUnavailableError
	if !errors.As(err, &ua) {
		t.Fatalf("err = %v, want *BackendUnavailableError", err)
	}
}

// TestNewEmptyRegistry checks the sentinel when nothing is registered.
func TestNewEmptyRegistry(t *testing.T) {
	r := &Registry{}
	if _, err := r.New(Options{Width: 5, Height: 5}); !errors.Is(err, ErrNoBackendAvailable) {
		t.Fatalf("err = %v, want ErrNoBackendAvailable", err)
	}
}

// TestRegisterReplaces checks re-registering a name swaps the entry.
func TestRegisterReplaces(t *testing.T) {
	r := &Registry{}
	r.Register("x", 1, rasterFactory, nil)
	r.Register("x", 99, rasterFactory, nil)

	if got := r.List(); len(got) != 1 || got[0] != "x" {
		t.Fatalf("List() = %v", got)
	}
}
