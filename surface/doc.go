// Copyright 2026 The pdfink Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the pixel surface abstraction backing page
// bitmaps and annotation overlays.
//
// A Surface is a mutable 2D pixel buffer with the handful of operations
// the annotation pipeline needs: clearing, round-capped line stamping
// (brush and eraser), rectangle fills, resampling from a predecessor
// surface, and snapshotting for compositing.
//
// Backends register themselves with the package registry; the built-in
// "raster" backend is a pure-Go image.RGBA implementation and is always
// available. Alternate backends (for example GPU-resident surfaces) can
// be registered by third parties without changes to this package.
//
// Surfaces are NOT thread-safe. Each surface must be mutated from a
// single goroutine, or external synchronization must be used.
package surface
