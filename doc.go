// Package pdfink implements an annotation pipeline for PDF documents:
// render pages to raster surfaces, draw freehand or box highlights over
// them, erase, and export a new PDF that reproduces the annotated preview
// pixel for pixel.
//
// # Overview
//
// A Session owns one open document and, per page, a base raster surface
// plus two overlay surfaces: an ink layer for freehand strokes and a shape
// layer replayed from the persisted highlight boxes. An Engine translates
// pointer events into overlay mutations, and Export flattens each page
// using the same blend rules as the on-screen composite.
//
//	sess := pdfink.NewSession(fitz.New(), pdfink.WithDPR(2))
//	if err := sess.Open(ctx, pdfBytes); err != nil { ... }
//
//	eng := pdfink.NewEngine(sess, toolbar.Tool)
//	eng.PointerDown(0, pdfink.DevPt(120, 80))
//	eng.PointerMove(0, pdfink.DevPt(340, 86))
//	eng.PointerUp(0, pdfink.DevPt(340, 86))
//
//	out, err := pdfink.Export(ctx, sess, pdfBytes, fpdfwriter.New())
//
// # Coordinate spaces
//
// Persisted highlights are stored in normalized page coordinates (0..1 in
// both axes) and converted to device pixels only at draw and export time,
// so they survive zoom and device-pixel-ratio changes unchanged. See
// Geometry, ToDevice and ToNormalized.
//
// # External collaborators
//
// PDF parsing/rasterization and PDF mutation/serialization are pluggable
// contracts, not part of the pipeline: see the renderer and writer
// packages and their adapters (renderer/fitz, writer/fpdfw,
// writer/pdfcpuw).
//
// # Blend semantics
//
// Freehand ink composites onto the page with multiply
// (result = source x destination / 255 per channel), emulating a physical
// highlighter that darkens without obscuring text. Box highlights
// composite with straight alpha-over using each shape's stored opacity.
// The exported PDF embeds the flattened composite, so preview and export
// agree to within resampling error.
package pdfink
