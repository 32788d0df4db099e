package pdfink

import "github.com/pdfink/pdfink/surface"

// Option configures a Session during creation.
// Use functional options to customize Session behavior.
//
// Example:
//
//	sess := pdfink.NewSession(r,
//	    pdfink.WithDPR(2),
//	    pdfink.WithBaseScale(1.5),
//	)
type Option func(*config)

// config holds optional configuration for Session creation.
type config struct {
	dpr        float64
	baseScale  float64
	maxOpacity float64
	filter     surface.Filter
	backend    string
}

// defaultConfig returns the default session configuration.
func defaultConfig() config {
	return config{
		dpr:        1,
		baseScale:  1.5,
		maxOpacity: 0.30,
		filter:     surface.FilterBilinear,
		backend:    "", // best available
	}
}

// WithDPR sets the device-pixel-ratio surfaces are allocated at.
// Values below 1 are treated as 1.
func WithDPR(dpr float64) Option {
	return func(c *config) {
		if dpr >= 1 {
			c.dpr = dpr
		}
	}
}

// WithBaseScale sets the fixed base render scale the zoom factor
// multiplies. The default of 1.5 renders 108 pixels per inch at zoom 1.
func WithBaseScale(scale float64) Option {
	return func(c *config) {
		if scale > 0 {
			c.baseScale = scale
		}
	}
}

// WithMaxOpacity sets the ceiling applied to every highlight's opacity,
// guaranteeing underlying text stays legible regardless of user input.
// The default is 0.30. Values are clamped to (0, 1].
func WithMaxOpacity(max float64) Option {
	return func(c *config) {
		if max > 0 && max <= 1 {
			c.maxOpacity = max
		}
	}
}

// WithResampleFilter sets the interpolation used when overlay content is
// carried across a scale change. The default is bilinear.
func WithResampleFilter(f surface.Filter) Option {
	return func(c *config) {
		c.filter = f
	}
}

// WithSurfaceBackend pins surface allocation to a named registered
// backend instead of the best available one.
func WithSurfaceBackend(name string) Option {
	return func(c *config) {
		c.backend = name
	}
}
