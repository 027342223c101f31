package glyphsvg

import (
	"github.com/gogpu/glyphsvg/outline"
)

// Option configures a Converter.
// Use functional options to customize the conversion.
//
// Example:
//
//	// Default 1024x1024 canvas, glyph scaled to 432 units
//	conv := glyphsvg.NewConverter(font)
//
//	// Small red icons with a fallback font
//	conv := glyphsvg.NewConverter(font,
//	    glyphsvg.WithCanvas(64, 64),
//	    glyphsvg.WithGlyphFraction(0.8),
//	    glyphsvg.WithFill("#c00"),
//	    glyphsvg.WithFallback(symbola),
//	)
type Option func(*options)

// options holds the Converter configuration.
type options struct {
	canvasWidth   float64
	canvasHeight  float64
	glyphSize     float64
	glyphFraction float64
	bounds        BoundsMode
	fill          string
	stroke        string
	strokeWidth   float64
	fallbacks     []*outline.Font
	cacheSize     int
}

// defaultOptions returns the default converter options.
func defaultOptions() options {
	return options{
		canvasWidth:  DefaultCanvasSize,
		canvasHeight: DefaultCanvasSize,
		glyphSize:    DefaultGlyphSize,
		bounds:       BoundsControlPoints,
		fill:         "black",
		stroke:       "none",
	}
}

// target resolves the options into a Normalize target.
func (o options) target() Target {
	size := o.glyphSize
	if o.glyphFraction > 0 {
		size = o.glyphFraction * min(o.canvasWidth, o.canvasHeight)
	}
	return Target{
		CanvasWidth:  o.canvasWidth,
		CanvasHeight: o.canvasHeight,
		GlyphSize:    size,
		Bounds:       o.bounds,
	}
}

// WithCanvas sets the canvas size. The default is 1024x1024.
func WithCanvas(width, height float64) Option {
	return func(o *options) {
		o.canvasWidth = width
		o.canvasHeight = height
	}
}

// WithGlyphSize sets the length, in canvas units, of the longer side of the
// glyph's bounding box. The default is 432.
// It replaces an earlier WithGlyphFraction.
func WithGlyphSize(size float64) Option {
	return func(o *options) {
		o.glyphSize = size
		o.glyphFraction = 0
	}
}

// WithGlyphFraction sizes the glyph as a fraction of the smaller canvas
// side, so 0.42 on a 1024 canvas is about the default size.
// It replaces an earlier WithGlyphSize.
func WithGlyphFraction(f float64) Option {
	return func(o *options) {
		o.glyphFraction = f
	}
}

// WithBounds selects how the glyph's bounding box is computed.
// The default is BoundsControlPoints.
func WithBounds(mode BoundsMode) Option {
	return func(o *options) {
		o.bounds = mode
	}
}

// WithFill sets the fill color written to the output. The default is
// "black".
func WithFill(color string) Option {
	return func(o *options) {
		o.fill = color
	}
}

// WithStroke sets the stroke color and width. A width of 0 disables the
// stroke. The default is "none" with width 0.
func WithStroke(color string, width float64) Option {
	return func(o *options) {
		o.stroke = color
		o.strokeWidth = width
	}
}

// WithFallback adds fonts that are tried, in order, when the primary font
// has no glyph for a code point.
func WithFallback(fonts ...*outline.Font) Option {
	return func(o *options) {
		o.fallbacks = append(o.fallbacks, fonts...)
	}
}

// WithCache keeps up to n converted glyphs so that repeated code points
// are converted once. Failed conversions are not cached. n <= 0 disables
// the cache, which is the default.
func WithCache(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}
