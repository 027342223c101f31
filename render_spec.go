package glyphsvg

// RenderSpec is everything an emitter needs to serialize one glyph.
// It is created once per conversion and never modified.
type RenderSpec struct {
	// Path is the glyph in canvas space.
	Path GlyphPath

	// Outline is the same glyph in font units, before normalization.
	// Path equals Transform.ApplyPath(Outline).
	Outline GlyphPath

	// Transform maps Outline onto Path.
	Transform Transform

	CanvasWidth  float64
	CanvasHeight float64

	Fill        string
	Stroke      string
	StrokeWidth float64

	// Rune is the converted code point.
	Rune rune

	// FontName is the display name of the font the glyph came from.
	FontName string

	// GlyphName is the glyph's PostScript name, if the font has one.
	GlyphName string

	// UnitsPerEm of the source font.
	UnitsPerEm int
}

// HasStroke reports whether a stroke should be drawn.
func (s *RenderSpec) HasStroke() bool {
	return s.StrokeWidth > 0 && s.Stroke != "" && s.Stroke != "none"
}

// Bounds returns the bounding box of the canvas-space path.
func (s *RenderSpec) Bounds(mode BoundsMode) BoundingBox {
	return s.Path.Bounds(mode)
}
