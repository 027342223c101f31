package outline

import "errors"

// Sentinel errors for outline package.
var (
	// ErrGlyphNotFound is returned when a code point has no mapping in the
	// font's character map.
	ErrGlyphNotFound = errors.New("outline: glyph not found")

	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("outline: empty font data")

	// ErrFontClosed is returned by a Font after Close.
	ErrFontClosed = errors.New("outline: font is closed")

	// ErrUnsupportedGlyph is returned for glyphs without a monochrome vector
	// outline, such as bitmap or colored emoji glyphs.
	ErrUnsupportedGlyph = errors.New("outline: glyph has no vector outline")
)

// BackendError is returned when a backend fails to parse font data or to
// load an outline.
type BackendError struct {
	Backend string
	Op      string
	Err     error
}

func (e *BackendError) Error() string {
	return "outline: " + e.Backend + ": " + e.Op + ": " + e.Err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// UnknownBackendError is returned when a backend name is not registered.
type UnknownBackendError struct {
	Name string
}

func (e *UnknownBackendError) Error() string {
	return "outline: unknown backend " + `"` + e.Name + `"`
}
