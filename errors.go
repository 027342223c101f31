package glyphsvg

import (
	"errors"
	"fmt"

	"github.com/gogpu/glyphsvg/outline"
)

// Sentinel errors for the conversion pipeline.
var (
	// ErrGlyphNotFound is returned when a code point has no mapping in any
	// of the fonts tried. It is the same value as outline.ErrGlyphNotFound.
	ErrGlyphNotFound = outline.ErrGlyphNotFound

	// ErrEmptyGlyph is returned by Normalize for a path without contours,
	// such as the outline of a space character.
	ErrEmptyGlyph = errors.New("glyphsvg: empty glyph")

	// ErrDegenerateGlyph is returned by Normalize when the bounding box has
	// no area or the path has non-finite coordinates.
	ErrDegenerateGlyph = errors.New("glyphsvg: degenerate glyph")

	// ErrInvalidTarget is returned by Normalize for a canvas or glyph size
	// that is not a positive finite number.
	ErrInvalidTarget = errors.New("glyphsvg: invalid target size")

	// ErrMalformedContour is wrapped by every ContourIssue.
	ErrMalformedContour = errors.New("glyphsvg: malformed contour")
)

// ContourIssue describes a raw contour that was dropped by Flatten.
type ContourIssue struct {
	// Index is the position of the contour in the raw outline.
	Index int

	// Reason is a short description of the defect.
	Reason string
}

func (e ContourIssue) Error() string {
	return fmt.Sprintf("glyphsvg: malformed contour %d: %s", e.Index, e.Reason)
}

func (e ContourIssue) Unwrap() error {
	return ErrMalformedContour
}
