package glyphsvg

import (
	"fmt"
	"math"
)

// Default target geometry: a 1024x1024 canvas with the glyph's longer side
// scaled to 432 units.
const (
	DefaultCanvasSize = 1024
	DefaultGlyphSize  = 432
)

// Target describes where Normalize places a glyph.
type Target struct {
	// CanvasWidth and CanvasHeight are the size of the output canvas.
	CanvasWidth, CanvasHeight float64

	// GlyphSize is the length the longer side of the glyph's bounding box
	// is scaled to.
	GlyphSize float64

	// Bounds selects how the bounding box is computed.
	Bounds BoundsMode
}

// DefaultTarget returns the default target geometry.
func DefaultTarget() Target {
	return Target{
		CanvasWidth:  DefaultCanvasSize,
		CanvasHeight: DefaultCanvasSize,
		GlyphSize:    DefaultGlyphSize,
		Bounds:       BoundsControlPoints,
	}
}

// Center returns the center of the canvas.
func (t Target) Center() Point {
	return Point{X: t.CanvasWidth / 2, Y: t.CanvasHeight / 2}
}

// Validate reports whether every size is a positive finite number.
func (t Target) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"canvas width", t.CanvasWidth},
		{"canvas height", t.CanvasHeight},
		{"glyph size", t.GlyphSize},
	} {
		if !isFinite(v.value) || v.value <= 0 {
			return fmt.Errorf("%w: %s %v", ErrInvalidTarget, v.name, v.value)
		}
	}
	return nil
}

// Transform maps a glyph from its source space onto the canvas:
//
//	x' = Scale*x + TranslateX
//	y' = ±Scale*y + TranslateY   (minus when FlipY is set)
//
// Transform is a pure value; the same Transform can be applied to any
// number of paths.
type Transform struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
	FlipY      bool
}

// IdentityTransform returns the transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

// Matrix folds flip, scale and translation into one affine matrix.
func (t Transform) Matrix() Matrix {
	sy := t.Scale
	if t.FlipY {
		sy = -sy
	}
	return Matrix{
		A: t.Scale, B: 0, C: t.TranslateX,
		D: 0, E: sy, F: t.TranslateY,
	}
}

// Apply maps a single point.
func (t Transform) Apply(p Point) Point {
	return t.Matrix().TransformPoint(p)
}

// ApplyPath maps every point of p and tags the result as canvas space.
func (t Transform) ApplyPath(p GlyphPath) GlyphPath {
	return p.Transform(t.Matrix(), SpaceCanvas)
}

// IsIdentity reports whether t moves no point by more than epsilon per unit
// of scale and translation.
func (t Transform) IsIdentity(epsilon float64) bool {
	return !t.FlipY &&
		math.Abs(t.Scale-1) <= epsilon &&
		math.Abs(t.TranslateX) <= epsilon &&
		math.Abs(t.TranslateY) <= epsilon
}

// String returns the transform in SVG matrix notation.
func (t Transform) String() string {
	m := t.Matrix()
	return fmt.Sprintf("matrix(%g %g %g %g %g %g)", m.A, m.D, m.B, m.E, m.C, m.F)
}

// Normalize scales and centers p on the canvas described by t.
//
// The longer side of the bounding box is scaled to t.GlyphSize, keeping the
// aspect ratio, and the center of the bounding box is moved to the center
// of the canvas. A path in font units is flipped vertically on the way,
// since font Y points up and canvas Y points down; a path already in canvas
// space is not flipped again, which makes Normalize idempotent.
//
// Normalize returns ErrEmptyGlyph for a path without contours and
// ErrDegenerateGlyph when the bounding box has no width or no height or
// the coordinates are not finite. Both are checked before any division.
func Normalize(p GlyphPath, t Target) (GlyphPath, Transform, error) {
	tr, err := ComputeTransform(p, t)
	if err != nil {
		return GlyphPath{}, Transform{}, err
	}

	out := tr.ApplyPath(p)
	if !out.IsFinite() {
		return GlyphPath{}, Transform{}, fmt.Errorf("%w: non-finite canvas coordinates", ErrDegenerateGlyph)
	}
	return out, tr, nil
}

// ComputeTransform returns the transform Normalize would apply to p,
// without applying it.
func ComputeTransform(p GlyphPath, t Target) (Transform, error) {
	if err := t.Validate(); err != nil {
		return Transform{}, err
	}
	if p.IsEmpty() {
		return Transform{}, ErrEmptyGlyph
	}
	if !p.IsFinite() {
		return Transform{}, fmt.Errorf("%w: non-finite coordinates", ErrDegenerateGlyph)
	}

	bbox := p.Bounds(t.Bounds)
	w, h := bbox.Width(), bbox.Height()
	if !(w > 0) || !(h > 0) {
		return Transform{}, fmt.Errorf("%w: bounding box %gx%g", ErrDegenerateGlyph, w, h)
	}

	scale := t.GlyphSize / math.Max(w, h)
	if !isFinite(scale) || scale <= 0 {
		return Transform{}, fmt.Errorf("%w: scale %v", ErrDegenerateGlyph, scale)
	}

	flip := p.Space() == SpaceFontUnits
	sy := scale
	if flip {
		sy = -scale
	}

	c := bbox.Center()
	canvas := t.Center()
	tr := Transform{
		Scale:      scale,
		TranslateX: canvas.X - scale*c.X,
		TranslateY: canvas.Y - sy*c.Y,
		FlipY:      flip,
	}

	Logger().Debug("glyphsvg: normalize",
		"space", p.Space(),
		"bounds", t.Bounds,
		"width", w, "height", h,
		"scale", tr.Scale, "tx", tr.TranslateX, "ty", tr.TranslateY)
	return tr, nil
}
