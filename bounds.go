package glyphsvg

import "math"

// BoundingBox is an axis-aligned box over the points of a GlyphPath.
// The zero value is the empty box; it contains no points and has no size.
type BoundingBox struct {
	Min, Max Point

	nonEmpty bool
}

// NewBoundingBox creates a box spanning the two corners.
// The corners are normalized so Min <= Max.
func NewBoundingBox(p1, p2 Point) BoundingBox {
	return BoundingBox{}.Include(p1).Include(p2)
}

// IsEmpty reports whether the box contains no points.
func (b BoundingBox) IsEmpty() bool {
	return !b.nonEmpty
}

// Include returns the smallest box containing b and p.
func (b BoundingBox) Include(p Point) BoundingBox {
	if !b.nonEmpty {
		return BoundingBox{Min: p, Max: p, nonEmpty: true}
	}
	return BoundingBox{
		Min:      Point{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)},
		Max:      Point{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)},
		nonEmpty: true,
	}
}

// Contains reports whether p lies inside b or on its border.
func (b BoundingBox) Contains(p Point) bool {
	return b.nonEmpty &&
		p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Union returns the smallest box containing both b and other.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	if other.IsEmpty() {
		return b
	}
	return b.Include(other.Min).Include(other.Max)
}

// Width returns the horizontal extent, 0 for the empty box.
func (b BoundingBox) Width() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Max.X - b.Min.X
}

// Height returns the vertical extent, 0 for the empty box.
func (b BoundingBox) Height() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Max.Y - b.Min.Y
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Point {
	return Point{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
	}
}

// BoundsMode selects which points contribute to a path's bounding box.
type BoundsMode uint8

const (
	// BoundsControlPoints spans every point of the path including curve
	// control points. This matches the glyph box stored in TrueType fonts.
	BoundsControlPoints BoundsMode = iota

	// BoundsTight spans the visible outline only, using curve extrema.
	BoundsTight
)

// String returns a string representation of the mode.
func (m BoundsMode) String() string {
	switch m {
	case BoundsControlPoints:
		return "control-points"
	case BoundsTight:
		return "tight"
	default:
		return "unknown"
	}
}
