package glyphsvg

import "slices"

// Space identifies the coordinate space of a GlyphPath.
type Space uint8

const (
	// SpaceFontUnits is the font design grid: Y increases upward from the
	// baseline, one unit is 1/unitsPerEm of an em.
	SpaceFontUnits Space = iota

	// SpaceCanvas is the output canvas: Y increases downward from the top.
	SpaceCanvas
)

// String returns a string representation of the space.
func (s Space) String() string {
	switch s {
	case SpaceFontUnits:
		return "font-units"
	case SpaceCanvas:
		return "canvas"
	default:
		return "unknown"
	}
}

// SegmentKind is the drawing operation of a Segment.
type SegmentKind uint8

const (
	// SegmentLine draws a straight line to To.
	SegmentLine SegmentKind = iota

	// SegmentCubic draws a cubic Bezier curve through C1 and C2 to To.
	SegmentCubic
)

// String returns a string representation of the kind.
func (k SegmentKind) String() string {
	switch k {
	case SegmentLine:
		return "Line"
	case SegmentCubic:
		return "Cubic"
	default:
		return "Unknown"
	}
}

// Segment is one drawing step of a contour. It starts where the previous
// segment ended (or at the contour start).
//
// For SegmentLine only To is meaningful; C1 and C2 are zero.
type Segment struct {
	Kind SegmentKind
	C1   Point
	C2   Point
	To   Point
}

// LineSeg returns a line segment ending at to.
func LineSeg(to Point) Segment {
	return Segment{Kind: SegmentLine, To: to}
}

// CubicSeg returns a cubic segment with control points c1, c2 ending at to.
func CubicSeg(c1, c2, to Point) Segment {
	return Segment{Kind: SegmentCubic, C1: c1, C2: c2, To: to}
}

// mapPoints returns the segment with every point passed through fn.
func (s Segment) mapPoints(fn func(Point) Point) Segment {
	if s.Kind == SegmentLine {
		return Segment{Kind: SegmentLine, To: fn(s.To)}
	}
	return Segment{Kind: SegmentCubic, C1: fn(s.C1), C2: fn(s.C2), To: fn(s.To)}
}

// Contour is one closed sub-path of a glyph. The last segment always ends
// at Start.
type Contour struct {
	start    Point
	segments []Segment
}

// NewContour creates a closed contour. If the last segment does not end at
// start, a closing line is appended. The segments slice is copied.
func NewContour(start Point, segments ...Segment) Contour {
	segs := make([]Segment, len(segments), len(segments)+1)
	copy(segs, segments)
	if len(segs) > 0 && segs[len(segs)-1].To != start {
		segs = append(segs, LineSeg(start))
	}
	return Contour{start: start, segments: segs}
}

// Start returns the first point of the contour.
func (c Contour) Start() Point {
	return c.start
}

// Len returns the number of segments.
func (c Contour) Len() int {
	return len(c.segments)
}

// Segments returns a copy of the contour's segments.
func (c Contour) Segments() []Segment {
	return slices.Clone(c.segments)
}

// IsClosed reports whether the last segment ends at the start point.
// A contour without segments is not closed.
func (c Contour) IsClosed() bool {
	return len(c.segments) > 0 && c.segments[len(c.segments)-1].To == c.start
}

// Points calls fn for every point of the contour in drawing order,
// including control points.
func (c Contour) Points(fn func(Point)) {
	fn(c.start)
	for _, s := range c.segments {
		if s.Kind == SegmentCubic {
			fn(s.C1)
			fn(s.C2)
		}
		fn(s.To)
	}
}

func (c Contour) mapPoints(fn func(Point) Point) Contour {
	segs := make([]Segment, len(c.segments))
	for i, s := range c.segments {
		segs[i] = s.mapPoints(fn)
	}
	return Contour{start: fn(c.start), segments: segs}
}

// GlyphPath is the complete outline of one glyph: an ordered list of closed
// contours, all in the same coordinate space.
//
// GlyphPath is immutable. Every operation returns a new path.
type GlyphPath struct {
	space    Space
	contours []Contour
}

// NewGlyphPath creates a path in the given space. The contours slice is
// copied; contour order is preserved.
func NewGlyphPath(space Space, contours ...Contour) GlyphPath {
	return GlyphPath{space: space, contours: slices.Clone(contours)}
}

// Space returns the coordinate space of the path.
func (p GlyphPath) Space() Space {
	return p.space
}

// Len returns the number of contours.
func (p GlyphPath) Len() int {
	return len(p.contours)
}

// IsEmpty reports whether the path has no contours.
func (p GlyphPath) IsEmpty() bool {
	return len(p.contours) == 0
}

// Contour returns the i'th contour.
func (p GlyphPath) Contour(i int) Contour {
	return p.contours[i]
}

// Contours returns a copy of the contour list.
func (p GlyphPath) Contours() []Contour {
	return slices.Clone(p.contours)
}

// Bounds returns the bounding box of the path. The empty path yields the
// empty box.
func (p GlyphPath) Bounds(mode BoundsMode) BoundingBox {
	var bbox BoundingBox
	for _, c := range p.contours {
		if mode != BoundsTight {
			c.Points(func(pt Point) { bbox = bbox.Include(pt) })
			continue
		}
		cur := c.start
		bbox = bbox.Include(cur)
		for _, s := range c.segments {
			if s.Kind == SegmentCubic {
				bbox = bbox.Union(CubicBez{P0: cur, P1: s.C1, P2: s.C2, P3: s.To}.BoundingBox())
			} else {
				bbox = bbox.Include(s.To)
			}
			cur = s.To
		}
	}
	return bbox
}

// IsFinite reports whether every coordinate of the path is finite.
func (p GlyphPath) IsFinite() bool {
	ok := true
	for _, c := range p.contours {
		c.Points(func(pt Point) {
			if !pt.IsFinite() {
				ok = false
			}
		})
	}
	return ok
}

// Transform returns a new path with every point mapped through m, tagged
// with the given space.
func (p GlyphPath) Transform(m Matrix, space Space) GlyphPath {
	contours := make([]Contour, len(p.contours))
	for i, c := range p.contours {
		contours[i] = c.mapPoints(m.TransformPoint)
	}
	return GlyphPath{space: space, contours: contours}
}
