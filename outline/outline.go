package outline

import "fmt"

// GlyphID is a glyph index inside a font.
type GlyphID uint32

// PointKind tags a raw outline point.
type PointKind uint8

const (
	// OnCurve marks a point the outline passes through.
	OnCurve PointKind = iota

	// QuadControl marks the control point of a quadratic curve. Two
	// consecutive QuadControl points imply an on-curve point midway between
	// them (TrueType convention).
	QuadControl

	// CubicControl marks one of the two control points of a cubic curve.
	// CubicControl points always come in pairs between on-curve points.
	CubicControl
)

// String returns a string representation of the kind.
func (k PointKind) String() string {
	switch k {
	case OnCurve:
		return "on"
	case QuadControl:
		return "quad"
	case CubicControl:
		return "cubic"
	default:
		return "unknown"
	}
}

// RawPoint is a point of a raw contour, in font units with Y pointing up.
type RawPoint struct {
	X, Y float64
	Kind PointKind
}

// On returns an on-curve point.
func On(x, y float64) RawPoint {
	return RawPoint{X: x, Y: y, Kind: OnCurve}
}

// Quad returns a quadratic control point.
func Quad(x, y float64) RawPoint {
	return RawPoint{X: x, Y: y, Kind: QuadControl}
}

// Cubic returns a cubic control point.
func Cubic(x, y float64) RawPoint {
	return RawPoint{X: x, Y: y, Kind: CubicControl}
}

// RawContour is a cyclic sequence of points. The contour implicitly closes
// from its last point back to its first.
type RawContour []RawPoint

// RawOutline is a glyph outline as stored in the font, before any
// conversion.
type RawOutline struct {
	// Contours in font order.
	Contours []RawContour

	// UnitsPerEm is the size of the em square in font units.
	UnitsPerEm int

	// Advance is the horizontal advance width in font units.
	Advance float64

	// GlyphID is the glyph the outline was loaded from.
	GlyphID GlyphID

	// GlyphName is the PostScript glyph name, if the font has one.
	GlyphName string
}

// IsEmpty reports whether the outline has no contours.
func (o RawOutline) IsEmpty() bool {
	return len(o.Contours) == 0
}

// NumPoints returns the total number of points over all contours.
func (o RawOutline) NumPoints() int {
	n := 0
	for _, c := range o.Contours {
		n += len(c)
	}
	return n
}

// String returns a short description of the outline.
func (o RawOutline) String() string {
	return fmt.Sprintf("glyph %d: %d contours, %d points, upem %d",
		o.GlyphID, len(o.Contours), o.NumPoints(), o.UnitsPerEm)
}

// contourBuilder collects contours from segment-style font APIs
// (move/line/quad/cube) into raw contours.
type contourBuilder struct {
	contours []RawContour
	cur      RawContour
}

func (b *contourBuilder) moveTo(x, y float64) {
	b.flush()
	b.cur = RawContour{On(x, y)}
}

func (b *contourBuilder) lineTo(x, y float64) {
	b.cur = append(b.cur, On(x, y))
}

func (b *contourBuilder) quadTo(cx, cy, x, y float64) {
	b.cur = append(b.cur, Quad(cx, cy), On(x, y))
}

func (b *contourBuilder) cubeTo(c1x, c1y, c2x, c2y, x, y float64) {
	b.cur = append(b.cur, Cubic(c1x, c1y), Cubic(c2x, c2y), On(x, y))
}

// flush finishes the current contour. A trailing on-curve point equal to
// the first point is dropped since the contour closes implicitly.
func (b *contourBuilder) flush() {
	if len(b.cur) == 0 {
		return
	}
	n := len(b.cur)
	if n > 1 && b.cur[n-1] == b.cur[0] {
		b.cur = b.cur[:n-1]
	}
	b.contours = append(b.contours, b.cur)
	b.cur = nil
}

func (b *contourBuilder) finish() []RawContour {
	b.flush()
	return b.contours
}
