package glyphsvg

import (
	"slices"

	"github.com/gogpu/glyphsvg/outline"
)

// rawKind tags a segment at ingestion, before quadratics are raised.
type rawKind uint8

const (
	rawLine rawKind = iota
	rawQuad
	rawCubic
)

// rawSegment is a segment in the font's own curve representation.
type rawSegment struct {
	kind rawKind
	c1   Point // quad control, or first cubic control
	c2   Point // second cubic control
	to   Point
}

// Reasons reported in ContourIssue.
const (
	reasonNonFinite     = "non-finite coordinate"
	reasonNoOnCurve     = "no on-curve point"
	reasonDanglingCubic = "dangling cubic control point"
	reasonMixedControl  = "quadratic control followed by cubic control"
	reasonNoSegments    = "fewer than one segment"
	reasonUnknownKind   = "unknown point kind"
)

// Flatten converts a raw outline into a GlyphPath in font units made of
// line and cubic segments only.
//
// Implied on-curve points between consecutive quadratic control points are
// made explicit, quadratic curves are raised to cubic curves and zero-length
// lines are dropped. Every contour of the result is explicitly closed.
//
// Malformed contours are left out of the result and reported as issues;
// the remaining contours keep their original order. An empty outline yields
// an empty path.
func Flatten(raw outline.RawOutline) (GlyphPath, []ContourIssue) {
	var (
		contours []Contour
		issues   []ContourIssue
	)
	for i, rc := range raw.Contours {
		c, reason := flattenContour(rc)
		if reason != "" {
			issue := ContourIssue{Index: i, Reason: reason}
			issues = append(issues, issue)
			Logger().Warn("glyphsvg: dropped malformed contour",
				"glyph", raw.GlyphID, "contour", i, "reason", reason)
			continue
		}
		contours = append(contours, c)
	}
	return GlyphPath{space: SpaceFontUnits, contours: contours}, issues
}

// flattenContour converts one raw contour. A non-empty reason means the
// contour is malformed.
func flattenContour(rc outline.RawContour) (Contour, string) {
	if len(rc) == 0 {
		return Contour{}, reasonNoSegments
	}
	for _, p := range rc {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return Contour{}, reasonNonFinite
		}
		if p.Kind > outline.CubicControl {
			return Contour{}, reasonUnknownKind
		}
	}

	pts := expandImplied(rc)

	first := -1
	for i, p := range pts {
		if p.Kind == outline.OnCurve {
			first = i
			break
		}
	}
	if first < 0 {
		return Contour{}, reasonNoOnCurve
	}
	// Rotate so the contour starts on the curve.
	pts = slices.Concat(pts[first:], pts[:first])

	raws, reason := ingest(pts)
	if reason != "" {
		return Contour{}, reason
	}

	start := rawPoint(pts[0])
	segs := make([]Segment, 0, len(raws)+1)
	cur := start
	for _, rs := range raws {
		switch rs.kind {
		case rawLine:
			if rs.to == cur {
				continue
			}
			segs = append(segs, LineSeg(rs.to))
		case rawQuad:
			c := QuadBez{P0: cur, P1: rs.c1, P2: rs.to}.Raise()
			if c.P1 == cur && c.P2 == cur && c.P3 == cur {
				continue
			}
			segs = append(segs, CubicSeg(c.P1, c.P2, c.P3))
		case rawCubic:
			if rs.c1 == cur && rs.c2 == cur && rs.to == cur {
				continue
			}
			segs = append(segs, CubicSeg(rs.c1, rs.c2, rs.to))
		}
		cur = rs.to
	}
	if len(segs) == 0 {
		return Contour{}, reasonNoSegments
	}
	return NewContour(start, segs...), ""
}

// expandImplied returns a copy of rc with an on-curve point inserted midway
// between every two consecutive quadratic control points, wrapping around
// the end of the contour.
func expandImplied(rc outline.RawContour) outline.RawContour {
	n := len(rc)
	out := make(outline.RawContour, 0, n+n/2)
	for i, p := range rc {
		out = append(out, p)
		next := rc[(i+1)%n]
		if n > 1 && p.Kind == outline.QuadControl && next.Kind == outline.QuadControl {
			out = append(out, outline.On((p.X+next.X)/2, (p.Y+next.Y)/2))
		}
	}
	return out
}

// ingest walks a contour that starts with an on-curve point and returns its
// tagged segments. The walk wraps around to the start point.
func ingest(pts outline.RawContour) ([]rawSegment, string) {
	n := len(pts)
	at := func(i int) outline.RawPoint { return pts[i%n] }

	var segs []rawSegment
	for i := 1; i <= n; {
		p := at(i)
		switch p.Kind {
		case outline.OnCurve:
			segs = append(segs, rawSegment{kind: rawLine, to: rawPoint(p)})
			i++
		case outline.QuadControl:
			// at(n) is the on-curve start, so i+1 never runs past it.
			next := at(i + 1)
			if next.Kind != outline.OnCurve {
				return nil, reasonMixedControl
			}
			segs = append(segs, rawSegment{kind: rawQuad, c1: rawPoint(p), to: rawPoint(next)})
			i += 2
		case outline.CubicControl:
			if i+2 > n {
				return nil, reasonDanglingCubic
			}
			c2, end := at(i+1), at(i+2)
			if c2.Kind != outline.CubicControl || end.Kind != outline.OnCurve {
				return nil, reasonDanglingCubic
			}
			segs = append(segs, rawSegment{
				kind: rawCubic,
				c1:   rawPoint(p),
				c2:   rawPoint(c2),
				to:   rawPoint(end),
			})
			i += 3
		}
	}
	return segs, ""
}

func rawPoint(p outline.RawPoint) Point {
	return Point{X: p.X, Y: p.Y}
}
