package glyphsvg

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glyphsvg/outline"
)

var on, quad, cubic = outline.On, outline.Quad, outline.Cubic

func rawGlyph(contours ...outline.RawContour) outline.RawOutline {
	return outline.RawOutline{Contours: contours, UnitsPerEm: 1000}
}

// segmentsOf returns the segments of every contour, for comparison.
func segmentsOf(p GlyphPath) [][]Segment {
	out := make([][]Segment, p.Len())
	for i := range out {
		out[i] = p.Contour(i).Segments()
	}
	return out
}

func TestFlattenEmpty(t *testing.T) {
	p, issues := Flatten(outline.RawOutline{})

	assert.True(t, p.IsEmpty())
	assert.Equal(t, SpaceFontUnits, p.Space())
	assert.Empty(t, issues)
}

func TestFlattenLines(t *testing.T) {
	p, issues := Flatten(rawGlyph(outline.RawContour{
		on(0, 0), on(100, 0), on(100, 100), on(0, 100),
	}))
	require.Empty(t, issues)
	require.Equal(t, 1, p.Len())

	c := p.Contour(0)
	assert.Equal(t, Pt(0, 0), c.Start())
	assert.True(t, c.IsClosed())

	want := []Segment{
		LineSeg(Pt(100, 0)),
		LineSeg(Pt(100, 100)),
		LineSeg(Pt(0, 100)),
		LineSeg(Pt(0, 0)),
	}
	if diff := cmp.Diff(want, c.Segments()); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenQuadRaisedToCubic(t *testing.T) {
	p, issues := Flatten(rawGlyph(outline.RawContour{
		on(0, 0), quad(30, 60), on(60, 0),
	}))
	require.Empty(t, issues)

	segs := p.Contour(0).Segments()
	require.Len(t, segs, 2)

	want := CubicSeg(Pt(20, 40), Pt(40, 40), Pt(60, 0))
	if diff := cmp.Diff(want, segs[0], cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("raised segment mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, LineSeg(Pt(0, 0)), segs[1])

	// Lossless at the midpoint.
	q := QuadBez{Pt(0, 0), Pt(30, 60), Pt(60, 0)}
	c := CubicBez{Pt(0, 0), segs[0].C1, segs[0].C2, segs[0].To}
	assert.True(t, c.Eval(0.5).Approx(q.Eval(0.5), 1e-9))
}

func TestFlattenImpliedMidpoints(t *testing.T) {
	// Two consecutive off-curve points imply an on-curve point between them.
	p, issues := Flatten(rawGlyph(outline.RawContour{
		on(0, 0), quad(0, 100), quad(100, 100), on(100, 0),
	}))
	require.Empty(t, issues)

	segs := p.Contour(0).Segments()
	require.Len(t, segs, 3)
	assert.Equal(t, SegmentCubic, segs[0].Kind)
	assert.Equal(t, Pt(50, 100), segs[0].To, "implied on-curve point")
	assert.Equal(t, SegmentCubic, segs[1].Kind)
	assert.Equal(t, Pt(100, 0), segs[1].To)
	assert.Equal(t, LineSeg(Pt(0, 0)), segs[2])
}

func TestFlattenAllOffCurve(t *testing.T) {
	// A TrueType circle may consist of control points only; every
	// on-curve point is implied.
	p, issues := Flatten(rawGlyph(outline.RawContour{
		quad(0, 100), quad(100, 100), quad(100, 0), quad(0, 0),
	}))
	require.Empty(t, issues)
	require.Equal(t, 1, p.Len())

	c := p.Contour(0)
	assert.Equal(t, 4, c.Len())
	assert.True(t, c.IsClosed())
	for _, s := range c.Segments() {
		assert.Equal(t, SegmentCubic, s.Kind)
	}

	// The implied points are the side midpoints of the control square.
	b := p.Bounds(BoundsTight)
	assert.InDelta(t, 0, b.Min.X, 1e-9)
	assert.InDelta(t, 100, b.Max.X, 1e-9)
	assert.Equal(t, Pt(50, 100), c.Start())
}

func TestFlattenWrapAround(t *testing.T) {
	// Off-curve points at both ends imply a midpoint across the seam, and
	// the contour is rotated to start on the curve.
	p, issues := Flatten(rawGlyph(outline.RawContour{
		quad(0, 100), on(50, 150), quad(100, 100), on(100, 0), quad(0, 0),
	}))
	require.Empty(t, issues)

	c := p.Contour(0)
	assert.Equal(t, Pt(50, 150), c.Start())
	assert.True(t, c.IsClosed())

	var ends []Point
	for _, s := range c.Segments() {
		ends = append(ends, s.To)
	}
	assert.Equal(t, []Point{Pt(100, 0), Pt(0, 50), Pt(50, 150)}, ends)
}

func TestFlattenCubic(t *testing.T) {
	p, issues := Flatten(rawGlyph(outline.RawContour{
		on(0, 0), cubic(0, 50), cubic(50, 100), on(100, 100), on(100, 0),
	}))
	require.Empty(t, issues)

	want := []Segment{
		CubicSeg(Pt(0, 50), Pt(50, 100), Pt(100, 100)),
		LineSeg(Pt(100, 0)),
		LineSeg(Pt(0, 0)),
	}
	if diff := cmp.Diff(want, p.Contour(0).Segments()); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenCubicClosingCurve(t *testing.T) {
	// The last curve runs back to the start point; no extra line is added.
	p, issues := Flatten(rawGlyph(outline.RawContour{
		on(0, 0), on(100, 0), cubic(100, 100), cubic(0, 100),
	}))
	require.Empty(t, issues)

	segs := p.Contour(0).Segments()
	require.Len(t, segs, 2)
	assert.Equal(t, CubicSeg(Pt(100, 100), Pt(0, 100), Pt(0, 0)), segs[1])
}

func TestFlattenDropsZeroLengthLines(t *testing.T) {
	p, issues := Flatten(rawGlyph(outline.RawContour{
		on(0, 0), on(0, 0), on(10, 0), on(10, 0), on(10, 10), on(0, 0),
	}))
	require.Empty(t, issues)

	segs := p.Contour(0).Segments()
	assert.Len(t, segs, 3)
	for i, s := range segs {
		from := p.Contour(0).Start()
		if i > 0 {
			from = segs[i-1].To
		}
		assert.NotEqual(t, from, s.To, "segment %d has zero length", i)
	}
}

func TestFlattenMalformedContours(t *testing.T) {
	tests := []struct {
		name    string
		contour outline.RawContour
		reason  string
	}{
		{"empty", outline.RawContour{}, reasonNoSegments},
		{"single point", outline.RawContour{on(5, 5)}, reasonNoSegments},
		{"repeated point", outline.RawContour{on(5, 5), on(5, 5), on(5, 5)}, reasonNoSegments},
		{"lone quad control", outline.RawContour{quad(5, 5)}, reasonNoOnCurve},
		{"only cubic controls", outline.RawContour{cubic(0, 0), cubic(1, 1)}, reasonNoOnCurve},
		{"dangling cubic", outline.RawContour{on(0, 0), cubic(10, 10), on(20, 0)}, reasonDanglingCubic},
		{"three cubic controls", outline.RawContour{on(0, 0), cubic(1, 1), cubic(2, 2), cubic(3, 3), on(4, 0)}, reasonDanglingCubic},
		{"quad then cubic", outline.RawContour{on(0, 0), quad(1, 1), cubic(2, 2), cubic(3, 3), on(4, 0)}, reasonMixedControl},
		{"nan", outline.RawContour{on(0, 0), on(math.NaN(), 1), on(1, 0)}, reasonNonFinite},
		{"inf", outline.RawContour{on(0, 0), on(math.Inf(1), 1), on(1, 0)}, reasonNonFinite},
		{"unknown kind", outline.RawContour{on(0, 0), {X: 1, Y: 1, Kind: 9}, on(1, 0)}, reasonUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good := outline.RawContour{on(0, 0), on(10, 0), on(10, 10)}
			p, issues := Flatten(rawGlyph(good, tt.contour, good))

			require.Len(t, issues, 1)
			assert.Equal(t, 1, issues[0].Index)
			assert.Equal(t, tt.reason, issues[0].Reason)
			assert.True(t, errors.Is(issues[0], ErrMalformedContour))

			// The rest of the glyph survives.
			assert.Equal(t, 2, p.Len())
		})
	}
}

func TestFlattenSquareWithHole(t *testing.T) {
	outer := outline.RawContour{on(0, 0), on(0, 400), on(400, 400), on(400, 0)}
	inner := outline.RawContour{on(100, 100), on(300, 100), on(300, 300), on(100, 300)}

	p, issues := Flatten(rawGlyph(outer, inner))
	require.Empty(t, issues)
	require.Equal(t, 2, p.Len())

	assert.Equal(t, Pt(0, 0), p.Contour(0).Start())
	assert.Equal(t, Pt(100, 100), p.Contour(1).Start())
	for i := range p.Len() {
		assert.True(t, p.Contour(i).IsClosed(), "contour %d", i)
	}
}

func TestFlattenOnlyLinesAndCubics(t *testing.T) {
	p, _ := Flatten(rawGlyph(
		outline.RawContour{on(0, 0), quad(10, 20), quad(20, 20), on(30, 0), cubic(20, -10), cubic(10, -10)},
	))
	for _, segs := range segmentsOf(p) {
		for _, s := range segs {
			if s.Kind != SegmentLine && s.Kind != SegmentCubic {
				t.Errorf("unexpected segment kind %v", s.Kind)
			}
		}
	}
}

func TestFlattenDoesNotModifyInput(t *testing.T) {
	raw := rawGlyph(outline.RawContour{quad(0, 100), on(50, 150), quad(100, 100), on(100, 0)})
	before := append(outline.RawContour(nil), raw.Contours[0]...)

	Flatten(raw)

	assert.Equal(t, before, raw.Contours[0])
}
