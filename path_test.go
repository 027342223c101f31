package glyphsvg

import (
	"math"
	"testing"
)

func square(x0, y0, x1, y1 float64) Contour {
	return NewContour(Pt(x0, y0),
		LineSeg(Pt(x1, y0)),
		LineSeg(Pt(x1, y1)),
		LineSeg(Pt(x0, y1)),
	)
}

func TestNewContourCloses(t *testing.T) {
	c := square(0, 0, 10, 10)

	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 (closing line appended)", c.Len())
	}
	if !c.IsClosed() {
		t.Error("IsClosed() = false")
	}
	if last := c.Segments()[3]; last.Kind != SegmentLine || last.To != Pt(0, 0) {
		t.Errorf("closing segment = %+v, want line to (0,0)", last)
	}
}

func TestNewContourAlreadyClosed(t *testing.T) {
	c := NewContour(Pt(0, 0),
		LineSeg(Pt(10, 0)),
		CubicSeg(Pt(10, 5), Pt(5, 10), Pt(0, 0)),
	)
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if !c.IsClosed() {
		t.Error("IsClosed() = false")
	}
}

func TestNewContourEmpty(t *testing.T) {
	c := NewContour(Pt(1, 1))
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if c.IsClosed() {
		t.Error("contour without segments reported closed")
	}
}

func TestContourIsImmutable(t *testing.T) {
	segs := []Segment{LineSeg(Pt(10, 0)), LineSeg(Pt(10, 10))}
	c := NewContour(Pt(0, 0), segs...)

	segs[0] = LineSeg(Pt(-1, -1))
	if got := c.Segments()[0].To; got != Pt(10, 0) {
		t.Errorf("contour changed through input slice: %v", got)
	}

	out := c.Segments()
	out[1] = LineSeg(Pt(-1, -1))
	if got := c.Segments()[1].To; got != Pt(10, 10) {
		t.Errorf("contour changed through Segments() result: %v", got)
	}
}

func TestContourPoints(t *testing.T) {
	c := NewContour(Pt(0, 0),
		CubicSeg(Pt(1, 2), Pt(3, 4), Pt(5, 0)),
	)
	var got []Point
	c.Points(func(p Point) { got = append(got, p) })

	want := []Point{Pt(0, 0), Pt(1, 2), Pt(3, 4), Pt(5, 0), Pt(0, 0)}
	if len(got) != len(want) {
		t.Fatalf("Points() visited %d points, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGlyphPathBounds(t *testing.T) {
	// A bump whose control points reach y=10 while the curve peaks at 7.5.
	bump := NewContour(Pt(0, 0),
		CubicSeg(Pt(0, 10), Pt(10, 10), Pt(10, 0)),
	)
	p := NewGlyphPath(SpaceFontUnits, bump)

	tests := []struct {
		mode BoundsMode
		maxY float64
	}{
		{BoundsControlPoints, 10},
		{BoundsTight, 7.5},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			b := p.Bounds(tt.mode)
			if b.Min != Pt(0, 0) {
				t.Errorf("Min = %v, want (0,0)", b.Min)
			}
			if b.Max.X != 10 || math.Abs(b.Max.Y-tt.maxY) > 1e-9 {
				t.Errorf("Max = %v, want (10,%v)", b.Max, tt.maxY)
			}
		})
	}
}

func TestGlyphPathBoundsEmpty(t *testing.T) {
	p := NewGlyphPath(SpaceFontUnits)

	for _, mode := range []BoundsMode{BoundsControlPoints, BoundsTight} {
		b := p.Bounds(mode)
		if !b.IsEmpty() {
			t.Errorf("%v: empty path has non-empty bounds %+v", mode, b)
		}
		if b.Width() != 0 || b.Height() != 0 {
			t.Errorf("%v: empty bounds have size %vx%v", mode, b.Width(), b.Height())
		}
	}
}

func TestGlyphPathTransform(t *testing.T) {
	p := NewGlyphPath(SpaceFontUnits, square(0, 0, 10, 10), square(2, 2, 8, 8))
	q := p.Transform(Translate(1, 1).Multiply(Scale(2, -2)), SpaceCanvas)

	if q.Space() != SpaceCanvas {
		t.Errorf("Space() = %v, want canvas", q.Space())
	}
	if p.Space() != SpaceFontUnits {
		t.Error("Transform modified the source path")
	}
	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
	if got := q.Contour(0).Start(); got != Pt(1, 1) {
		t.Errorf("outer start = %v, want (1,1)", got)
	}
	if got := q.Contour(1).Start(); got != Pt(5, -3) {
		t.Errorf("inner start = %v, want (5,-3)", got)
	}
	if got := p.Contour(1).Start(); got != Pt(2, 2) {
		t.Errorf("source inner start changed to %v", got)
	}
}

func TestGlyphPathIsFinite(t *testing.T) {
	ok := NewGlyphPath(SpaceCanvas, square(0, 0, 1, 1))
	if !ok.IsFinite() {
		t.Error("finite path reported non-finite")
	}

	bad := NewGlyphPath(SpaceCanvas, square(0, 0, math.Inf(1), 1))
	if bad.IsFinite() {
		t.Error("path with Inf reported finite")
	}
}

func TestBoundingBox(t *testing.T) {
	b := NewBoundingBox(Pt(5, 8), Pt(1, 2))

	if b.Min != Pt(1, 2) || b.Max != Pt(5, 8) {
		t.Errorf("NewBoundingBox normalized to %v..%v", b.Min, b.Max)
	}
	if b.Width() != 4 || b.Height() != 6 {
		t.Errorf("size = %vx%v, want 4x6", b.Width(), b.Height())
	}
	if b.Center() != Pt(3, 5) {
		t.Errorf("Center() = %v, want (3,5)", b.Center())
	}
	if !b.Contains(Pt(1, 8)) || b.Contains(Pt(0, 0)) {
		t.Error("Contains() wrong on border or outside point")
	}

	var empty BoundingBox
	if empty.Contains(Pt(0, 0)) {
		t.Error("empty box contains a point")
	}
	if got := empty.Union(b); got != b {
		t.Errorf("empty.Union(b) = %+v, want %+v", got, b)
	}
}
