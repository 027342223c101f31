package glyphsvg

import "sort"

// QuadBez is a quadratic Bezier curve from P0 to P2 with control point P1.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval returns the point at parameter t in [0, 1].
func (q QuadBez) Eval(t float64) Point {
	mt := 1 - t
	a, b, c := mt*mt, 2*mt*t, t*t
	return Point{
		X: a*q.P0.X + b*q.P1.X + c*q.P2.X,
		Y: a*q.P0.Y + b*q.P1.Y + c*q.P2.Y,
	}
}

// Raise returns the cubic tracing exactly the same curve. Its control
// points lie two thirds of the way from each endpoint to P1.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3),
		P2: q.P2.Lerp(q.P1, 2.0/3),
		P3: q.P2,
	}
}

// CubicBez is a cubic Bezier curve from P0 to P3 with control points P1
// and P2.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval returns the point at parameter t in [0, 1].
func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return Point{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// Extrema returns, in ascending order, the parameters in [0, 1] where the
// x or y derivative vanishes. There are at most four.
func (c CubicBez) Extrema() []float64 {
	// B'(t)/3 = (d0 - 2*d1 + d2)*t^2 + 2*(d1 - d0)*t + d0
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)

	ts := make([]float64, 0, 4)
	ts = append(ts, solveQuadraticInUnitInterval(d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X)...)
	ts = append(ts, solveQuadraticInUnitInterval(d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y)...)
	sort.Float64s(ts)
	return ts
}

// BoundingBox returns the box around the visible curve, which may be
// smaller than the box around its control points.
func (c CubicBez) BoundingBox() BoundingBox {
	b := BoundingBox{}.Include(c.P0).Include(c.P3)
	for _, t := range c.Extrema() {
		b = b.Include(c.Eval(t))
	}
	return b
}
