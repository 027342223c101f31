package glyphsvg

// Matrix is a 2D affine transform:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// SVG writes the same transform as matrix(A D B E C F).
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the transform that leaves points unchanged.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate returns a transform moving points by (x, y).
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale returns a transform scaling x by sx and y by sy. A negative sy
// mirrors the y axis.
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, E: sy}
}

// Multiply returns the composition m∘o: o is applied first, then m.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		A: m.A*o.A + m.B*o.D,
		B: m.A*o.B + m.B*o.E,
		C: m.A*o.C + m.B*o.F + m.C,
		D: m.D*o.A + m.E*o.D,
		E: m.D*o.B + m.E*o.E,
		F: m.D*o.C + m.E*o.F + m.F,
	}
}

// TransformPoint maps p through m.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsFinite reports whether every coefficient is finite.
func (m Matrix) IsFinite() bool {
	for _, v := range [...]float64{m.A, m.B, m.C, m.D, m.E, m.F} {
		if !isFinite(v) {
			return false
		}
	}
	return true
}
