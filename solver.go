package glyphsvg

import "math"

// Root finding for the derivative of a cubic segment, used to locate curve
// extrema when computing tight bounds.

// solveQuadratic finds real roots of a*x^2 + b*x + c = 0 in ascending order.
// A zero or negligible a degrades to the linear case; an all-zero
// polynomial yields a single 0.
func solveQuadratic(a, b, c float64) []float64 {
	sc0 := c / a
	sc1 := b / a
	if !isFinite(sc0) || !isFinite(sc1) {
		root := -c / b
		if isFinite(root) {
			return []float64{root}
		}
		if c == 0.0 && b == 0.0 {
			return []float64{0.0}
		}
		return nil
	}

	arg := sc1*sc1 - 4.0*sc0
	if !isFinite(arg) {
		// Discriminant overflow: take the dominant root and derive the other.
		return sortedPair(-sc1, sc0/-sc1)
	}
	if arg < 0.0 {
		return nil
	}
	if arg == 0.0 {
		return []float64{-0.5 * sc1}
	}

	// Stable form, avoids cancellation between -b and sqrt(disc).
	root1 := -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	return sortedPair(root1, sc0/root1)
}

func sortedPair(r1, r2 float64) []float64 {
	if !isFinite(r2) {
		return []float64{r1}
	}
	if r1 > r2 {
		return []float64{r2, r1}
	}
	return []float64{r1, r2}
}

// solveQuadraticInUnitInterval returns the roots of a*x^2 + b*x + c = 0
// lying in [0, 1]. Roots within 1e-12 of a boundary are clamped to it.
func solveQuadraticInUnitInterval(a, b, c float64) []float64 {
	roots := solveQuadratic(a, b, c)
	if len(roots) == 0 {
		return nil
	}

	const eps = 1e-12
	result := make([]float64, 0, len(roots))
	for _, r := range roots {
		if r >= -eps && r <= 1.0+eps {
			result = append(result, math.Min(math.Max(r, 0), 1))
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// isFinite returns true if x is neither infinite nor NaN.
func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
