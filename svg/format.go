package svg

import (
	"bytes"
	"math"
	"strconv"
)

// DefaultPrecision is the number of decimals written for coordinates.
const DefaultPrecision = 2

// appendNumber appends f with at most prec decimals and no trailing zeros.
// A negative prec writes the shortest exact form.
func appendNumber(b []byte, f float64, prec int) []byte {
	if prec >= 0 {
		pow := math.Pow10(prec)
		f = math.Round(f*pow) / pow
	}
	if f == 0 {
		// Avoid "-0".
		return append(b, '0')
	}
	start := len(b)
	b = strconv.AppendFloat(b, f, 'f', prec, 64)
	if prec != 0 && bytes.IndexByte(b[start:], '.') >= 0 {
		for b[len(b)-1] == '0' {
			b = b[:len(b)-1]
		}
		if b[len(b)-1] == '.' {
			b = b[:len(b)-1]
		}
	}
	return b
}

// formatNumber formats f like appendNumber.
func formatNumber(f float64, prec int) string {
	return string(appendNumber(nil, f, prec))
}
