package svg

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	svgo "github.com/ajstarks/svgo"

	"github.com/gogpu/glyphsvg"
)

// ErrNoEntries is returned by CompareSheet when there is nothing to show.
var ErrNoEntries = errors.New("svg: no entries to compare")

// Compare sheet layout.
const (
	// CompareSize is the width and height of a compare sheet.
	CompareSize = 1024

	compareColumns    = 3
	compareTop        = 100
	compareGlyphRatio = 0.6
	compareLabelRatio = 0.4
)

// CompareEntry is one cell of a compare sheet: the same character
// converted with one font.
type CompareEntry struct {
	// Label names the font, usually its catalog id.
	Label string

	// Result of converting the character with the font.
	Result glyphsvg.Result
}

// CompareSheet writes a grid showing r as drawn by each entry's font, with
// the font label under each glyph. Fonts without the character get a
// grey cross, failed conversions a red "Error".
func CompareSheet(w io.Writer, r rune, entries []CompareEntry, opts ...EncoderOption) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}
	e := NewEncoder(w, opts...)

	n := len(entries)
	cols := min(compareColumns, n)
	rows := (n + cols - 1) / cols
	cell := CompareSize / max(cols, rows)

	var buf bytes.Buffer
	canvas := svgo.New(&buf)
	startDocument(canvas, CompareSize, CompareSize)
	comment(&buf, "Compare: "+DescribeRune(r))

	canvas.Text(CompareSize/2, CompareSize/20, fmt.Sprintf("%c (U+%04X)", r, r),
		attr("text-anchor", "middle"), attr("font-size", "60"))

	for i, entry := range entries {
		col, row := i%cols, i/cols
		cx := (float64(col) + 0.5) * float64(cell)
		cy := (float64(row)+0.5)*float64(cell) + compareTop
		labelY := roundInt(cy + float64(cell)*compareLabelRatio)

		res := entry.Result
		switch {
		case res.OK() && !res.Spec.Path.IsEmpty():
			path := fitToCell(res.Spec.Path, glyphsvg.Pt(cx, cy), float64(cell)*compareGlyphRatio)
			canvas.Path(PathData(path, e.prec), styleAttrs(res.Spec)...)
			canvas.Text(roundInt(cx), labelY, entry.Label+" ✓",
				attr("text-anchor", "middle"), attr("font-size", "30"))
		case res.Blank():
			canvas.Text(roundInt(cx), labelY, entry.Label+" ✓",
				attr("text-anchor", "middle"), attr("font-size", "30"))
		case res.Status == glyphsvg.StatusNotFound:
			canvas.Text(roundInt(cx), roundInt(cy), "✗",
				attr("text-anchor", "middle"), attr("font-size", "60"), attr("fill", "#ccc"))
			canvas.Text(roundInt(cx), labelY, entry.Label,
				attr("text-anchor", "middle"), attr("font-size", "30"), attr("fill", "#999"))
		default:
			canvas.Text(roundInt(cx), roundInt(cy), "Error",
				attr("text-anchor", "middle"), attr("font-size", "40"), attr("fill", "red"))
			canvas.Text(roundInt(cx), labelY, entry.Label,
				attr("text-anchor", "middle"), attr("font-size", "30"), attr("fill", "#999"))
		}
	}
	canvas.End()

	return e.flush(buf.Bytes())
}

// fitToCell scales p uniformly so the longer side of its bounds is size
// and centers it on center.
func fitToCell(p glyphsvg.GlyphPath, center glyphsvg.Point, size float64) glyphsvg.GlyphPath {
	b := p.Bounds(glyphsvg.BoundsControlPoints)
	extent := max(b.Width(), b.Height())
	if extent <= 0 {
		return p
	}
	k := size / extent
	c := b.Center()
	m := glyphsvg.Translate(center.X, center.Y).
		Multiply(glyphsvg.Scale(k, k)).
		Multiply(glyphsvg.Translate(-c.X, -c.Y))
	return p.Transform(m, glyphsvg.SpaceCanvas)
}
