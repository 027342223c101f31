package svg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	svgo "github.com/ajstarks/svgo"
	"golang.org/x/text/unicode/runenames"

	"github.com/gogpu/glyphsvg"
)

// ErrNilSpec is returned when an Encoder is given a nil RenderSpec.
var ErrNilSpec = errors.New("svg: nil render spec")

// maxErrorLen is the number of characters of an error message shown on an
// error card.
const maxErrorLen = 50

var (
	commentRe    = regexp.MustCompile(`(?s)<!--.*?-->`)
	blankLinesRe = regexp.MustCompile(`\n\s*\n`)
)

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// Minimal strips comments and blank lines from the output.
func Minimal() EncoderOption {
	return func(e *Encoder) {
		e.minimal = true
	}
}

// Precision sets the number of decimals written for coordinates. A
// negative value writes the shortest exact form. The default is
// DefaultPrecision.
func Precision(n int) EncoderOption {
	return func(e *Encoder) {
		e.prec = n
	}
}

// EmitTransform writes the glyph in font units and puts the normalizing
// transform on the enclosing group, instead of writing canvas coordinates.
func EmitTransform() EncoderOption {
	return func(e *Encoder) {
		e.emitTransform = true
	}
}

// Encoder writes glyphs as SVG documents.
//
// Each call writes one complete document. Output is buffered, so a failed
// write never leaves half a document behind in the encoder.
type Encoder struct {
	w             io.Writer
	minimal       bool
	prec          int
	emitTransform bool
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer, opts ...EncoderOption) *Encoder {
	e := &Encoder{w: w, prec: DefaultPrecision}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode writes spec with the default options.
func Encode(w io.Writer, spec *glyphsvg.RenderSpec, opts ...EncoderOption) error {
	return NewEncoder(w, opts...).Encode(spec)
}

// Encode writes spec as a standalone SVG document: a viewBox the size of
// the canvas, comments naming the font and character, and one group
// carrying the style around the glyph path.
func (e *Encoder) Encode(spec *glyphsvg.RenderSpec) error {
	if spec == nil {
		return ErrNilSpec
	}

	var buf bytes.Buffer
	canvas := svgo.New(&buf)
	startDocument(canvas, spec.CanvasWidth, spec.CanvasHeight)

	comment(&buf, "Font: "+spec.FontName)
	comment(&buf, "Character: "+DescribeRune(spec.Rune))
	if spec.GlyphName != "" {
		comment(&buf, "Glyph: "+spec.GlyphName)
	}

	path, transform := e.geometry(spec)
	attrs := styleAttrs(spec)
	if transform != "" {
		attrs = append(attrs, attr("transform", transform))
	}
	canvas.Group(attrs...)
	canvas.Path(PathData(path, e.prec))
	canvas.Gend()
	canvas.End()

	return e.flush(buf.Bytes())
}

// EncodePathOnly writes a single path element with the style inlined,
// for embedding into another document.
func (e *Encoder) EncodePathOnly(spec *glyphsvg.RenderSpec) error {
	if spec == nil {
		return ErrNilSpec
	}

	var buf bytes.Buffer
	canvas := svgo.New(&buf)

	path, transform := e.geometry(spec)
	attrs := styleAttrs(spec)
	if transform != "" {
		attrs = append(attrs, attr("transform", transform))
	}
	canvas.Path(PathData(path, e.prec), attrs...)

	return e.flush(buf.Bytes())
}

// EncodeError writes a square placeholder document showing msg, used in
// place of a glyph that could not be converted. Only the first 50
// characters of msg are shown.
func (e *Encoder) EncodeError(size float64, msg string) error {
	var buf bytes.Buffer
	canvas := svgo.New(&buf)
	startDocument(canvas, size, size)

	s := roundInt(size)
	canvas.Rect(0, 0, s, s, attr("fill", "#fff3cd"))
	canvas.Text(s/2, s/2-30, "⚠ Error",
		attr("text-anchor", "middle"), attr("font-size", "60"), attr("fill", "#856404"))
	canvas.Text(s/2, s/2+10, truncate(msg, maxErrorLen),
		attr("text-anchor", "middle"), attr("font-size", "40"), attr("fill", "#856404"))
	canvas.End()

	return e.flush(buf.Bytes())
}

// geometry returns the path to write and the transform for its group.
func (e *Encoder) geometry(spec *glyphsvg.RenderSpec) (glyphsvg.GlyphPath, string) {
	if e.emitTransform && !spec.Outline.IsEmpty() {
		return spec.Outline, transformAttr(spec.Transform, e.prec)
	}
	return spec.Path, ""
}

func (e *Encoder) flush(doc []byte) error {
	if e.minimal {
		doc = commentRe.ReplaceAll(doc, nil)
		doc = blankLinesRe.ReplaceAll(doc, []byte("\n"))
		doc = append(bytes.TrimSpace(doc), '\n')
	}
	_, err := e.w.Write(doc)
	return err
}

func startDocument(canvas *svgo.SVG, width, height float64) {
	w, h := formatNumber(width, -1), formatNumber(height, -1)
	// Startraw adds the SVG namespaces after these attributes.
	canvas.Startraw(
		attr("viewBox", "0 0 "+w+" "+h),
		attr("width", w),
		attr("height", h),
	)
}

func styleAttrs(spec *glyphsvg.RenderSpec) []string {
	fill := spec.Fill
	if fill == "" {
		fill = "black"
	}
	attrs := []string{attr("fill", fill)}
	if spec.HasStroke() {
		attrs = append(attrs,
			attr("stroke", spec.Stroke),
			attr("stroke-width", formatNumber(spec.StrokeWidth, -1)))
	}
	return attrs
}

// transformAttr formats t as an SVG matrix transform.
func transformAttr(t glyphsvg.Transform, prec int) string {
	m := t.Matrix()
	// Keep more digits than the path: the scale multiplies every coordinate.
	if prec >= 0 {
		prec += 4
	}
	var b strings.Builder
	b.WriteString("matrix(")
	for i, v := range []float64{m.A, m.D, m.B, m.E, m.C, m.F} {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatNumber(v, prec))
	}
	b.WriteByte(')')
	return b.String()
}

// attr formats a name="value" attribute for svgo, escaping the value.
func attr(name, value string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString(`="`)
	escapeAttr(&b, value)
	b.WriteByte('"')
	return b.String()
}

func escapeAttr(b *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}
}

// comment writes an XML comment. svgo writes straight through to the
// same buffer, so comments land between its elements.
func comment(w io.Writer, s string) {
	fmt.Fprintf(w, "<!-- %s -->\n", commentText(s))
}

// commentText makes s safe inside an XML comment.
func commentText(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "- -")
	}
	return strings.TrimSuffix(s, "-")
}

// DescribeRune returns the character, its code point and its Unicode name,
// as in "∑ (U+2211 N-ARY SUMMATION)". Unprintable characters are left out.
func DescribeRune(r rune) string {
	var b strings.Builder
	if unicode.IsPrint(r) {
		b.WriteRune(r)
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "(U+%04X", r)
	if name := runenames.Name(r); name != "" {
		b.WriteByte(' ')
		b.WriteString(name)
	}
	b.WriteByte(')')
	return b.String()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func roundInt(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}
