package glyphsvg

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/glyphsvg/internal/cache"
	"github.com/gogpu/glyphsvg/outline"
)

// ErrNoFont is returned when a Converter has no font to read from.
var ErrNoFont = errors.New("glyphsvg: no font")

// Status classifies the outcome of a conversion.
type Status uint8

const (
	// StatusOK means Result.Spec holds a normalized glyph.
	StatusOK Status = iota

	// StatusNotFound means no font maps the code point.
	StatusNotFound

	// StatusEmpty means the glyph exists but has no contours, as for space.
	StatusEmpty

	// StatusDegenerate means the glyph's bounding box has no area.
	StatusDegenerate

	// StatusMalformed means the glyph had contours but every one of them
	// was dropped; Result.Dropped lists why.
	StatusMalformed

	// StatusFailed covers every other error, including cancellation.
	StatusFailed
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not-found"
	case StatusEmpty:
		return "empty"
	case StatusDegenerate:
		return "degenerate"
	case StatusMalformed:
		return "malformed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of converting one code point.
type Result struct {
	Rune   rune
	Status Status

	// Spec is set when Status is StatusOK. For StatusEmpty it holds a
	// blank glyph: an empty path on the target canvas.
	Spec *RenderSpec

	// Font is the name of the font the glyph was taken from, empty if none
	// maps the code point.
	Font string

	// Dropped lists the malformed contours left out of the glyph.
	Dropped []ContourIssue

	// Err is nil only when Status is StatusOK.
	Err error
}

// OK reports whether the conversion produced a glyph.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// Blank reports whether the glyph exists but draws nothing, as for space.
// Spec is set for a blank result.
func (r Result) Blank() bool {
	return r.Status == StatusEmpty && r.Spec != nil
}

// statusOf maps an error from the pipeline to a Status.
func statusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrGlyphNotFound):
		return StatusNotFound
	case errors.Is(err, ErrEmptyGlyph):
		return StatusEmpty
	case errors.Is(err, ErrDegenerateGlyph):
		return StatusDegenerate
	case errors.Is(err, ErrMalformedContour):
		return StatusMalformed
	default:
		return StatusFailed
	}
}

// Converter turns code points into normalized glyphs.
//
// The fonts are borrowed: a Converter never closes them, and the caller
// must keep them open while the Converter is in use. Converter is safe
// for concurrent use.
type Converter struct {
	fonts  []*outline.Font
	opts   options
	target Target
	cache  *cache.LRU[rune, Result]
}

// NewConverter creates a Converter reading glyphs from font, then from any
// fallback fonts given with WithFallback.
func NewConverter(font *outline.Font, opts ...Option) *Converter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	fonts := make([]*outline.Font, 0, 1+len(o.fallbacks))
	if font != nil {
		fonts = append(fonts, font)
	}
	for _, f := range o.fallbacks {
		if f != nil {
			fonts = append(fonts, f)
		}
	}

	c := &Converter{
		fonts:  fonts,
		opts:   o,
		target: o.target(),
	}
	if o.cacheSize > 0 {
		c.cache = cache.New[rune, Result](o.cacheSize)
	}
	return c
}

// CacheStats returns the counters of the glyph cache enabled with
// WithCache, or zero stats without one.
func (c *Converter) CacheStats() cache.Stats {
	if c.cache == nil {
		return cache.Stats{}
	}
	return c.cache.Stats()
}

// Target returns the geometry glyphs are normalized to.
func (c *Converter) Target() Target {
	return c.target
}

// Fonts returns the fonts in lookup order.
func (c *Converter) Fonts() []*outline.Font {
	out := make([]*outline.Font, len(c.fonts))
	copy(out, c.fonts)
	return out
}

// Lookup returns the first font that maps r, or nil.
func (c *Converter) Lookup(r rune) *outline.Font {
	for _, f := range c.fonts {
		if f.HasRune(r) {
			return f
		}
	}
	return nil
}

// Convert runs the pipeline for one code point: extract the outline from
// the first font that has it, flatten it and normalize it onto the canvas.
//
// Convert never panics on font data and never returns a nil error with a
// non-OK status.
func (c *Converter) Convert(r rune) Result {
	if c.cache == nil {
		return c.convert(r)
	}
	if res, ok := c.cache.Get(r); ok {
		return res.detach()
	}
	res := c.convert(r)
	if res.Status != StatusFailed {
		c.cache.Put(r, res)
		return res.detach()
	}
	return res
}

// detach returns a copy of r that shares no mutable state with r, so a
// cached result cannot be changed through a returned one.
func (r Result) detach() Result {
	r.Dropped = slices.Clone(r.Dropped)
	if r.Spec != nil {
		spec := *r.Spec
		r.Spec = &spec
	}
	return r
}

func (c *Converter) convert(r rune) Result {
	res := Result{Rune: r}
	if len(c.fonts) == 0 {
		res.Status, res.Err = StatusFailed, ErrNoFont
		return res
	}

	var (
		raw  outline.RawOutline
		font *outline.Font
	)
	for i, f := range c.fonts {
		o, err := f.Extract(r)
		if errors.Is(err, outline.ErrGlyphNotFound) {
			continue
		}
		if err != nil {
			res.Font = f.Name()
			res.Status, res.Err = StatusFailed, fmt.Errorf("glyphsvg: extract U+%04X: %w", r, err)
			return res
		}
		if i > 0 {
			Logger().Info("glyphsvg: using fallback font",
				"rune", fmt.Sprintf("U+%04X", r), "font", f.Name())
		}
		raw, font = o, f
		break
	}
	if font == nil {
		res.Status = StatusNotFound
		res.Err = fmt.Errorf("%w: U+%04X", ErrGlyphNotFound, r)
		return res
	}
	res.Font = font.Name()

	path, issues := Flatten(raw)
	res.Dropped = issues
	if path.IsEmpty() && len(issues) > 0 {
		res.Status = StatusMalformed
		res.Err = fmt.Errorf("U+%04X in %s: all %d contours dropped: %w", r, font.Name(), len(issues), issues[0])
		return res
	}

	canvas, tr, err := Normalize(path, c.target)
	if err != nil {
		res.Status = statusOf(err)
		res.Err = fmt.Errorf("U+%04X in %s: %w", r, font.Name(), err)
		if res.Status == StatusEmpty {
			res.Spec = c.renderSpec(r, font, raw, NewGlyphPath(SpaceCanvas), path, IdentityTransform())
		}
		return res
	}

	res.Status = StatusOK
	res.Spec = c.renderSpec(r, font, raw, canvas, path, tr)

	Logger().Debug("glyphsvg: converted",
		"rune", fmt.Sprintf("U+%04X", r),
		"font", font.Name(),
		"glyph", raw.GlyphID,
		"contours", canvas.Len(),
		"dropped", len(issues))
	return res
}

func (c *Converter) renderSpec(r rune, font *outline.Font, raw outline.RawOutline, canvas, path GlyphPath, tr Transform) *RenderSpec {
	return &RenderSpec{
		Path:         canvas,
		Outline:      path,
		Transform:    tr,
		CanvasWidth:  c.target.CanvasWidth,
		CanvasHeight: c.target.CanvasHeight,
		Fill:         c.opts.fill,
		Stroke:       c.opts.stroke,
		StrokeWidth:  c.opts.strokeWidth,
		Rune:         r,
		FontName:     font.Name(),
		GlyphName:    raw.GlyphName,
		UnitsPerEm:   raw.UnitsPerEm,
	}
}

// ConvertString converts every code point of s, in order.
func (c *Converter) ConvertString(s string) []Result {
	var out []Result
	for _, r := range s {
		out = append(out, c.Convert(r))
	}
	return out
}
