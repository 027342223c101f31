package outline

import (
	"errors"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const sfntBackendName = "sfnt"

// sfntBackend implements Backend using golang.org/x/image/font/sfnt.
// It reads TrueType (quadratic) and CFF (cubic) outlines.
type sfntBackend struct{}

// Name implements Backend.Name.
func (sfntBackend) Name() string { return sfntBackendName }

// Parse implements Backend.Parse.
func (sfntBackend) Parse(data []byte) (Face, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, &BackendError{Backend: sfntBackendName, Op: "parse", Err: err}
	}
	return &sfntFace{
		font: f,
		buffers: sync.Pool{
			New: func() any { return new(sfnt.Buffer) },
		},
	}, nil
}

// sfntFace implements Face over an sfnt.Font.
//
// sfnt.Font is safe for concurrent use as long as every call has its own
// Buffer, so buffers are pooled.
type sfntFace struct {
	font    *sfnt.Font
	buffers sync.Pool
}

func (f *sfntFace) buffer() *sfnt.Buffer {
	return f.buffers.Get().(*sfnt.Buffer)
}

// FamilyName implements Face.FamilyName.
func (f *sfntFace) FamilyName() string {
	b := f.buffer()
	defer f.buffers.Put(b)

	if name, err := f.font.Name(b, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.font.Name(b, sfnt.NameIDFull); err == nil {
		return name
	}
	return ""
}

// NumGlyphs implements Face.NumGlyphs.
func (f *sfntFace) NumGlyphs() int {
	return f.font.NumGlyphs()
}

// UnitsPerEm implements Face.UnitsPerEm.
func (f *sfntFace) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

// GlyphIndex implements Face.GlyphIndex.
func (f *sfntFace) GlyphIndex(r rune) (GlyphID, bool) {
	b := f.buffer()
	defer f.buffers.Put(b)

	gi, err := f.font.GlyphIndex(b, r)
	if err != nil || gi == 0 {
		return 0, false
	}
	return GlyphID(gi), true
}

// Outline implements Face.Outline.
//
// The glyph is loaded with a raw ppem of units-per-em: sfnt's x*ppem/upem
// scaling is then the identity and each 26.6 value is one font unit.
func (f *sfntFace) Outline(gid GlyphID) (RawOutline, error) {
	b := f.buffer()
	defer f.buffers.Put(b)

	upem := f.UnitsPerEm()
	ppem := fixed.Int26_6(upem)

	segments, err := f.font.LoadGlyph(b, sfnt.GlyphIndex(gid), ppem, nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrColoredGlyph) {
			return RawOutline{}, ErrUnsupportedGlyph
		}
		return RawOutline{}, &BackendError{Backend: sfntBackendName, Op: "load glyph", Err: err}
	}

	// sfnt segments use a Y axis that increases down; font units point up.
	var cb contourBuilder
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			cb.moveTo(fixedX(seg.Args[0]), fixedY(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			cb.lineTo(fixedX(seg.Args[0]), fixedY(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			cb.quadTo(
				fixedX(seg.Args[0]), fixedY(seg.Args[0]),
				fixedX(seg.Args[1]), fixedY(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			cb.cubeTo(
				fixedX(seg.Args[0]), fixedY(seg.Args[0]),
				fixedX(seg.Args[1]), fixedY(seg.Args[1]),
				fixedX(seg.Args[2]), fixedY(seg.Args[2]))
		}
	}

	out := RawOutline{
		Contours:   cb.finish(),
		UnitsPerEm: upem,
		GlyphID:    gid,
	}
	if name, err := f.font.GlyphName(b, sfnt.GlyphIndex(gid)); err == nil {
		out.GlyphName = name
	}
	if adv, err := f.font.GlyphAdvance(b, sfnt.GlyphIndex(gid), ppem, font.HintingNone); err == nil {
		out.Advance = float64(adv)
	}
	return out, nil
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

// fixedX and fixedY read a segment point loaded at a raw ppem of
// units-per-em, where one 26.6 unit is one font unit.
func fixedX(p fixed.Point26_6) float64 { return float64(p.X) }
func fixedY(p fixed.Point26_6) float64 { return -float64(p.Y) }
