package outline

import (
	"bytes"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/font/sfnt"
)

const gotextBackendName = "gotext"

// gotextBackend implements Backend using github.com/go-text/typesetting.
// It reads TrueType, CFF and CFF2 outlines.
type gotextBackend struct{}

// Name implements Backend.Name.
func (gotextBackend) Name() string { return gotextBackendName }

// Parse implements Backend.Parse.
func (gotextBackend) Parse(data []byte) (Face, error) {
	// ParseTTF returns a *Face which embeds the thread-safe *Font.
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, &BackendError{Backend: gotextBackendName, Op: "parse", Err: err}
	}

	f := &gotextFace{font: face.Font}

	// The naming and maxp tables are read once through sfnt.
	if sf, err := sfnt.Parse(data); err == nil {
		var b sfnt.Buffer
		if name, err := sf.Name(&b, sfnt.NameIDFamily); err == nil {
			f.family = name
		}
		f.numGlyphs = sf.NumGlyphs()
	} else {
		f.numGlyphs = maxpNumGlyphs(data)
	}
	return f, nil
}

// gotextFace implements Face over a go-text font.Font.
//
// font.Font is read-only and safe for concurrent use, unlike font.Face, so
// every call wraps it in a fresh font.Face.
type gotextFace struct {
	font      *font.Font
	family    string
	numGlyphs int
}

// FamilyName implements Face.FamilyName.
func (f *gotextFace) FamilyName() string {
	return f.family
}

// NumGlyphs implements Face.NumGlyphs.
func (f *gotextFace) NumGlyphs() int {
	return f.numGlyphs
}

// UnitsPerEm implements Face.UnitsPerEm.
func (f *gotextFace) UnitsPerEm() int {
	return int(f.font.Upem())
}

// GlyphIndex implements Face.GlyphIndex.
func (f *gotextFace) GlyphIndex(r rune) (GlyphID, bool) {
	gid, ok := font.NewFace(f.font).NominalGlyph(r)
	if !ok || gid == 0 {
		return 0, false
	}
	return GlyphID(gid), true
}

// Outline implements Face.Outline.
func (f *gotextFace) Outline(gid GlyphID) (RawOutline, error) {
	face := font.NewFace(f.font)
	g := font.GID(gid)

	out := RawOutline{
		UnitsPerEm: f.UnitsPerEm(),
		Advance:    float64(face.HorizontalAdvance(g)),
		GlyphID:    gid,
	}

	switch data := face.GlyphData(g).(type) {
	case font.GlyphOutline:
		var cb contourBuilder
		for _, seg := range data.Segments {
			a := seg.Args
			switch seg.Op {
			case opentype.SegmentOpMoveTo:
				cb.moveTo(float64(a[0].X), float64(a[0].Y))
			case opentype.SegmentOpLineTo:
				cb.lineTo(float64(a[0].X), float64(a[0].Y))
			case opentype.SegmentOpQuadTo:
				cb.quadTo(
					float64(a[0].X), float64(a[0].Y),
					float64(a[1].X), float64(a[1].Y))
			case opentype.SegmentOpCubeTo:
				cb.cubeTo(
					float64(a[0].X), float64(a[0].Y),
					float64(a[1].X), float64(a[1].Y),
					float64(a[2].X), float64(a[2].Y))
			}
		}
		out.Contours = cb.finish()
	case nil:
		// No glyph data at all: treated as an empty glyph.
	default:
		return RawOutline{}, ErrUnsupportedGlyph
	}
	return out, nil
}
