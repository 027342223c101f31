package outline

import (
	"encoding/binary"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const truetypeBackendName = "truetype"

// truetypeBackend implements Backend using github.com/golang/freetype/truetype.
//
// Only TrueType outlines are supported. Unlike the other backends, the raw
// on/off-curve point stream is passed through unchanged, so consecutive
// quadratic control points keep their implied on-curve midpoints.
type truetypeBackend struct{}

// Name implements Backend.Name.
func (truetypeBackend) Name() string { return truetypeBackendName }

// Parse implements Backend.Parse.
func (truetypeBackend) Parse(data []byte) (Face, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, &BackendError{Backend: truetypeBackendName, Op: "parse", Err: err}
	}
	return &truetypeFace{font: f, numGlyphs: maxpNumGlyphs(data)}, nil
}

// truetypeFace implements Face over a truetype.Font. The font is only read
// after parsing; every Outline call loads into its own GlyphBuf.
type truetypeFace struct {
	font      *truetype.Font
	numGlyphs int
}

// FamilyName implements Face.FamilyName.
func (f *truetypeFace) FamilyName() string {
	return f.font.Name(truetype.NameIDFontFamily)
}

// NumGlyphs implements Face.NumGlyphs.
func (f *truetypeFace) NumGlyphs() int {
	return f.numGlyphs
}

// UnitsPerEm implements Face.UnitsPerEm.
func (f *truetypeFace) UnitsPerEm() int {
	return int(f.font.FUnitsPerEm())
}

// GlyphIndex implements Face.GlyphIndex.
func (f *truetypeFace) GlyphIndex(r rune) (GlyphID, bool) {
	idx := f.font.Index(r)
	if idx == 0 {
		return 0, false
	}
	return GlyphID(idx), true
}

// Outline implements Face.Outline.
func (f *truetypeFace) Outline(gid GlyphID) (RawOutline, error) {
	upem := f.UnitsPerEm()

	var gb truetype.GlyphBuf
	if err := gb.Load(f.font, fixed.I(upem), truetype.Index(gid), font.HintingNone); err != nil {
		return RawOutline{}, &BackendError{Backend: truetypeBackendName, Op: "load glyph", Err: err}
	}

	out := RawOutline{
		UnitsPerEm: upem,
		Advance:    fixedToFloat64(gb.AdvanceWidth),
		GlyphID:    gid,
	}

	start := 0
	for _, end := range gb.Ends {
		if end <= start {
			continue
		}
		contour := make(RawContour, 0, end-start)
		for _, p := range gb.Points[start:end] {
			x, y := fixedToFloat64(p.X), fixedToFloat64(p.Y)
			// The low bit of Flags marks an on-curve point.
			if p.Flags&1 != 0 {
				contour = append(contour, On(x, y))
			} else {
				contour = append(contour, Quad(x, y))
			}
		}
		out.Contours = append(out.Contours, contour)
		start = end
	}
	return out, nil
}

// maxpNumGlyphs reads numGlyphs from the maxp table of an sfnt file.
// It returns 0 if the table cannot be found.
func maxpNumGlyphs(data []byte) int {
	if len(data) < 12 {
		return 0
	}
	numTables := int(binary.BigEndian.Uint16(data[4:]))
	for i := range numTables {
		rec := 12 + 16*i
		if rec+16 > len(data) {
			return 0
		}
		if string(data[rec:rec+4]) != "maxp" {
			continue
		}
		off := int(binary.BigEndian.Uint32(data[rec+8:]))
		if off+6 > len(data) {
			return 0
		}
		return int(binary.BigEndian.Uint16(data[off+4:]))
	}
	return 0
}
