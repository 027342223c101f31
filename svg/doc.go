// Package svg serializes normalized glyphs as SVG.
//
// An Encoder writes one document per call: a full document sized to the
// canvas, a bare path element for embedding, or an error card used in
// place of a glyph that failed to convert. CompareSheet lays out the same
// character from several fonts on one page.
//
// PathData and ParsePathData convert between a glyphsvg.GlyphPath and the
// d attribute of a path element.
package svg
