// Package outline loads fonts and extracts raw glyph outlines.
//
// An outline is returned exactly as the font stores it: closed contours of
// tagged points in font units, Y pointing up. Quadratic (TrueType) and cubic
// (CFF) control points are told apart by PointKind, so a consumer never has
// to know which font format the outline came from.
//
// # Example usage
//
//	// Load the font once per batch and share it between workers.
//	f, err := outline.OpenFont("NotoSansMath-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	raw, err := f.Extract('∑')
//	if errors.Is(err, outline.ErrGlyphNotFound) {
//	    // try another font
//	}
//
// # Pluggable Backend
//
// Font parsing is delegated to a Backend. Three are registered:
//
//   - "sfnt" (default): golang.org/x/image/font/sfnt, TrueType and CFF
//   - "truetype": github.com/golang/freetype/truetype, TrueType only; the
//     raw on/off-curve stream is kept, implied midpoints included
//   - "gotext": github.com/go-text/typesetting, TrueType, CFF and CFF2
//
// Custom backends can be added with RegisterBackend and selected with
// WithBackend.
package outline
