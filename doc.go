// Package glyphsvg converts font glyphs into normalized SVG-ready paths.
//
// # Overview
//
// glyphsvg reads a glyph outline from a TrueType or OpenType font, rewrites
// it into closed contours made only of lines and cubic Béziers, and places
// it centered on a fixed canvas at a fixed size. Every glyph converted with
// the same settings ends up in the same box, which makes the output usable
// as icons, sprite sheets or comparison grids.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/glyphsvg"
//	    "github.com/gogpu/glyphsvg/outline"
//	    "github.com/gogpu/glyphsvg/svg"
//	)
//
//	font, err := outline.OpenFont("Symbola.ttf")
//	if err != nil {
//	    return err
//	}
//	defer font.Close()
//
//	conv := glyphsvg.NewConverter(font)
//	res := conv.Convert('∑')
//	if !res.OK() {
//	    return res.Err
//	}
//	return svg.Encode(os.Stdout, res.Spec)
//
// # Pipeline
//
// A conversion runs three stages:
//   - Extract: the outline package looks the code point up in the font and
//     returns the raw contour points (on-curve, quadratic and cubic
//     control points) in font units.
//   - Flatten: raw contours become a GlyphPath. Quadratic curves are raised
//     to cubics, implied on-curve points are made explicit and every
//     contour is closed. Malformed contours are dropped and reported.
//   - Normalize: the path is scaled uniformly so the longer side of its
//     bounding box equals the glyph size, flipped from Y-up to Y-down and
//     centered on the canvas.
//
// # Coordinate System
//
// Font units have Y pointing up with the origin on the baseline. Canvas
// units have the origin at the top-left and Y pointing down. A GlyphPath
// records which space it is in, and Normalize only flips font-unit paths,
// so normalizing a canvas path again is a no-op.
//
// # Logging
//
// The package is silent by default. Use SetLogger to receive warnings about
// dropped contours and debug output for each conversion.
package glyphsvg

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
