package outline

import (
	"fmt"

	"golang.org/x/text/unicode/runenames"
)

// Block is a named range of code points.
type Block struct {
	Name  string
	First rune
	Last  rune
}

// Len returns the number of code points in the block.
func (b Block) Len() int {
	return int(b.Last-b.First) + 1
}

// Contains reports whether r lies in the block.
func (b Block) Contains(r rune) bool {
	return r >= b.First && r <= b.Last
}

// String returns the block as "Name (U+XXXX-U+XXXX)".
func (b Block) String() string {
	return fmt.Sprintf("%s (U+%04X-U+%04X)", b.Name, b.First, b.Last)
}

// StandardBlocks lists the Unicode blocks reported by font coverage
// checks, in display order.
var StandardBlocks = []Block{
	{"Basic Latin", 0x0000, 0x007F},
	{"Latin-1 Supplement", 0x0080, 0x00FF},
	{"Mathematical Operators", 0x2200, 0x22FF},
	{"Misc Mathematical Symbols-A", 0x27C0, 0x27EF},
	{"Misc Mathematical Symbols-B", 0x2980, 0x29FF},
	{"Supplemental Math Operators", 0x2A00, 0x2AFF},
	{"Misc Symbols and Arrows", 0x2B00, 0x2BFF},
	{"Arrows", 0x2190, 0x21FF},
	{"Geometric Shapes", 0x25A0, 0x25FF},
	{"Misc Symbols", 0x2600, 0x26FF},
	{"Dingbats", 0x2700, 0x27BF},
	{"Letterlike Symbols", 0x2100, 0x214F},
	{"Currency Symbols", 0x20A0, 0x20CF},
	{"Number Forms", 0x2150, 0x218F},
	{"Superscripts and Subscripts", 0x2070, 0x209F},
}

// BlockCoverage is the number of mapped code points of one block.
type BlockCoverage struct {
	Block  Block
	Mapped int
}

// Percent returns the mapped share of the block in percent.
func (c BlockCoverage) Percent() float64 {
	n := c.Block.Len()
	if n == 0 {
		return 0
	}
	return 100 * float64(c.Mapped) / float64(n)
}

// Coverage counts, for every block, how many code points f maps to a glyph.
// A nil blocks slice means StandardBlocks.
func Coverage(f *Font, blocks []Block) []BlockCoverage {
	if blocks == nil {
		blocks = StandardBlocks
	}
	face := f.Face()
	out := make([]BlockCoverage, len(blocks))
	for i, b := range blocks {
		out[i].Block = b
		if face == nil {
			continue
		}
		for r := b.First; r <= b.Last; r++ {
			if _, ok := face.GlyphIndex(r); ok {
				out[i].Mapped++
			}
		}
	}
	return out
}

// MappedRunes counts the code points of the Basic Multilingual Plane and
// the supplementary planes up to U+10FFFF that f maps to a glyph.
func MappedRunes(f *Font) int {
	face := f.Face()
	if face == nil {
		return 0
	}
	n := 0
	for r := rune(0); r <= 0x10FFFF; r++ {
		if r >= 0xD800 && r <= 0xDFFF {
			continue
		}
		if _, ok := face.GlyphIndex(r); ok {
			n++
		}
	}
	return n
}

// RuneName returns the Unicode character name of r, or "" for unnamed
// code points.
func RuneName(r rune) string {
	return runenames.Name(r)
}

// BlockOf returns the standard block containing r.
func BlockOf(r rune) (Block, bool) {
	for _, b := range StandardBlocks {
		if b.Contains(r) {
			return b, true
		}
	}
	return Block{}, false
}
