package fontcache

import "slices"

// Entry describes a downloadable font.
type Entry struct {
	// ID is the short name used on the command line.
	ID string

	// File is the name of the font file in the cache directory.
	File string

	// URL the font or the archive holding it is downloaded from.
	URL string

	// ZipMember is the path of the font inside a zip archive. Empty when
	// URL points at the font itself.
	ZipMember string

	// Description is a one-line summary for listings.
	Description string
}

// IsArchive reports whether the download is a zip archive.
func (e Entry) IsArchive() bool {
	return e.ZipMember != ""
}

var defaultCatalog = []Entry{
	{
		ID:          "symbola",
		File:        "Symbola.ttf",
		URL:         "https://archive.org/download/Symbola/Symbola613.ttf",
		Description: "Historical Unicode symbol font (broad coverage)",
	},
	{
		ID:          "notomath",
		File:        "NotoSansMath-Regular.ttf",
		URL:         "https://github.com/notofonts/math/releases/download/NotoSansMath-v3.000/NotoSansMath-v3.000.zip",
		ZipMember:   "NotoSansMath-v3.000/NotoSansMath-Regular.ttf",
		Description: "Modern Noto Sans Math font (clean design)",
	},
	{
		ID:          "notosans",
		File:        "NotoSans-Regular.ttf",
		URL:         "https://github.com/notofonts/noto-fonts/raw/main/hinted/ttf/NotoSans/NotoSans-Regular.ttf",
		Description: "General purpose sans-serif font",
	},
}

// AutoOrder is the order fonts are tried in when picking a font
// automatically: math first, then broad symbol coverage, then text.
var AutoOrder = []string{"notomath", "symbola", "notosans"}

// DefaultFont is the catalog font used when none is given.
const DefaultFont = "symbola"

// Catalog returns the built-in font catalog.
func Catalog() []Entry {
	return slices.Clone(defaultCatalog)
}

// Lookup returns the built-in catalog entry for id.
func Lookup(id string) (Entry, bool) {
	return lookup(defaultCatalog, id)
}

func lookup(entries []Entry, id string) (Entry, bool) {
	i := slices.IndexFunc(entries, func(e Entry) bool { return e.ID == id })
	if i < 0 {
		return Entry{}, false
	}
	return entries[i], true
}
