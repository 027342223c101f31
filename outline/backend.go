package outline

import (
	"slices"
	"sync"
)

// Backend is a font parsing library adapter. It turns font file bytes into
// a Face that can deliver raw glyph outlines.
type Backend interface {
	// Name returns the registry name of the backend.
	Name() string

	// Parse parses font data (TTF or OTF) and returns a Face.
	Parse(data []byte) (Face, error)
}

// Face is a parsed font. All methods must be safe for concurrent use; a
// Face is never modified after Parse returns.
type Face interface {
	// FamilyName returns the font family name.
	// Returns empty string if not available.
	FamilyName() string

	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int

	// UnitsPerEm returns the units per em for the font.
	UnitsPerEm() int

	// GlyphIndex returns the glyph for a rune. ok is false when the
	// character map has no entry for r.
	GlyphIndex(r rune) (gid GlyphID, ok bool)

	// Outline loads the unhinted outline of a glyph in font units.
	Outline(gid GlyphID) (RawOutline, error)
}

// registry holds registered backends.
var registry = struct {
	sync.RWMutex
	backends map[string]Backend
}{
	backends: map[string]Backend{
		sfntBackendName:     sfntBackend{},
		truetypeBackendName: truetypeBackend{},
		gotextBackendName:   gotextBackend{},
	},
}

// DefaultBackend is the backend used when none is requested.
const DefaultBackend = sfntBackendName

// RegisterBackend registers a custom backend under b.Name().
// A backend with the same name is replaced.
func RegisterBackend(b Backend) {
	registry.Lock()
	defer registry.Unlock()
	registry.backends[b.Name()] = b
}

// LookupBackend returns the backend registered under name.
func LookupBackend(name string) (Backend, error) {
	if name == "" {
		name = DefaultBackend
	}
	registry.RLock()
	defer registry.RUnlock()
	b, ok := registry.backends[name]
	if !ok {
		return nil, &UnknownBackendError{Name: name}
	}
	return b, nil
}

// Backends returns the sorted names of all registered backends.
func Backends() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.backends))
	for name := range registry.backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
