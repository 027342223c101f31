package outline

import (
	"fmt"
	"os"
	"sync"
)

// Font is a loaded font file together with the backend that parsed it.
// It is the only shared resource of a conversion batch: the caller loads
// it, hands it to every worker and closes it when the batch is done.
//
// Font is safe for concurrent use. It is never modified after NewFont
// returns, except by Close.
// Font must not be copied after creation (enforced by copyCheck).
type Font struct {
	// addr is used for copy protection.
	// It must point to the Font itself.
	addr *Font

	data    []byte
	face    Face
	backend string
	name    string

	// mu guards face against Close.
	mu sync.RWMutex
}

// FontOption configures Font creation.
type FontOption func(*fontConfig)

type fontConfig struct {
	backend string
	name    string
}

// WithBackend selects the backend used to parse the font.
// The default is DefaultBackend.
func WithBackend(name string) FontOption {
	return func(c *fontConfig) {
		c.backend = name
	}
}

// WithName overrides the display name of the font. By default the family
// name from the font's naming table is used.
func WithName(name string) FontOption {
	return func(c *fontConfig) {
		c.name = name
	}
}

// NewFont creates a Font from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFont(data []byte, opts ...FontOption) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := fontConfig{backend: DefaultBackend}
	for _, opt := range opts {
		opt(&config)
	}

	backend, err := LookupBackend(config.backend)
	if err != nil {
		return nil, err
	}

	// Backends may keep references into data.
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	face, err := backend.Parse(dataCopy)
	if err != nil {
		return nil, err
	}

	f := &Font{
		data:    dataCopy,
		face:    face,
		backend: backend.Name(),
		name:    config.name,
	}
	f.addr = f

	if f.name == "" {
		f.name = face.FamilyName()
	}
	if f.name == "" {
		f.name = "Unknown Font"
	}
	return f, nil
}

// OpenFont loads a Font from a font file path.
func OpenFont(path string, opts ...FontOption) (*Font, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("outline: failed to read font file: %w", err)
	}
	return NewFont(data, opts...)
}

// Name returns the display name of the font.
func (f *Font) Name() string {
	f.copyCheck()
	return f.name
}

// Backend returns the name of the backend that parsed the font.
func (f *Font) Backend() string {
	f.copyCheck()
	return f.backend
}

// Face returns the parsed font, or nil after Close.
func (f *Font) Face() Face {
	f.copyCheck()
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.face
}

// UnitsPerEm returns the units per em of the font, or 0 after Close.
func (f *Font) UnitsPerEm() int {
	if face := f.Face(); face != nil {
		return face.UnitsPerEm()
	}
	return 0
}

// HasRune reports whether the font maps r to a glyph.
func (f *Font) HasRune(r rune) bool {
	face := f.Face()
	if face == nil {
		return false
	}
	_, ok := face.GlyphIndex(r)
	return ok
}

// Extract returns the raw outline of the glyph mapped to r.
//
// It returns ErrGlyphNotFound if the character map has no entry for r.
// A mapped glyph without contours (such as space) is not an error; the
// returned outline is empty.
func (f *Font) Extract(r rune) (RawOutline, error) {
	face := f.Face()
	if face == nil {
		return RawOutline{}, ErrFontClosed
	}
	gid, ok := face.GlyphIndex(r)
	if !ok {
		return RawOutline{}, fmt.Errorf("%w: U+%04X in %s", ErrGlyphNotFound, r, f.name)
	}
	return face.Outline(gid)
}

// Close releases the font data. Extract returns ErrFontClosed afterwards.
func (f *Font) Close() error {
	f.copyCheck()

	f.mu.Lock()
	defer f.mu.Unlock()

	f.data = nil
	f.face = nil
	return nil
}

// copyCheck panics if Font was copied by value.
func (f *Font) copyCheck() {
	if f.addr != f {
		panic("outline: Font must not be copied by value")
	}
}
