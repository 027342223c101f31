package fontcache

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"

	"github.com/flopp/go-findfont"
	"github.com/mitchellh/go-homedir"

	"github.com/gogpu/glyphsvg"
	"github.com/gogpu/glyphsvg/outline"
)

// appDir is the directory below the user cache directory.
const appDir = "glyphsvg"

// DefaultDir returns the default font cache directory,
// <user cache dir>/glyphsvg/fonts.
func DefaultDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("fontcache: %w", err)
	}
	return filepath.Join(dir, appDir, "fonts"), nil
}

// Cache is a directory of downloaded fonts.
//
// The zero value is not usable; create caches with New.
type Cache struct {
	// Dir is the cache directory.
	Dir string

	// Client downloads fonts. nil means http.DefaultClient.
	Client *http.Client

	// Entries is the font catalog. nil means the built-in catalog.
	Entries []Entry
}

// New returns a cache in dir. A leading ~ is expanded to the home
// directory; an empty dir means DefaultDir. The directory is created on
// first download.
func New(dir string) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, fmt.Errorf("fontcache: expand %q: %w", dir, err)
	}
	return &Cache{Dir: expanded}, nil
}

func (c *Cache) entries() []Entry {
	if c.Entries != nil {
		return c.Entries
	}
	return defaultCatalog
}

// Catalog returns the fonts the cache knows about, in catalog order.
func (c *Cache) Catalog() []Entry {
	return slices.Clone(c.entries())
}

func (c *Cache) client() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return http.DefaultClient
}

// Entry returns the catalog entry for id.
func (c *Cache) Entry(id string) (Entry, error) {
	e, ok := lookup(c.entries(), id)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownFont, id)
	}
	return e, nil
}

// Path returns where the font id is stored, whether or not it has been
// downloaded.
func (c *Cache) Path(id string) (string, error) {
	e, err := c.Entry(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(c.Dir, e.File), nil
}

// Has reports whether the font id has been downloaded.
func (c *Cache) Has(id string) bool {
	p, err := c.Path(id)
	if err != nil {
		return false
	}
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}

// Available returns the downloaded catalog fonts, in catalog order.
func (c *Cache) Available() []Entry {
	var out []Entry
	for _, e := range c.entries() {
		if c.Has(e.ID) {
			out = append(out, e)
		}
	}
	return out
}

// Resolve turns a font name into a file path. name may be a catalog id,
// a path to a font file, or the file name of a font installed on the
// system (such as "DejaVuSans.ttf").
func (c *Cache) Resolve(name string) (string, error) {
	if _, ok := lookup(c.entries(), name); ok {
		p, _ := c.Path(name)
		if !c.Has(name) {
			return "", fmt.Errorf("%w: %s (expected at %s)", ErrNotCached, name, p)
		}
		return p, nil
	}

	if p, err := homedir.Expand(name); err == nil {
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return p, nil
		}
	}

	p, err := findfont.Find(name)
	if err != nil || p == "" {
		return "", fmt.Errorf("%w: %q", ErrFontNotFound, name)
	}
	glyphsvg.Logger().Debug("fontcache: using system font", "name", name, "path", p)
	return p, nil
}

// Open resolves name and opens the font. Catalog fonts are named after
// their id.
func (c *Cache) Open(name string, opts ...outline.FontOption) (*outline.Font, error) {
	p, err := c.Resolve(name)
	if err != nil {
		return nil, err
	}
	if _, ok := lookup(c.entries(), name); ok {
		opts = append([]outline.FontOption{outline.WithName(name)}, opts...)
	}
	return outline.OpenFont(p, opts...)
}

// OpenAuto opens every downloaded font of AutoOrder, in that order,
// followed by the remaining downloaded catalog fonts. Fonts that fail to
// open are skipped. The caller closes the returned fonts.
func (c *Cache) OpenAuto(opts ...outline.FontOption) ([]*outline.Font, error) {
	fonts, errs := c.openDownloaded("", opts)
	if len(fonts) == 0 {
		return nil, errors.Join(append([]error{ErrNoFonts}, errs...)...)
	}
	return fonts, nil
}

// OpenChain opens name followed by the other downloaded fonts in OpenAuto
// order, for use as fallbacks. Only a failure to open name is returned.
// The caller closes the returned fonts.
func (c *Cache) OpenChain(name string, opts ...outline.FontOption) ([]*outline.Font, error) {
	f, err := c.Open(name, opts...)
	if err != nil {
		return nil, err
	}
	rest, _ := c.openDownloaded(name, opts)
	return append([]*outline.Font{f}, rest...), nil
}

// openDownloaded opens the downloaded catalog fonts in auto order, leaving
// out skip.
func (c *Cache) openDownloaded(skip string, opts []outline.FontOption) ([]*outline.Font, []error) {
	order := append([]string(nil), AutoOrder...)
	for _, e := range c.entries() {
		if !slices.Contains(order, e.ID) {
			order = append(order, e.ID)
		}
	}

	var fonts []*outline.Font
	var errs []error
	for _, id := range order {
		if id == skip || !c.Has(id) {
			continue
		}
		f, err := c.Open(id, opts...)
		if err != nil {
			glyphsvg.Logger().Warn("fontcache: skipping font", "id", id, "err", err)
			errs = append(errs, err)
			continue
		}
		fonts = append(fonts, f)
	}
	return fonts, errs
}
