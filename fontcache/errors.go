package fontcache

import (
	"errors"
	"fmt"
)

// Sentinel errors for fontcache package.
var (
	// ErrUnknownFont is returned for an id missing from the catalog.
	ErrUnknownFont = errors.New("fontcache: unknown font")

	// ErrNotCached is returned when a catalog font has not been downloaded.
	ErrNotCached = errors.New("fontcache: font not downloaded")

	// ErrFontNotFound is returned when a name resolves to nothing.
	ErrFontNotFound = errors.New("fontcache: font not found")

	// ErrNotFontFile is returned when downloaded data is not a TrueType or
	// OpenType font.
	ErrNotFontFile = errors.New("fontcache: not a font file")

	// ErrNoFonts is returned by OpenAuto when no catalog font is cached.
	ErrNoFonts = errors.New("fontcache: no fonts available, download fonts first")
)

// DownloadError reports a failed download.
type DownloadError struct {
	ID  string
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("fontcache: download %s from %s: %v", e.ID, e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}
