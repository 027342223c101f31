package fontcache

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/h2non/filetype"

	"github.com/gogpu/glyphsvg"
)

// sniffLen is the number of leading bytes inspected to identify a file.
const sniffLen = 262

// Download fetches the font id into the cache and returns its path. An
// existing file is replaced. Progress is written to progress when it is
// not nil.
//
// The font is written to a temporary file and moved into place only after
// it has been verified as TrueType or OpenType, so a failed download
// never leaves a partial font behind.
func (c *Cache) Download(ctx context.Context, id string, progress io.Writer) (string, error) {
	e, err := c.Entry(id)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return "", fmt.Errorf("fontcache: %w", err)
	}

	log := glyphsvg.Logger()
	log.Info("fontcache: downloading", "id", id, "url", e.URL)
	start := time.Now()

	tmp, err := c.fetch(ctx, e, progress)
	if err != nil {
		return "", &DownloadError{ID: id, URL: e.URL, Err: err}
	}
	defer os.Remove(tmp)

	if e.IsArchive() {
		extracted, err := extractMember(tmp, c.Dir, e)
		if err != nil {
			return "", &DownloadError{ID: id, URL: e.URL, Err: err}
		}
		defer os.Remove(extracted)
		tmp = extracted
	}

	if err := checkFont(tmp); err != nil {
		return "", &DownloadError{ID: id, URL: e.URL, Err: err}
	}

	dst := filepath.Join(c.Dir, e.File)
	if err := os.Rename(tmp, dst); err != nil {
		return "", fmt.Errorf("fontcache: %w", err)
	}

	fi, _ := os.Stat(dst)
	var size int64
	if fi != nil {
		size = fi.Size()
	}
	log.Info("fontcache: downloaded", "id", id, "path", dst, "bytes", size, "elapsed", time.Since(start))
	return dst, nil
}

// DownloadAll downloads every catalog font. It continues past failures and
// returns them joined.
func (c *Cache) DownloadAll(ctx context.Context, progress io.Writer) error {
	var errs []error
	for _, e := range c.entries() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := c.Download(ctx, e.ID, progress); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// fetch downloads e.URL into a temporary file in the cache directory.
func (c *Cache) fetch(ctx context.Context, e Entry, progress io.Writer) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.URL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	f, err := os.CreateTemp(c.Dir, e.ID+"-*.part")
	if err != nil {
		return "", err
	}

	var body io.Reader = resp.Body
	if progress != nil {
		body = &progressReader{r: resp.Body, w: progress, total: resp.ContentLength}
	}
	_, err = io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if progress != nil {
		fmt.Fprintln(progress)
	}
	if err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// extractMember copies the font named by e out of the zip archive at
// archive into a temporary file in dir.
func extractMember(archive, dir string, e Entry) (string, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	var member *zip.File
	for _, zf := range zr.File {
		if zf.Name == e.ZipMember || path.Base(zf.Name) == e.File {
			member = zf
			break
		}
	}
	if member == nil {
		names := make([]string, 0, min(len(zr.File), 10))
		for _, zf := range zr.File[:min(len(zr.File), 10)] {
			names = append(names, zf.Name)
		}
		return "", fmt.Errorf("%s not found in archive (first entries: %v)", e.ZipMember, names)
	}

	src, err := member.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	f, err := os.CreateTemp(dir, e.ID+"-*.ttf.part")
	if err != nil {
		return "", err
	}
	_, err = io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(f.Name())
		return "", err
	}
	glyphsvg.Logger().Debug("fontcache: extracted", "member", member.Name)
	return f.Name(), nil
}

// checkFont verifies that the file at p is a TrueType or OpenType font.
func checkFont(p string) error {
	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty file", ErrNotFontFile)
		}
		return err
	}

	kind, err := filetype.Match(head[:n])
	if err != nil {
		return err
	}
	switch kind.Extension {
	case "ttf", "otf":
		return nil
	case "unknown", "":
		return ErrNotFontFile
	default:
		return fmt.Errorf("%w: got %s", ErrNotFontFile, kind.Extension)
	}
}

// progressReader reports download progress as a percentage, or as a byte
// count when the size is unknown.
type progressReader struct {
	r     io.Reader
	w     io.Writer
	total int64
	read  int64
	last  int64
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.read-p.last >= 64<<10 || errors.Is(err, io.EOF) {
		p.last = p.read
		if p.total > 0 {
			fmt.Fprintf(p.w, "\r  Downloading: %.1f%%", float64(p.read)*100/float64(p.total))
		} else {
			fmt.Fprintf(p.w, "\r  Downloading: %d bytes", p.read)
		}
	}
	return n, err
}
