package glyphsvg

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false so callers skip
// building the record at all.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used by glyphsvg and its sub-packages. Nothing
// is logged until it is called; nil restores the silent default. It is
// safe to call while other goroutines are logging.
//
// Levels:
//   - [slog.LevelDebug]: per-glyph details (glyph id, contours, scale)
//   - [slog.LevelInfo]: font fallback, downloads, batch start and finish
//   - [slog.LevelWarn]: dropped contours, abandoned conversions
//
// Example:
//
//	glyphsvg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the logger set with SetLogger. The svg and fontcache
// packages log through it as well.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
