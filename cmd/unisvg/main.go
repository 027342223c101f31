// Command unisvg converts Unicode characters into centered SVG glyphs.
//
// Usage:
//
//	unisvg [flags] CHAR
//	unisvg -batch "⊕⊗⊙" -auto
//	unisvg -download all
//
// CHAR is a single character or a code point written as U+XXXX.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/gogpu/glyphsvg"
	"github.com/gogpu/glyphsvg/fontcache"
	"github.com/gogpu/glyphsvg/internal/config"
)

const helpBanner = `unisvg %s

Converts a Unicode character into an SVG glyph, scaled and centered on a
square canvas.

Usage:
  unisvg [flags] CHAR

Flags:
`

var (
	// errUsage reports a command line that cannot be run.
	errUsage = errors.New("usage error")

	// errFlags wraps flag parse errors, which the flag package has
	// already printed.
	errFlags = errors.New("invalid flags")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line args and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, cmd, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if errors.Is(err, errFlags) {
		return 2
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 2
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	glyphsvg.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer glyphsvg.SetLogger(nil)

	cache, err := fontcache.New(cfg.CacheDir)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	a := &app{
		cfg:    cfg,
		cache:  cache,
		stdout: stdout,
		ui:     newUI(stderr),
	}
	if err := a.run(ctx, cmd); err != nil {
		return a.fail(err)
	}
	return 0
}

// command is what the command line asks for, apart from settings that
// may also come from a config file.
type command struct {
	char     string
	output   string
	check    string
	compare  string
	batch    string
	download string
	fontInfo string
	list     bool
}

// parseArgs parses the flags in two passes: the first finds -config, the
// second binds the flags over the loaded file so that flags given on the
// command line win.
func parseArgs(args []string, stderr io.Writer) (config.Config, command, error) {
	cfg := config.Default()
	var cmd command
	var configPath string

	fs := newFlagSet(&cfg, &cmd, &configPath, stderr)
	if err := fs.Parse(args); err != nil {
		return cfg, cmd, fmt.Errorf("%w: %w", errFlags, err)
	}
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return cfg, cmd, err
		}
		cfg, cmd = loaded, command{}
		fs = newFlagSet(&cfg, &cmd, &configPath, io.Discard)
		if err := fs.Parse(args); err != nil {
			return cfg, cmd, fmt.Errorf("%w: %w", errFlags, err)
		}
	}

	switch fs.NArg() {
	case 0:
	case 1:
		cmd.char = fs.Arg(0)
	default:
		return cfg, cmd, fmt.Errorf("%w: expected one character, got %d arguments", errUsage, fs.NArg())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, cmd, err
	}
	return cfg, cmd, nil
}

func newFlagSet(cfg *config.Config, cmd *command, configPath *string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("unisvg", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, helpBanner, glyphsvg.Version)
		fs.PrintDefaults()
	}

	fs.StringVar(configPath, "config", "", "read settings from a TOML or YAML `file`")

	fs.StringVar(&cmd.output, "o", "", "write the SVG to `file` instead of stdout")
	fs.StringVar(&cmd.check, "check", "", "report which fonts support `char`")
	fs.StringVar(&cmd.compare, "compare", "", "render `char` in every downloaded font side by side")
	fs.StringVar(&cmd.batch, "batch", "", "convert every character of `string`")
	fs.StringVar(&cmd.download, "download", "", "download font `id`, or all fonts")
	fs.StringVar(&cmd.fontInfo, "font-info", "", "show coverage of font `id`")
	fs.BoolVar(&cmd.list, "list-fonts", false, "list the available fonts")

	fs.StringVar(&cfg.Font, "font", cfg.Font, "catalog font id, font file or system font `name`")
	fs.BoolVar(&cfg.Auto, "auto", cfg.Auto, "pick the first downloaded font that has the character")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "font parser: sfnt, truetype or gotext")
	fs.StringVar(&cfg.CacheDir, "cache-dir", cfg.CacheDir, "font cache `directory`")

	fs.Float64Var(&cfg.Size, "size", cfg.Size, "glyph size in canvas units")
	fs.Float64Var(&cfg.Size, "s", cfg.Size, "shorthand for -size")
	fs.Float64Var(&cfg.ViewBox, "viewbox", cfg.ViewBox, "canvas size")
	fs.Float64Var(&cfg.ViewBox, "v", cfg.ViewBox, "shorthand for -viewbox")
	fs.StringVar(&cfg.Color, "color", cfg.Color, "fill `color`")
	fs.StringVar(&cfg.Color, "c", cfg.Color, "shorthand for -color")
	fs.StringVar(&cfg.Stroke, "stroke", cfg.Stroke, "stroke `color`")
	fs.Float64Var(&cfg.StrokeWidth, "stroke-width", cfg.StrokeWidth, "stroke width")
	fs.BoolVar(&cfg.Tight, "tight", cfg.Tight, "center on the visible outline instead of the control points")

	fs.BoolVar(&cfg.PathOnly, "path-only", cfg.PathOnly, "print only the path element")
	fs.BoolVar(&cfg.PathOnly, "p", cfg.PathOnly, "shorthand for -path-only")
	fs.BoolVar(&cfg.Minimal, "minimal", cfg.Minimal, "strip comments and blank lines")
	fs.BoolVar(&cfg.Minimal, "m", cfg.Minimal, "shorthand for -minimal")
	fs.IntVar(&cfg.Precision, "precision", cfg.Precision, "decimals in path data, -1 for shortest exact")
	fs.BoolVar(&cfg.EmitTransform, "emit-transform", cfg.EmitTransform, "write font-unit path data with a transform attribute")

	fs.StringVar(&cfg.BatchDir, "batch-dir", cfg.BatchDir, "output `directory` for -batch")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "batch workers, 0 for one per CPU")
	fs.DurationVar((*time.Duration)(&cfg.Timeout), "timeout", cfg.Timeout.Std(), "limit per character, 0 for none")

	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log debug output")
	return fs
}

// parseChar reads a single character, or a code point written as U+XXXX.
func parseChar(s string) (rune, error) {
	if len(s) > 2 && (s[0] == 'U' || s[0] == 'u') && s[1] == '+' {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, fmt.Errorf("%w: invalid code point %q", errUsage, s)
		}
		return rune(v), nil
	}
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || r == utf8.RuneError && n == 1 {
		return 0, fmt.Errorf("%w: %q is not a character", errUsage, s)
	}
	if n != len(s) {
		glyphsvg.Logger().Warn("unisvg: using the first character only", "arg", s)
	}
	return r, nil
}

// fail reports err and returns the exit code.
func (a *app) fail(err error) int {
	a.ui.errorf("Error: %v", err)
	if errors.Is(err, fontcache.ErrNotCached) || errors.Is(err, fontcache.ErrNoFonts) {
		a.ui.printf("\nDownload fonts first:\n  unisvg -download all\n")
	}
	if errors.Is(err, errUsage) {
		return 2
	}
	return 1
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
