package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/glyphsvg"
	"github.com/gogpu/glyphsvg/fontcache"
	"github.com/gogpu/glyphsvg/internal/config"
	"github.com/gogpu/glyphsvg/outline"
	"github.com/gogpu/glyphsvg/svg"
)

type app struct {
	cfg    config.Config
	cache  *fontcache.Cache
	stdout io.Writer
	ui     *ui
}

// run dispatches to the first mode the command asks for.
func (a *app) run(ctx context.Context, cmd command) error {
	switch {
	case cmd.list:
		return a.listFonts()
	case cmd.download != "":
		return a.download(ctx, cmd.download)
	case cmd.fontInfo != "":
		return a.fontInfo(cmd.fontInfo)
	case cmd.check != "":
		return a.check(cmd.check)
	case cmd.compare != "":
		return a.compare(cmd.compare, cmd.output)
	case cmd.batch != "":
		return a.batch(ctx, cmd.batch)
	case cmd.char != "":
		return a.convert(cmd.char, cmd.output)
	default:
		return fmt.Errorf("%w: no character given (see unisvg -h)", errUsage)
	}
}

func (a *app) fontOptions() []outline.FontOption {
	return []outline.FontOption{outline.WithBackend(a.cfg.Backend)}
}

func (a *app) converterOptions() []glyphsvg.Option {
	bounds := glyphsvg.BoundsControlPoints
	if a.cfg.Tight {
		bounds = glyphsvg.BoundsTight
	}
	return []glyphsvg.Option{
		glyphsvg.WithCanvas(a.cfg.ViewBox, a.cfg.ViewBox),
		glyphsvg.WithGlyphSize(a.cfg.Size),
		glyphsvg.WithBounds(bounds),
		glyphsvg.WithFill(a.cfg.Color),
		glyphsvg.WithStroke(a.cfg.Stroke, a.cfg.StrokeWidth),
	}
}

func (a *app) encoderOptions() []svg.EncoderOption {
	opts := []svg.EncoderOption{svg.Precision(a.cfg.Precision)}
	if a.cfg.Minimal {
		opts = append(opts, svg.Minimal())
	}
	if a.cfg.EmitTransform {
		opts = append(opts, svg.EmitTransform())
	}
	return opts
}

// openFonts opens every downloaded font in auto mode. Otherwise it opens
// the configured font, followed by the other downloaded fonts as
// fallbacks. The caller closes the fonts.
func (a *app) openFonts() ([]*outline.Font, error) {
	if a.cfg.Auto {
		return a.cache.OpenAuto(a.fontOptions()...)
	}
	return a.cache.OpenChain(a.cfg.Font, a.fontOptions()...)
}

// warnFallback logs when res came from a font other than the configured
// one outside auto mode.
func (a *app) warnFallback(res glyphsvg.Result, primary *outline.Font) {
	if a.cfg.Auto || res.Font == "" || res.Font == primary.Name() {
		return
	}
	glyphsvg.Logger().Warn("unisvg: character not in font, using fallback",
		"char", svg.DescribeRune(res.Rune), "font", primary.Name(), "fallback", res.Font)
}

func closeFonts(fonts []*outline.Font) {
	for _, f := range fonts {
		_ = f.Close()
	}
}

// newConverter returns a converter over fonts, the first being primary.
func (a *app) newConverter(fonts []*outline.Font, extra ...glyphsvg.Option) *glyphsvg.Converter {
	opts := append(a.converterOptions(), extra...)
	if len(fonts) > 1 {
		opts = append(opts, glyphsvg.WithFallback(fonts[1:]...))
	}
	return glyphsvg.NewConverter(fonts[0], opts...)
}

func (a *app) listFonts() error {
	a.ui.printf("Available fonts (cache: %s):\n", a.cache.Dir)
	for _, e := range a.cache.Catalog() {
		mark := a.ui.bad()
		if a.cache.Has(e.ID) {
			mark = a.ui.ok()
		}
		a.ui.printf("  %-10s %s %s\n", e.ID, mark, e.Description)
	}
	return nil
}

func (a *app) download(ctx context.Context, id string) error {
	if id == "all" {
		if err := a.cache.DownloadAll(ctx, a.ui.progress()); err != nil {
			return err
		}
		a.ui.printf("\n%s all fonts downloaded to %s\n", a.ui.ok(), a.cache.Dir)
		return nil
	}
	p, err := a.cache.Download(ctx, id, a.ui.progress())
	if err != nil {
		return err
	}
	a.ui.printf("\n%s %s downloaded to %s\n", a.ui.ok(), id, p)
	return nil
}

func (a *app) fontInfo(name string) error {
	f, err := a.cache.Open(name, a.fontOptions()...)
	if err != nil {
		return err
	}
	defer f.Close()

	a.ui.printf("Font: %s\n", f.Name())
	a.ui.printf("  Backend: %s\n", f.Backend())
	a.ui.printf("  Glyphs: %d\n", f.Face().NumGlyphs())
	a.ui.printf("  Units per em: %d\n", f.UnitsPerEm())
	a.ui.printf("  Unicode characters: %d\n", outline.MappedRunes(f))

	a.ui.printf("\nSupported Unicode ranges:\n")
	for _, c := range outline.Coverage(f, nil) {
		if c.Mapped == 0 {
			continue
		}
		a.ui.printf("  %-30s %4d / %4d (%5.1f%%)\n", c.Block.Name, c.Mapped, c.Block.Len(), c.Percent())
	}
	return nil
}

func (a *app) check(arg string) error {
	r, err := parseChar(arg)
	if err != nil {
		return err
	}
	a.ui.printf("Checking %s:\n", svg.DescribeRune(r))
	for _, e := range a.cache.Catalog() {
		if !a.cache.Has(e.ID) {
			a.ui.printf("  %-10s %s Not downloaded\n", e.ID, a.ui.bad())
			continue
		}
		f, err := a.cache.Open(e.ID, a.fontOptions()...)
		if err != nil {
			a.ui.printf("  %-10s %s Error: %v\n", e.ID, a.ui.bad(), err)
			continue
		}
		if !f.HasRune(r) {
			a.ui.printf("  %-10s %s Not supported\n", e.ID, a.ui.bad())
		} else if raw, err := f.Extract(r); err != nil {
			a.ui.printf("  %-10s %s Error: %v\n", e.ID, a.ui.bad(), err)
		} else {
			a.ui.printf("  %-10s %s %s\n", e.ID, a.ui.ok(), glyphLabel(raw))
		}
		_ = f.Close()
	}
	return nil
}

func glyphLabel(raw outline.RawOutline) string {
	if raw.GlyphName != "" {
		return raw.GlyphName
	}
	return fmt.Sprintf("glyph %d", raw.GlyphID)
}

func (a *app) compare(arg, output string) error {
	r, err := parseChar(arg)
	if err != nil {
		return err
	}

	var entries []svg.CompareEntry
	for _, e := range a.cache.Available() {
		f, err := a.cache.Open(e.ID, a.fontOptions()...)
		if err != nil {
			glyphsvg.Logger().Warn("unisvg: skipping font", "id", e.ID, "err", err)
			continue
		}
		res := glyphsvg.NewConverter(f, a.converterOptions()...).Convert(r)
		_ = f.Close()
		entries = append(entries, svg.CompareEntry{Label: e.ID, Result: res})
	}
	if len(entries) == 0 {
		return fontcache.ErrNoFonts
	}

	a.ui.printf("Comparing %s across fonts:\n", svg.DescribeRune(r))
	a.ui.printf("%s\n", strings.Repeat("-", 60))
	for _, e := range entries {
		mark := a.ui.ok()
		if !e.Result.OK() {
			mark = a.ui.bad()
		}
		a.ui.printf("  %-10s %s %s\n", e.Label, mark, e.Result.Status)
	}

	if output == "" {
		output = fmt.Sprintf("compare_%c.svg", r)
	}
	var buf bytes.Buffer
	if err := svg.CompareSheet(&buf, r, entries, a.encoderOptions()...); err != nil {
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return err
	}
	a.ui.printf("Comparison saved to: %s\n", output)
	return nil
}

// batchFile names the output of the i-th character of a batch.
func batchFile(i int, r rune, font string) string {
	if font != "" {
		return fmt.Sprintf("%03d_U%04X_%s.svg", i, r, font)
	}
	return fmt.Sprintf("%03d_U%04X.svg", i, r)
}

func (a *app) batch(ctx context.Context, s string) error {
	runes := []rune(s)
	if err := os.MkdirAll(a.cfg.BatchDir, 0o755); err != nil {
		return err
	}

	fonts, err := a.openFonts()
	if err != nil {
		return err
	}
	defer closeFonts(fonts)

	a.ui.printf("Batch converting: %s\n", s)
	results := glyphsvg.ConvertAll(ctx, a.newConverter(fonts, glyphsvg.WithCache(len(runes))), runes, glyphsvg.BatchOptions{
		Workers: a.cfg.Workers,
		Timeout: a.cfg.Timeout.Std(),
	})

	enc := a.encoderOptions()
	written, failed := 0, 0
	for i, res := range results {
		a.warnFallback(res, fonts[0])
		if a.cfg.Auto && res.Status == glyphsvg.StatusNotFound {
			a.ui.printf("  %3d. %c: %s No font supports this character\n", i+1, res.Rune, a.ui.bad())
			failed++
			continue
		}

		font := ""
		if a.cfg.Auto {
			font = res.Font
		}
		name := batchFile(i, res.Rune, font)

		var buf bytes.Buffer
		if err := a.encodeResult(&buf, res, enc); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(a.cfg.BatchDir, name), buf.Bytes(), 0o644); err != nil {
			return err
		}
		written++

		switch {
		case res.OK():
			a.ui.printf("  %3d. %c → %s\n", i+1, res.Rune, name)
		case res.Blank():
			a.ui.printf("  %3d. %s → %s (blank)\n", i+1, svg.DescribeRune(res.Rune), name)
		default:
			failed++
			a.ui.printf("  %3d. %c: %s %v → %s\n", i+1, res.Rune, a.ui.bad(), res.Err, name)
		}
	}

	a.ui.printf("\nBatch complete: %s written, %d failed. Files in: %s%c\n",
		plural(written, "file"), failed, a.cfg.BatchDir, filepath.Separator)
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

// encodeResult writes the glyph document of res, a blank canvas for a
// glyph without contours, or an error card when the conversion failed.
func (a *app) encodeResult(w io.Writer, res glyphsvg.Result, opts []svg.EncoderOption) error {
	enc := svg.NewEncoder(w, opts...)
	if !res.OK() && !res.Blank() {
		return enc.EncodeError(a.cfg.ViewBox, errorMessage(res))
	}
	return enc.Encode(res.Spec)
}

func errorMessage(res glyphsvg.Result) string {
	if res.Err != nil {
		return res.Err.Error()
	}
	return res.Status.String()
}

func (a *app) convert(arg, output string) error {
	r, err := parseChar(arg)
	if err != nil {
		return err
	}

	fonts, err := a.openFonts()
	if err != nil {
		return err
	}
	defer closeFonts(fonts)

	res := a.newConverter(fonts).Convert(r)
	if a.cfg.Auto && res.Font != "" {
		a.ui.printf("Auto-selected font: %s\n", res.Font)
	}
	a.warnFallback(res, fonts[0])

	var buf bytes.Buffer
	if a.cfg.PathOnly {
		if res.OK() || res.Blank() {
			err = svg.NewEncoder(&buf, a.encoderOptions()...).EncodePathOnly(res.Spec)
		} else {
			fmt.Fprintf(&buf, "<!-- Error: %s -->\n", strings.ReplaceAll(errorMessage(res), "--", "- -"))
		}
	} else {
		err = a.encodeResult(&buf, res, a.encoderOptions())
	}
	if err != nil {
		return err
	}

	if output != "" {
		if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
			return err
		}
	} else if _, err := a.stdout.Write(buf.Bytes()); err != nil {
		return err
	}

	if !res.OK() && !res.Blank() {
		return fmt.Errorf("%s: %w", svg.DescribeRune(r), res.Err)
	}
	a.report(res, output)
	return nil
}

// report prints a summary of a successful conversion. Position is the
// top-left corner of the glyph on the canvas.
func (a *app) report(res glyphsvg.Result, output string) {
	spec := res.Spec
	mode := glyphsvg.BoundsControlPoints
	if a.cfg.Tight {
		mode = glyphsvg.BoundsTight
	}
	b := spec.Bounds(mode)

	a.ui.printf("\n%s Conversion successful\n", a.ui.ok())
	a.ui.printf("  Character: %s\n", svg.DescribeRune(spec.Rune))
	a.ui.printf("  Font: %s\n", spec.FontName)
	if spec.GlyphName != "" {
		a.ui.printf("  Glyph: %s\n", spec.GlyphName)
	}
	if res.Blank() {
		a.ui.printf("  Blank glyph: no outline to draw\n")
	} else {
		a.ui.printf("  Size: %.1f × %.1f\n", b.Width(), b.Height())
		a.ui.printf("  Position: (%.1f, %.1f)\n", b.Min.X, b.Min.Y)
	}
	for _, issue := range res.Dropped {
		a.ui.printf("  %s dropped contour: %v\n", a.ui.bad(), issue)
	}
	if output != "" {
		a.ui.printf("\nSVG saved to: %s\n", output)
	}
}
