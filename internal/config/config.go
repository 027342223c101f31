// Package config loads unisvg settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/glyphsvg/outline"
)

// ErrUnknownFormat is returned for a file extension Load cannot read.
var ErrUnknownFormat = errors.New("config: unknown file format")

// Config holds the settings of the unisvg command. Every field can also be
// set by a command line flag; flags win over the file.
type Config struct {
	Font     string `toml:"font" yaml:"font"`
	Auto     bool   `toml:"auto" yaml:"auto"`
	Backend  string `toml:"backend" yaml:"backend"`
	CacheDir string `toml:"cache_dir" yaml:"cache_dir"`

	ViewBox     float64 `toml:"viewbox" yaml:"viewbox"`
	Size        float64 `toml:"size" yaml:"size"`
	Color       string  `toml:"color" yaml:"color"`
	Stroke      string  `toml:"stroke" yaml:"stroke"`
	StrokeWidth float64 `toml:"stroke_width" yaml:"stroke_width"`
	Tight       bool    `toml:"tight" yaml:"tight"`

	Precision     int  `toml:"precision" yaml:"precision"`
	Minimal       bool `toml:"minimal" yaml:"minimal"`
	PathOnly      bool `toml:"path_only" yaml:"path_only"`
	EmitTransform bool `toml:"emit_transform" yaml:"emit_transform"`

	BatchDir string   `toml:"batch_dir" yaml:"batch_dir"`
	Workers  int      `toml:"workers" yaml:"workers"`
	Timeout  Duration `toml:"timeout" yaml:"timeout"`

	Verbose bool `toml:"verbose" yaml:"verbose"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Font:      "symbola",
		Backend:   outline.DefaultBackend,
		ViewBox:   1024,
		Size:      432,
		Color:     "black",
		Stroke:    "none",
		Precision: 2,
		BatchDir:  "glyphs",
		Timeout:   Duration(30 * time.Second),
	}
}

// Load reads path over the defaults. The format follows the extension:
// .toml, .yaml or .yml. Unknown keys are an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a config in the format named by ext (".toml", ".yaml" or
// ".yml") over the defaults and validates it.
func Decode(r io.Reader, ext string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, err
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings for values the converter cannot use.
func (c Config) Validate() error {
	var errs []error
	if c.ViewBox <= 0 {
		errs = append(errs, fmt.Errorf("viewbox must be positive, got %v", c.ViewBox))
	}
	if c.Size <= 0 {
		errs = append(errs, fmt.Errorf("size must be positive, got %v", c.Size))
	}
	if c.StrokeWidth < 0 {
		errs = append(errs, fmt.Errorf("stroke_width must not be negative, got %v", c.StrokeWidth))
	}
	if c.Precision < -1 || c.Precision > 12 {
		errs = append(errs, fmt.Errorf("precision must be between -1 and 12, got %d", c.Precision))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %v", c.Timeout))
	}
	if c.Backend != "" && !slices.Contains(outline.Backends(), c.Backend) {
		errs = append(errs, fmt.Errorf("unknown backend %q (have %s)",
			c.Backend, strings.Join(outline.Backends(), ", ")))
	}
	return errors.Join(errs...)
}

// Duration is a time.Duration written as a string such as "30s" in
// config files.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a string such as \"30s\"", n.Line)
	}
	return d.UnmarshalText([]byte(n.Value))
}
