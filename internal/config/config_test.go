package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "symbola", cfg.Font)
	assert.Equal(t, 1024.0, cfg.ViewBox)
	assert.Equal(t, 432.0, cfg.Size)
	assert.Equal(t, "black", cfg.Color)
	assert.Equal(t, "none", cfg.Stroke)
	assert.Equal(t, "glyphs", cfg.BatchDir)
	assert.Equal(t, 30*time.Second, cfg.Timeout.Std())
}

const tomlConfig = `
font = "notomath"
auto = true
viewbox = 512
size = 300
color = "#333"
stroke = "red"
stroke_width = 1.5
precision = 3
emit_transform = true
workers = 4
timeout = "2s"
`

const yamlConfig = `
font: notomath
auto: true
viewbox: 512
size: 300
color: "#333"
stroke: red
stroke_width: 1.5
precision: 3
emit_transform: true
workers: 4
timeout: 2s
`

func TestDecode(t *testing.T) {
	for _, tt := range []struct {
		ext  string
		data string
	}{
		{".toml", tomlConfig},
		{".yaml", yamlConfig},
		{".YML", yamlConfig},
	} {
		t.Run(tt.ext, func(t *testing.T) {
			cfg, err := Decode(strings.NewReader(tt.data), tt.ext)
			require.NoError(t, err)

			want := Default()
			want.Font = "notomath"
			want.Auto = true
			want.ViewBox = 512
			want.Size = 300
			want.Color = "#333"
			want.Stroke = "red"
			want.StrokeWidth = 1.5
			want.Precision = 3
			want.EmitTransform = true
			want.Workers = 4
			want.Timeout = Duration(2 * time.Second)
			assert.Equal(t, want, cfg)
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, ext := range []string{".toml", ".yaml"} {
		cfg, err := Decode(strings.NewReader(""), ext)
		require.NoError(t, err, ext)
		assert.Equal(t, Default(), cfg, ext)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		data string
	}{
		{"unknown toml key", ".toml", `colour = "red"`},
		{"unknown yaml key", ".yaml", "colour: red"},
		{"bad duration", ".toml", `timeout = "soon"`},
		{"bad yaml duration", ".yaml", "timeout: [1, 2]"},
		{"negative size", ".toml", "size = -1"},
		{"zero viewbox", ".yaml", "viewbox: 0"},
		{"bad precision", ".toml", "precision = 40"},
		{"unknown backend", ".yaml", "backend: harfbuzz"},
		{"syntax", ".toml", "font = "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.data), tt.ext)
			assert.Error(t, err)
		})
	}
}

func TestDecodeUnknownFormat(t *testing.T) {
	_, err := Decode(strings.NewReader("{}"), ".json")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unisvg.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "notomath", cfg.Font)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Size = 0
	cfg.Workers = -2

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size")
	assert.Contains(t, err.Error(), "workers")
}
