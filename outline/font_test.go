package outline

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func loadGoRegular(t *testing.T, opts ...FontOption) *Font {
	t.Helper()
	f, err := NewFont(goregular.TTF, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestNewFont(t *testing.T) {
	f := loadGoRegular(t)

	assert.Equal(t, "Go", f.Name())
	assert.Equal(t, DefaultBackend, f.Backend())
	assert.Equal(t, 2048, f.UnitsPerEm())
}

func TestNewFontEmptyData(t *testing.T) {
	_, err := NewFont(nil)
	assert.ErrorIs(t, err, ErrEmptyFontData)
}

func TestNewFontGarbage(t *testing.T) {
	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			_, err := NewFont([]byte("definitely not a font file"), WithBackend(name))
			require.Error(t, err)

			var be *BackendError
			assert.ErrorAs(t, err, &be)
		})
	}
}

func TestNewFontUnknownBackend(t *testing.T) {
	_, err := NewFont(goregular.TTF, WithBackend("nope"))

	var ube *UnknownBackendError
	require.ErrorAs(t, err, &ube)
	assert.Equal(t, "nope", ube.Name)
}

func TestWithName(t *testing.T) {
	f := loadGoRegular(t, WithName("Gopher Sans"))
	assert.Equal(t, "Gopher Sans", f.Name())
}

func TestOpenFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o600))

	f, err := OpenFont(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.True(t, f.HasRune('g'))
}

func TestOpenFontMissing(t *testing.T) {
	_, err := OpenFont(filepath.Join(t.TempDir(), "missing.ttf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFontDataIsCopied(t *testing.T) {
	data := make([]byte, len(goregular.TTF))
	copy(data, goregular.TTF)

	f, err := NewFont(data)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	for i := range data {
		data[i] = 0
	}
	raw, err := f.Extract('A')
	require.NoError(t, err)
	assert.False(t, raw.IsEmpty())
}

func TestExtractNotFound(t *testing.T) {
	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			f := loadGoRegular(t, WithBackend(name))

			assert.False(t, f.HasRune(0x1F600))
			_, err := f.Extract(0x1F600)
			assert.ErrorIs(t, err, ErrGlyphNotFound)
		})
	}
}

func TestExtractSpaceIsEmpty(t *testing.T) {
	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			f := loadGoRegular(t, WithBackend(name))

			raw, err := f.Extract(' ')
			require.NoError(t, err)
			assert.True(t, raw.IsEmpty())
			assert.Greater(t, raw.Advance, 0.0)
		})
	}
}

// pointBounds returns the box around every point of raw.
func pointBounds(raw RawOutline) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, c := range raw.Contours {
		for _, p := range c {
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}
	return minX, minY, maxX, maxY
}

func TestExtractSfntInFontUnits(t *testing.T) {
	sf := loadGoRegular(t, WithBackend(sfntBackendName))
	tt := loadGoRegular(t, WithBackend(truetypeBackendName))

	for _, r := range "AoW@" {
		got, err := sf.Extract(r)
		require.NoError(t, err)
		want, err := tt.Extract(r)
		require.NoError(t, err)

		for _, c := range got.Contours {
			for _, p := range c {
				assert.Equal(t, math.Trunc(p.X), p.X, "%c: x not a whole font unit", r)
				assert.Equal(t, math.Trunc(p.Y), p.Y, "%c: y not a whole font unit", r)
			}
		}

		x0, y0, x1, y1 := pointBounds(got)
		wx0, wy0, wx1, wy1 := pointBounds(want)
		assert.Equal(t, []float64{wx0, wy0, wx1, wy1}, []float64{x0, y0, x1, y1}, "%c bounds", r)
		assert.Equal(t, want.Advance, got.Advance, "%c advance", r)
	}
}

func TestExtractOrientation(t *testing.T) {
	// 'A' stands on the baseline: every backend must deliver Y up.
	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			f := loadGoRegular(t, WithBackend(name))

			raw, err := f.Extract('A')
			require.NoError(t, err)
			require.False(t, raw.IsEmpty())
			assert.Equal(t, 2048, raw.UnitsPerEm)

			minY, maxY := raw.Contours[0][0].Y, raw.Contours[0][0].Y
			for _, c := range raw.Contours {
				for _, p := range c {
					minY = min(minY, p.Y)
					maxY = max(maxY, p.Y)
				}
			}
			assert.InDelta(t, 0, minY, 1)
			assert.Greater(t, maxY, 1000.0)
		})
	}
}

func TestExtractContours(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'l', 1},
		{'O', 2},
		{'B', 3},
		{'i', 2},
	}

	for _, name := range Backends() {
		f := loadGoRegular(t, WithBackend(name))
		for _, tt := range tests {
			t.Run(name+"/"+string(tt.r), func(t *testing.T) {
				raw, err := f.Extract(tt.r)
				require.NoError(t, err)
				assert.Len(t, raw.Contours, tt.want)
			})
		}
	}
}

func TestExtractTrueTypeKeepsImpliedPoints(t *testing.T) {
	f := loadGoRegular(t, WithBackend(truetypeBackendName))

	raw, err := f.Extract('O')
	require.NoError(t, err)

	consecutive := false
	for _, c := range raw.Contours {
		for i := range c {
			next := c[(i+1)%len(c)]
			if c[i].Kind == QuadControl && next.Kind == QuadControl {
				consecutive = true
			}
		}
	}
	assert.True(t, consecutive, "expected consecutive off-curve points in raw TrueType 'O'")
}

func TestExtractQuadraticAndCubicKinds(t *testing.T) {
	kinds := func(raw RawOutline) map[PointKind]int {
		m := make(map[PointKind]int)
		for _, c := range raw.Contours {
			for _, p := range c {
				m[p.Kind]++
			}
		}
		return m
	}

	t.Run("truetype outlines are quadratic", func(t *testing.T) {
		raw, err := loadGoRegular(t).Extract('o')
		require.NoError(t, err)
		k := kinds(raw)
		assert.Positive(t, k[QuadControl])
		assert.Zero(t, k[CubicControl])
	})

	for _, name := range []string{sfntBackendName, gotextBackendName} {
		t.Run("cff outlines are cubic/"+name, func(t *testing.T) {
			f, err := NewFont(lmroman10regular.TTF, WithBackend(name))
			require.NoError(t, err)
			defer func() { _ = f.Close() }()

			raw, err := f.Extract('o')
			require.NoError(t, err)
			k := kinds(raw)
			assert.Positive(t, k[CubicControl])
			assert.Zero(t, k[QuadControl])
			assert.Zero(t, k[CubicControl]%2, "cubic control points come in pairs")
		})
	}
}

func TestExtractAfterClose(t *testing.T) {
	f, err := NewFont(goregular.TTF)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = f.Extract('A')
	assert.ErrorIs(t, err, ErrFontClosed)
	assert.False(t, f.HasRune('A'))
	assert.Zero(t, f.UnitsPerEm())
}

func TestFontConcurrentExtract(t *testing.T) {
	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			f := loadGoRegular(t, WithBackend(name))
			want, err := f.Extract('g')
			require.NoError(t, err)

			var wg sync.WaitGroup
			errs := make(chan error, 16)
			for range 16 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for r := rune('a'); r <= 'z'; r++ {
						if _, err := f.Extract(r); err != nil {
							errs <- err
							return
						}
					}
					got, err := f.Extract('g')
					if err != nil {
						errs <- err
						return
					}
					if got.NumPoints() != want.NumPoints() {
						errs <- errors.New("concurrent extract returned a different outline")
					}
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				t.Error(err)
			}
		})
	}
}

func TestFontCopyCheck(t *testing.T) {
	f := loadGoRegular(t)

	defer func() {
		if recover() == nil {
			t.Error("expected panic when using a copied Font")
		}
	}()

	//nolint:govet // copying on purpose
	copied := *f
	_ = copied.Name()
}

func TestNumGlyphsAgree(t *testing.T) {
	want := loadGoRegular(t).Face().NumGlyphs()
	require.Positive(t, want)

	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			f := loadGoRegular(t, WithBackend(name))
			assert.Equal(t, want, f.Face().NumGlyphs())
		})
	}
}
