package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlock(t *testing.T) {
	b := Block{"Arrows", 0x2190, 0x21FF}

	assert.Equal(t, 112, b.Len())
	assert.True(t, b.Contains('→'))
	assert.False(t, b.Contains('A'))
	assert.Equal(t, "Arrows (U+2190-U+21FF)", b.String())
}

func TestBlockOf(t *testing.T) {
	b, ok := BlockOf('∑')
	require.True(t, ok)
	assert.Equal(t, "Mathematical Operators", b.Name)

	_, ok = BlockOf(0x4E00)
	assert.False(t, ok)
}

func TestCoverage(t *testing.T) {
	f := loadGoRegular(t)

	cov := Coverage(f, nil)
	require.Len(t, cov, len(StandardBlocks))

	basic := cov[0]
	assert.Equal(t, "Basic Latin", basic.Block.Name)
	// Printable ASCII at least.
	assert.GreaterOrEqual(t, basic.Mapped, 95)
	assert.LessOrEqual(t, basic.Percent(), 100.0)
}

func TestCoverageCustomBlocks(t *testing.T) {
	f := loadGoRegular(t)

	digits := Block{"Digits", '0', '9'}
	cov := Coverage(f, []Block{digits})
	require.Len(t, cov, 1)
	assert.Equal(t, 10, cov[0].Mapped)
	assert.InDelta(t, 100, cov[0].Percent(), 1e-9)
}

func TestCoverageClosedFont(t *testing.T) {
	f := loadGoRegular(t)
	require.NoError(t, f.Close())

	cov := Coverage(f, []Block{{"Digits", '0', '9'}})
	assert.Zero(t, cov[0].Mapped)
	assert.Zero(t, MappedRunes(f))
}

func TestMappedRunes(t *testing.T) {
	f := loadGoRegular(t)

	n := MappedRunes(f)
	assert.Greater(t, n, 95)
}

func TestRuneName(t *testing.T) {
	tests := []struct {
		r    rune
		want string
	}{
		{'A', "LATIN CAPITAL LETTER A"},
		{'∑', "N-ARY SUMMATION"},
		{'→', "RIGHTWARDS ARROW"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RuneName(tt.r))
	}
}
