package fontcache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	entries := Catalog()
	require.Len(t, entries, 3)

	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
		assert.True(t, strings.HasSuffix(e.File, ".ttf"), e.File)
		assert.True(t, strings.HasPrefix(e.URL, "https://"), e.URL)
		assert.NotEmpty(t, e.Description)
	}

	// Callers get a copy.
	entries[0].ID = "changed"
	assert.Equal(t, "symbola", Catalog()[0].ID)
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("notomath")
	require.True(t, ok)
	assert.True(t, e.IsArchive())
	assert.Equal(t, "NotoSansMath-v3.000/NotoSansMath-Regular.ttf", e.ZipMember)

	e, ok = Lookup("symbola")
	require.True(t, ok)
	assert.False(t, e.IsArchive())

	_, ok = Lookup("comic-sans")
	assert.False(t, ok)
}

func TestAutoOrderInCatalog(t *testing.T) {
	for _, id := range AutoOrder {
		_, ok := Lookup(id)
		assert.True(t, ok, id)
	}
	_, ok := Lookup(DefaultFont)
	assert.True(t, ok)
}
