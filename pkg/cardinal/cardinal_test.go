package cardinal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestrictedWithCacheDir(t *testing.T) {
	dir := t.TempDir()

	first, err := NewRestricted(true, WithCacheDir(dir))
	require.NoError(t, err)
	// The second construction loads the compiled grammar from dir.
	second, err := NewRestricted(true, WithCacheDir(dir))
	require.NoError(t, err)

	assert.Equal(t, first.Fst().NumStates(), second.Fst().NumStates())
	assert.True(t, second.Deterministic())
	assert.Equal(t, "cardinal_restricted", second.Name())

	words, ok := second.Normalize("12,345")
	require.True(t, ok)
	assert.Equal(t, "twelve thousand three hundred forty five", words)

	_, ok = second.Normalize("123")
	assert.False(t, ok)
	assert.Empty(t, second.Alternatives("-45", 3))
}

func TestBase(t *testing.T) {
	g, err := New()
	require.NoError(t, err)

	words, ok := g.Normalize("-45")
	require.True(t, ok)
	assert.Equal(t, "minus forty five", words)

	paths := g.Alternatives("123", 3)
	require.Len(t, paths, 1)
	assert.Equal(t, "one hundred twenty three", paths[0].Output)
}
