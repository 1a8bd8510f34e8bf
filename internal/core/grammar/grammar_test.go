package grammar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_text_normalization/internal/adapters/kv"
	"github.com/baditaflorin/go_text_normalization/pkg/fst"
)

func TestPrimitives(t *testing.T) {
	assert.True(t, fst.Accepts(Digit(), "0"))
	assert.False(t, fst.Accepts(NonZeroDigit(), "0"))
	assert.True(t, fst.Accepts(NonZeroDigit(), "9"))
	assert.True(t, fst.Accepts(Alpha(), "Q"))
	assert.False(t, fst.Accepts(SpokenChar(), "Q"))

	run := DigitRun(2, 3)
	assert.False(t, fst.Accepts(run, "1"))
	assert.True(t, fst.Accepts(run, "12"))
	assert.True(t, fst.Accepts(run, "123"))
	assert.False(t, fst.Accepts(run, "1234"))
}

func TestFields(t *testing.T) {
	words := fst.Plus(SpokenChar())

	out, ok := fst.ShortestPath(InsertField("integer", fst.Cross("7", "seven")), "7")
	require.True(t, ok)
	assert.Equal(t, `integer: "seven"`, out)

	out, ok = fst.ShortestPath(DeleteField("integer", words), `integer: "seven"`)
	require.True(t, ok)
	assert.Equal(t, "seven", out)
}

func TestBuildRecoversAlgebraErrors(t *testing.T) {
	f, err := Build("broken", func() *fst.Fst {
		return fst.Closure(Digit(), 4, 1)
	})
	require.Error(t, err)
	assert.Nil(t, f)
	assert.Contains(t, err.Error(), "grammar broken")

	var fe *fst.Error
	assert.ErrorAs(t, err, &fe)
}

func TestBuildPropagatesOtherPanics(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		_, _ = Build("other", func() *fst.Fst { panic("boom") })
	})
}

func TestGraph(t *testing.T) {
	g := NewGraph("cardinal", KindClassify, true, Digit())
	var tr Transducer = g
	assert.Equal(t, "cardinal", tr.Name())
	assert.Equal(t, KindClassify, tr.Kind())
	assert.True(t, tr.Deterministic())
	assert.Same(t, Digit(), tr.Fst())
}

func TestCacheCompilesOnce(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	cache := NewCache(store, nil)

	calls := 0
	compile := func() (*fst.Fst, error) {
		calls++
		return fst.Optimize(fst.Cross("1", "one")), nil
	}

	first, err := cache.Load(ctx, "digit", true, compile)
	require.NoError(t, err)
	second, err := cache.Load(ctx, "digit", true, compile)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	out, ok := fst.ShortestPath(second, "1")
	require.True(t, ok)
	assert.Equal(t, "one", out)
	assert.Equal(t, first.NumStates(), second.NumStates())

	_, err = cache.Load(ctx, "digit", false, compile)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	entries, err := cache.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "grammar:digit:det:"+Version, entries[0].Key)
}

func TestCacheRecompilesCorruptEntry(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, Key("digit", true), []byte{0xc1}))

	calls := 0
	f, err := NewCache(store, nil).Load(ctx, "digit", true, func() (*fst.Fst, error) {
		calls++
		return fst.Accep("1"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, fst.Accepts(f, "1"))
}

func TestNilCacheCompiles(t *testing.T) {
	var c *Cache
	f, err := c.Load(context.Background(), "x", true, func() (*fst.Fst, error) {
		return fst.Accep("x"), nil
	})
	require.NoError(t, err)
	assert.True(t, fst.Accepts(f, "x"))
}
