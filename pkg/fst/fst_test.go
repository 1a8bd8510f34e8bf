package fst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const digits = "0123456789"

func TestCrossApply(t *testing.T) {
	f := Cross("ab", "xyz")

	paths := Apply(f, "ab", 1)
	require.Len(t, paths, 1)
	assert.Equal(t, "xyz", paths[0].Output)
	assert.Equal(t, One, paths[0].Weight)

	assert.Empty(t, Apply(f, "a", 1))
	assert.Empty(t, Apply(f, "abc", 1))
}

func TestInsertDelete(t *testing.T) {
	f := Concat(Delete("-"), Accep("5"), Insert("!"))
	out, ok := ShortestPath(f, "-5")
	require.True(t, ok)
	assert.Equal(t, "5!", out)
}

func TestUnionOrdersByWeight(t *testing.T) {
	f := Union(AddWeight(Cross("1", "one"), 1), Cross("1", "won"))

	paths := Apply(f, "1", 5)
	require.Len(t, paths, 2)
	assert.Equal(t, Path{Output: "won", Weight: 0}, paths[0])
	assert.Equal(t, Path{Output: "one", Weight: 1}, paths[1])
}

func TestApplyDeduplicatesOutputs(t *testing.T) {
	f := Union(Cross("1", "one"), Cross("1", "one"))
	assert.Len(t, Apply(f, "1", 10), 1)
}

func TestClosureBounds(t *testing.T) {
	d := AnyOf(digits)
	tests := []struct {
		name     string
		min, max int
		accepted []string
		rejected []string
	}{
		{"two to three", 2, 3, []string{"12", "123"}, []string{"", "1", "1234"}},
		{"exactly one", 1, 1, []string{"7"}, []string{"", "77"}},
		{"five or more", 5, -1, []string{"12345", "1234567890"}, []string{"1234"}},
		{"star", 0, -1, []string{"", "9", "99999"}, []string{"a"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := Closure(d, tc.min, tc.max)
			for _, s := range tc.accepted {
				assert.True(t, Accepts(f, s), "expected %q accepted", s)
			}
			for _, s := range tc.rejected {
				assert.False(t, Accepts(f, s), "expected %q rejected", s)
			}
		})
	}
}

func TestClosureInvalidBoundsPanics(t *testing.T) {
	require.PanicsWithError(t, "fst: Closure: invalid bounds [3, 2]", func() {
		Closure(AnyOf(digits), 3, 2)
	})
}

func TestCompose(t *testing.T) {
	upper := Star(StringMap([][2]string{{"a", "A"}, {"b", "B"}}))
	dropB := Star(Union(Accep("A"), Delete("B")))

	out, ok := ShortestPath(Compose(upper, dropB), "abab")
	require.True(t, ok)
	assert.Equal(t, "AA", out)
}

func TestComposeEpsilons(t *testing.T) {
	f := Compose(Cross("a", "xy"), Cross("xy", "z"))

	paths := Apply(f, "a", 5)
	require.Len(t, paths, 1)
	assert.Equal(t, "z", paths[0].Output)
}

func TestComposeEmptyIntersection(t *testing.T) {
	f := Compose(Accep("a"), Accep("b"))
	assert.True(t, f.IsEmpty())
	assert.Equal(t, 0, f.NumStates())
	assert.True(t, Empty().IsEmpty())
}

func TestRmEpsilon(t *testing.T) {
	f := Concat(Accep("a"), Optional(Accep("b")), Accep("c"))
	g := RmEpsilon(f)

	for s := 0; s < g.NumStates(); s++ {
		for _, a := range g.Arcs(s) {
			assert.False(t, a.In == Epsilon && a.Out == Epsilon, "epsilon arc left at state %d", s)
		}
	}
	assert.True(t, Accepts(g, "ac"))
	assert.True(t, Accepts(g, "abc"))
	assert.False(t, Accepts(g, "ab"))
}

func TestOptimizePreservesRelation(t *testing.T) {
	f := Union(
		Cross("12", "twelve"),
		Cross("12", "twelve"),
		AddWeight(Concat(Accep("1"), Insert("-"), Accep("2")), 2),
	)
	g := Optimize(f)

	want := []Path{{Output: "twelve", Weight: 0}, {Output: "1-2", Weight: 2}}
	assert.Equal(t, want, Apply(f, "12", 5))
	assert.Equal(t, want, Apply(g, "12", 5))
	assert.LessOrEqual(t, g.NumStates(), f.NumStates())
}

func TestOptimizeMinimalDigitRun(t *testing.T) {
	f := Optimize(Closure(AnyOf(digits), 5, -1))

	assert.Equal(t, 6, f.NumStates())
	assert.True(t, f.IsAcceptor())
	assert.True(t, Accepts(f, "123456789"))
	assert.False(t, Accepts(f, "1234"))
}

func TestDeterminize(t *testing.T) {
	f := Union(Concat(Accep("a"), Accep("b")), Concat(Accep("a"), Accep("c")))
	g := Determinize(f)

	start := g.Start()
	assert.Len(t, g.Arcs(start), 1)
	assert.True(t, Accepts(g, "ab"))
	assert.True(t, Accepts(g, "ac"))
}

func TestProjectAndInvert(t *testing.T) {
	f := Cross("ab", "xy")

	out := Project(f, ProjectOutput)
	assert.True(t, out.IsAcceptor())
	assert.True(t, Accepts(out, "xy"))
	assert.False(t, Accepts(out, "ab"))

	in := Project(f, ProjectInput)
	assert.True(t, Accepts(in, "ab"))

	back, ok := ShortestPath(Invert(Cross("1", "one")), "one")
	require.True(t, ok)
	assert.Equal(t, "1", back)
}

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	s0, s1 := b.AddState(), b.AddState()
	b.SetStart(s0)
	b.SetFinal(s1, 0.5)
	b.AddArc(s0, Arc{In: 'x', Out: 'y', Weight: 1, Next: s1})
	f := b.Build()

	paths := Apply(f, "x", 1)
	require.Len(t, paths, 1)
	assert.Equal(t, Path{Output: "y", Weight: 1.5}, paths[0])
	assert.Equal(t, 1, f.NumArcs())
}

func TestBuilderRejectsDanglingArc(t *testing.T) {
	b := NewBuilder()
	s := b.AddState()
	b.SetStart(s)
	b.AddArc(s, Arc{In: 'a', Out: 'a', Next: 7})
	assert.Panics(t, func() { b.Build() })
}

func TestCodecRoundTrip(t *testing.T) {
	f := Optimize(Union(Cross("1", "one"), AddWeight(Cross("1", "uno"), 0.5)))

	data, err := f.MarshalBinary()
	require.NoError(t, err)
	g, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, f.NumStates(), g.NumStates())
	assert.Equal(t, Apply(f, "1", 5), Apply(g, "1", 5))

	emptyData, err := Empty().MarshalBinary()
	require.NoError(t, err)
	e, err := Decode(emptyData)
	require.NoError(t, err)
	assert.True(t, e.IsEmpty())
}

func TestDecodeCorrupt(t *testing.T) {
	_, err := Decode([]byte{0xc1})
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestWeightSemiring(t *testing.T) {
	assert.Equal(t, Weight(1), Weight(1).Plus(3))
	assert.Equal(t, Weight(4), Weight(1).Times(3))
	assert.True(t, Zero.Times(1).IsZero())
	assert.Equal(t, Weight(2), Zero.Plus(2))
}
