package tagger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_text_normalization/internal/core/domain"
	"github.com/baditaflorin/go_text_normalization/internal/core/grammar"
	"github.com/baditaflorin/go_text_normalization/pkg/fst"
)

var (
	smallSet = sync.OnceValues(func() (*Set, error) { return NewSet(SetSmall, true) })
	fullSet  = sync.OnceValues(func() (*Set, error) { return NewSet(SetFull, true) })
)

func mustSet(t *testing.T, get func() (*Set, error)) *Set {
	t.Helper()
	s, err := get()
	require.NoError(t, err)
	return s
}

func TestSmallSetTagsLongNumbers(t *testing.T) {
	s := mustSet(t, smallSet)
	assert.Equal(t, "small[cardinal]", s.String())

	tok, ok := s.Tag("12,345")
	require.True(t, ok)
	assert.Equal(t, `tokens { cardinal { integer: "twelve thousand three hundred forty five" } }`, tok.String())
	assert.Equal(t, "12,345", tok.Raw)

	for _, word := range []string{"123", "-45", "apples", "12,3"} {
		_, ok := s.Tag(word)
		assert.False(t, ok, "unexpected tag for %q", word)
	}
}

func TestFullSetTagsSignedNumbers(t *testing.T) {
	s := mustSet(t, fullSet)

	tok, ok := s.Tag("-45")
	require.True(t, ok)
	assert.Equal(t, domain.ClassCardinal, tok.Class)
	assert.Equal(t, []domain.Field{{Key: "negative", Value: "true"}, {Key: "integer", Value: "forty five"}}, tok.Fields)

	tok, ok = s.Tag("7")
	require.True(t, ok)
	v, _ := tok.Get("integer")
	assert.Equal(t, "seven", v)
}

func TestUnknownSet(t *testing.T) {
	_, err := NewSet("huge", true)
	assert.ErrorContains(t, err, `unknown tagger set "huge"`)
}

type verbalizeGrammar struct{ grammar.Graph }

func (verbalizeGrammar) TaggerFst() *fst.Fst { return fst.Empty() }

func TestClassifyRejectsVerbalizeGrammar(t *testing.T) {
	g := verbalizeGrammar{grammar.NewGraph("v", grammar.KindVerbalize, true, fst.Empty())}
	_, err := NewClassifyFst(domain.ClassCardinal, g)
	assert.Error(t, err)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Span
	}{
		{"empty", "   ", []Span{}},
		{"plain", "pay 12345 now", []Span{{Word: "pay"}, {Word: "12345"}, {Word: "now"}}},
		{"trailing comma kept apart", "got 12,345, then", []Span{{Word: "got"}, {Word: "12,345", Suffix: ","}, {Word: "then"}}},
		{"brackets", `("12345")`, []Span{{Prefix: `("`, Word: "12345", Suffix: `")`}}},
		{"sentence end", "it was 10000.", []Span{{Word: "it"}, {Word: "was"}, {Word: "10000", Suffix: "."}}},
		{"only punctuation", "...", []Span{{Word: "", Suffix: "..."}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.text)
			assert.Equal(t, tc.want, got)
			for i, s := range got {
				assert.NotEmpty(t, s.String(), "span %d", i)
			}
		})
	}
}
