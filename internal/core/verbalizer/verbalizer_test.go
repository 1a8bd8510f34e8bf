package verbalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_text_normalization/internal/core/domain"
	"github.com/baditaflorin/go_text_normalization/internal/core/grammar"
)

func cardinalToken(fields ...domain.Field) domain.Token {
	return domain.Token{Class: domain.ClassCardinal, Fields: fields}
}

func TestVerbalize(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	tests := []struct {
		name string
		tok  domain.Token
		want string
	}{
		{
			name: "positive",
			tok:  cardinalToken(domain.Field{Key: "integer", Value: "twelve thousand three hundred forty five"}),
			want: "twelve thousand three hundred forty five",
		},
		{
			name: "negative",
			tok: cardinalToken(
				domain.Field{Key: "negative", Value: "true"},
				domain.Field{Key: "integer", Value: "forty five"},
			),
			want: "minus forty five",
		},
		{
			name: "name passes through",
			tok:  domain.Token{Class: domain.ClassName, Raw: "Apples"},
			want: "Apples",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := v.Verbalize(tc.tok)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestVerbalizeErrors(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	_, err = v.Verbalize(domain.Token{Class: "date"})
	assert.ErrorIs(t, err, ErrUnsupportedClass)

	_, err = v.Verbalize(cardinalToken(domain.Field{Key: "integer", Value: "42"}))
	assert.ErrorIs(t, err, ErrNoReading)

	_, err = v.Verbalize(cardinalToken(domain.Field{Key: "integer", Value: ""}))
	assert.ErrorIs(t, err, ErrNoReading)
}

func TestCardinalVerbalizeFst(t *testing.T) {
	c, err := NewCardinal()
	require.NoError(t, err)
	assert.Equal(t, grammar.KindVerbalize, c.Kind())
	assert.Equal(t, domain.ClassCardinal, c.Name())
	assert.False(t, c.Fst().IsAcceptor())
}
