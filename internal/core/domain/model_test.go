package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	tok := Token{
		Class: ClassCardinal,
		Fields: []Field{
			{Key: "negative", Value: "true"},
			{Key: "integer", Value: "twenty three"},
		},
	}
	assert.Equal(t, `tokens { cardinal { negative: "true" integer: "twenty three" } }`, tok.String())

	v, ok := tok.Get("integer")
	assert.True(t, ok)
	assert.Equal(t, "twenty three", v)

	_, ok = tok.Get("fractional")
	assert.False(t, ok)
}

func TestParseBody(t *testing.T) {
	fields, err := ParseBody(`negative: "true" integer: "twenty three"`)
	require.NoError(t, err)
	assert.Equal(t, []Field{{"negative", "true"}, {"integer", "twenty three"}}, fields)

	tok := Token{Class: ClassCardinal, Fields: fields}
	again, err := ParseBody(tok.Body())
	require.NoError(t, err)
	assert.Equal(t, fields, again)

	fields, err = ParseBody("")
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestParseBodyMalformed(t *testing.T) {
	for _, body := range []string{
		`integer "seven"`,
		`integer: seven`,
		`integer: "seven`,
		`: "seven"`,
		`two words: "x"`,
	} {
		_, err := ParseBody(body)
		assert.ErrorIs(t, err, ErrMalformedBody, "body %q", body)
	}
}
