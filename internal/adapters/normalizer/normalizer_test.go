package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"ascii untouched", "pay 12,345 now", "pay 12,345 now"},
		{"collapse whitespace", "  pay\t12345\n\nnow  ", "pay 12345 now"},
		{"full width digits", "１２３４５", "12345"},
		{"minus sign", "\u221245", "-45"},
		{"en dash", "\u201345", "-45"},
		{"no-break space", "12\u00a0345", "12 345"},
		{"accents kept", "café 12345", "café 12345"},
	}
	factory := NewNormalizerFactory()
	normalizers := map[string]NormalizerType{
		"default":   DefaultNormalizerType,
		"optimized": OptimizedNormalizerType,
	}
	for nname, typ := range normalizers {
		n := factory.CreateNormalizer(typ)
		for _, tc := range tests {
			t.Run(nname+"/"+tc.name, func(t *testing.T) {
				assert.Equal(t, tc.want, n.Normalize(tc.input))
			})
		}
	}
}

func TestNoopNormalizer(t *testing.T) {
	n := NewNormalizerFactory().CreateNormalizer(NoopNormalizerType)
	assert.Equal(t, "  １２ ", n.Normalize("  １２ "))
}

func TestParseNormalizerType(t *testing.T) {
	typ, ok := ParseNormalizerType("optimized")
	assert.True(t, ok)
	assert.Equal(t, OptimizedNormalizerType, typ)

	typ, ok = ParseNormalizerType("")
	assert.True(t, ok)
	assert.Equal(t, DefaultNormalizerType, typ)

	_, ok = ParseNormalizerType("fastest")
	assert.False(t, ok)
}
