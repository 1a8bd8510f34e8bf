package benchmark

import (
	"context"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_text_normalization/internal/adapters/normalizer"
	"github.com/baditaflorin/go_text_normalization/pkg/cardinal"
	textnorm "github.com/baditaflorin/go_text_normalization/pkg/normalizer"
)

// generateText creates a text of roughly size bytes mixing words and numerals
func generateText(size int) string {
	if size <= 0 {
		return ""
	}

	samples := []string{
		"The warehouse shipped 12,345 parcels last quarter.",
		"Only 42 of them came back damaged.",
		"Revenue reached 1,250,000 after 99999 orders.",
		"Call 555 0100 between 9 and 5.",
	}
	var sb strings.Builder
	sb.Grow(size + 64)
	for i := 0; sb.Len() < size; i++ {
		sb.WriteString(samples[i%len(samples)])
		sb.WriteString(" ")
	}
	return sb.String()[:size]
}

// generateLines creates n lines of text for the stream benchmarks
func generateLines(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteString(generateText(120))
		sb.WriteByte('\n')
	}
	return sb.String()
}

var (
	restricted = sync.OnceValues(func() (*cardinal.Grammar, error) {
		return cardinal.NewRestricted(true)
	})
	smallNormalizer = sync.OnceValues(func() (*textnorm.TextNormalizer, error) {
		log, err := l.NewStandardFactory().CreateLogger(l.Config{Output: io.Discard})
		if err != nil {
			return nil, err
		}
		return textnorm.New(textnorm.WithLogger(log), textnorm.WithCacheSize(0))
	})
)

// BenchmarkNormalizers compares the text preprocessors
func BenchmarkNormalizers(b *testing.B) {
	smallText := generateText(100)
	mediumText := generateText(10000)
	largeText := generateText(100000)

	factory := normalizer.NewNormalizerFactory()

	benchmarks := []struct {
		name     string
		normType normalizer.NormalizerType
		input    string
	}{
		{"Default-Small", normalizer.DefaultNormalizerType, smallText},
		{"Default-Medium", normalizer.DefaultNormalizerType, mediumText},
		{"Default-Large", normalizer.DefaultNormalizerType, largeText},

		{"Optimized-Small", normalizer.OptimizedNormalizerType, smallText},
		{"Optimized-Medium", normalizer.OptimizedNormalizerType, mediumText},
		{"Optimized-Large", normalizer.OptimizedNormalizerType, largeText},
	}

	for _, bm := range benchmarks {
		norm := factory.CreateNormalizer(bm.normType)

		b.Run(bm.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(bm.input)))

			for i := 0; i < b.N; i++ {
				_ = norm.Normalize(bm.input)
			}
		})
	}
}

// BenchmarkRestrictedCardinal measures single numeral rewrites
func BenchmarkRestrictedCardinal(b *testing.B) {
	g, err := restricted()
	if err != nil {
		b.Fatal(err)
	}

	rng := rand.New(rand.NewSource(1))
	inputs := make([]string, 1024)
	for i := range inputs {
		inputs[i] = strconv.Itoa(10000 + rng.Intn(1_000_000_000))
	}

	b.Run("Accepted", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, ok := g.Normalize(inputs[i%len(inputs)]); !ok {
				b.Fatalf("rejected %s", inputs[i%len(inputs)])
			}
		}
	})

	b.Run("Rejected", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = g.Normalize("1234")
		}
	})
}

// BenchmarkSentenceNormalize measures whole-sentence normalization
func BenchmarkSentenceNormalize(b *testing.B) {
	n, err := smallNormalizer()
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	for _, size := range []int{100, 1000, 10000} {
		text := generateText(size)
		b.Run(strconv.Itoa(size), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				if _, err := n.Normalize(ctx, text); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkStream measures line-by-line normalization
func BenchmarkStream(b *testing.B) {
	n, err := smallNormalizer()
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	input := generateLines(1000)

	b.ReportAllocs()
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := n.NormalizeStream(ctx, strings.NewReader(input), io.Discard); err != nil {
			b.Fatal(err)
		}
	}
}
