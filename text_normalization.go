// text_normalization.go
// Package textnormalization converts written numerals in running text into
// spoken-form words:
//
//	textnormalization.NormalizeWithDefaults("I have 12345 apples")
//	// "I have twelve thousand three hundred forty five apples"
//
// The helpers here share one lazily compiled normalizer. Use pkg/normalizer
// and pkg/cardinal for configurable instances.
package textnormalization

import (
	"sync"

	"github.com/baditaflorin/go_text_normalization/pkg/cardinal"
	"github.com/baditaflorin/go_text_normalization/pkg/normalizer"
)

var (
	defaultNormalizer = sync.OnceValues(func() (*normalizer.TextNormalizer, error) {
		logger, err := createDefaultLogger()
		if err != nil {
			return nil, err
		}
		return normalizer.New(normalizer.WithLogger(logger))
	})
	defaultCardinal = sync.OnceValues(func() (*cardinal.Grammar, error) {
		return cardinal.NewRestricted(true)
	})
)

// NormalizeWithDefaults rewrites the numerals of text that read better as
// words: numbers of five or more digits and comma-grouped numbers.
func NormalizeWithDefaults(text string) (string, error) {
	n, err := defaultNormalizer()
	if err != nil {
		return "", err
	}
	return n.NormalizeString(text), nil
}

// CardinalWithDefaults reads a single numeral with the restricted cardinal
// grammar. It returns false for numerals the grammar leaves alone, such as
// "123" or "-45".
func CardinalWithDefaults(numeral string) (string, bool, error) {
	g, err := defaultCardinal()
	if err != nil {
		return "", false, err
	}
	words, ok := g.Normalize(numeral)
	return words, ok, nil
}
