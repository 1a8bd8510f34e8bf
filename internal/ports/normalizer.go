package ports

import (
	"context"

	"github.com/baditaflorin/go_text_normalization/internal/core/domain"
)

// Normalizer defines the interface for text normalization.
type Normalizer interface {
	Normalize(text string) string
}

// SentenceNormalizer rewrites written-form text into spoken form and reports
// the tokens it recognized.
type SentenceNormalizer interface {
	Normalizer
	NormalizeContext(ctx context.Context, text string) (domain.Result, error)
}
