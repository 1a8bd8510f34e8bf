// Package normalize runs the sentence pipeline: preprocess, tokenize, tag,
// verbalize and reassemble.
package normalize

import (
	"context"
	"errors"
	"time"

	"github.com/baditaflorin/go_text_normalization/internal/core/domain"
	"github.com/baditaflorin/go_text_normalization/internal/core/tagger"
	"github.com/baditaflorin/go_text_normalization/internal/pool"
	"github.com/baditaflorin/go_text_normalization/internal/ports"
)

// maxPooledOutput caps the builders kept for reuse, in bytes.
const maxPooledOutput = 64 * 1024

// Config holds configuration for the sentence normalizer.
type Config struct {
	// MaxTokenLength is the longest word handed to the taggers. Longer
	// words pass through unchanged.
	MaxTokenLength int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{MaxTokenLength: 64}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxTokenLength <= 0 {
		return errors.New("maxTokenLength must be greater than 0")
	}
	return nil
}

// Normalizer rewrites written-form text into spoken form.
type Normalizer struct {
	config      Config
	logger      ports.Logger
	preprocess  ports.Normalizer
	tagger      ports.Tagger
	verbalizer  ports.Verbalizer
	builderPool *pool.StringBuilderPool
}

// New creates a sentence normalizer. preprocess may be nil.
func New(config Config, logger ports.Logger, preprocess ports.Normalizer, tagger ports.Tagger, verbalizer ports.Verbalizer) (*Normalizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if tagger == nil || verbalizer == nil {
		return nil, errors.New("tagger and verbalizer are required")
	}
	return &Normalizer{
		config:      config,
		logger:      logger,
		preprocess:  preprocess,
		tagger:      tagger,
		verbalizer:  verbalizer,
		builderPool: pool.NewStringBuilderPool(maxPooledOutput),
	}, nil
}

// Normalize implements ports.Normalizer.
func (n *Normalizer) Normalize(text string) string {
	res, _ := n.NormalizeContext(context.Background(), text)
	return res.Normalized
}

// NormalizeContext normalizes text and reports the tokens it found. It stops
// between tokens when ctx is cancelled and returns ctx.Err().
func (n *Normalizer) NormalizeContext(ctx context.Context, text string) (domain.Result, error) {
	start := time.Now()
	res := domain.Result{Input: text, Counts: make(map[string]int)}

	if n.preprocess != nil {
		text = n.preprocess.Normalize(text)
	}

	sb := n.builderPool.Get()
	defer n.builderPool.Put(sb)
	// Spoken numerals are several times longer than their digits.
	sb.Grow(2 * len(text))

	for i, span := range tagger.Tokenize(text) {
		if err := ctx.Err(); err != nil {
			n.logger.Warn("Normalization cancelled", "error", err, "tokens", i)
			res.Duration = time.Since(start)
			return res, err
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		tok := n.tag(span.Word)
		spoken, err := n.verbalizer.Verbalize(tok)
		if err != nil {
			n.logger.Warn("Falling back to written form", "word", span.Word, "error", err)
			tok = domain.Token{Class: domain.ClassName, Raw: span.Word}
			spoken = span.Word
		}
		res.Tokens = append(res.Tokens, tok)
		res.Counts[tok.Class]++

		sb.WriteString(span.Prefix)
		sb.WriteString(spoken)
		sb.WriteString(span.Suffix)
	}

	res.Normalized = sb.String()
	res.Duration = time.Since(start)
	n.logger.Debug("Normalized text",
		"tokens", len(res.Tokens),
		"cardinals", res.Counts[domain.ClassCardinal],
		"duration", res.Duration,
	)
	return res, nil
}

func (n *Normalizer) tag(word string) domain.Token {
	if word != "" && len(word) <= n.config.MaxTokenLength {
		if tok, ok := n.tagger.Tag(word); ok {
			return tok
		}
	}
	return domain.Token{Class: domain.ClassName, Raw: word}
}
