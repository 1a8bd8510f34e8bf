package normalizer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/baditaflorin/go_text_normalization/internal/pool"
	"github.com/baditaflorin/go_text_normalization/internal/ports"
)

// OptimizedNormalizer produces the same output as DefaultNormalizer with
// buffer pooling and an ASCII fast path that skips NFKC entirely.
type OptimizedNormalizer struct {
	// Pre-computed decision table for ASCII characters (0-127)
	// 0 = keep as is
	// 1 = whitespace
	asciiTable [128]byte

	bytePool *pool.BufferPool
}

// NewOptimizedNormalizer creates a new optimized normalizer
func NewOptimizedNormalizer() ports.Normalizer {
	n := &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(8192), // 8K bytes initial capacity
	}
	for i := 0; i < 128; i++ {
		if unicode.IsSpace(rune(i)) {
			n.asciiTable[i] = 1
		}
	}
	return n
}

// Normalize applies NFKC, unifies dashes and collapses whitespace.
func (n *OptimizedNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	asciiOnly := true
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			asciiOnly = false
			break
		}
	}
	// ASCII is already NFKC.
	if !asciiOnly {
		text = norm.NFKC.String(text)
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)
	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}

	pendingSpace := false
	if asciiOnly {
		for i := 0; i < len(text); i++ {
			b := text[i]
			if n.asciiTable[b] == 1 {
				pendingSpace = len(*buffer) > 0
				continue
			}
			if pendingSpace {
				*buffer = append(*buffer, ' ')
				pendingSpace = false
			}
			*buffer = append(*buffer, b)
		}
		return string(*buffer)
	}

	for _, r := range text {
		if r < utf8.RuneSelf && n.asciiTable[r] == 0 {
			if pendingSpace {
				*buffer = append(*buffer, ' ')
				pendingSpace = false
			}
			*buffer = append(*buffer, byte(r))
			continue
		}
		if unicode.IsSpace(r) {
			pendingSpace = len(*buffer) > 0
			continue
		}
		if pendingSpace {
			*buffer = append(*buffer, ' ')
			pendingSpace = false
		}
		*buffer = utf8.AppendRune(*buffer, unifyDash(r))
	}
	return string(*buffer)
}

// NormalizerFactory creates the appropriate normalizer based on performance requirements
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType selects a normalizer implementation.
type NormalizerType int

const (
	// DefaultNormalizerType is the straightforward normalizer
	DefaultNormalizerType NormalizerType = iota
	// OptimizedNormalizerType uses buffer pooling and an ASCII fast path
	OptimizedNormalizerType
	// NoopNormalizerType leaves text untouched
	NoopNormalizerType
)

// ParseNormalizerType maps a configuration name to a NormalizerType.
func ParseNormalizerType(name string) (NormalizerType, bool) {
	switch name {
	case "default", "":
		return DefaultNormalizerType, true
	case "optimized":
		return OptimizedNormalizerType, true
	case "none":
		return NoopNormalizerType, true
	}
	return DefaultNormalizerType, false
}

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case OptimizedNormalizerType:
		return NewOptimizedNormalizer()
	case NoopNormalizerType:
		return noopNormalizer{}
	default:
		return NewDefaultNormalizer()
	}
}

type noopNormalizer struct{}

func (noopNormalizer) Normalize(text string) string { return text }
