package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/baditaflorin/go_text_normalization/internal/ports"
)

// DefaultNormalizer prepares written text for tagging: NFKC folding (so
// full-width digits become ASCII), one ASCII hyphen-minus for every dash and
// minus sign, and single spaces between words.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize applies NFKC, unifies dashes and collapses whitespace.
func (n *DefaultNormalizer) Normalize(text string) string {
	text = norm.NFKC.String(text)
	var sb strings.Builder
	sb.Grow(len(text))
	pendingSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			pendingSpace = sb.Len() > 0
			continue
		}
		if pendingSpace {
			sb.WriteByte(' ')
			pendingSpace = false
		}
		sb.WriteRune(unifyDash(r))
	}
	return sb.String()
}

// unifyDash maps dash punctuation and minus signs to '-'.
func unifyDash(r rune) rune {
	if r == '−' || r == '﹣' || r == '－' || unicode.Is(unicode.Pd, r) {
		return '-'
	}
	return r
}
