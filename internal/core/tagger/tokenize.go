package tagger

import "strings"

const (
	openers = "\"'([{"
	closers = "\"')]}.,;:!?"
)

// Span is one whitespace-separated piece of text, split into the word a
// tagger sees and the punctuation around it.
type Span struct {
	Prefix string
	Word   string
	Suffix string
}

// Tokenize splits text on whitespace and peels leading quotes and brackets
// and trailing quotes, brackets and sentence punctuation off every piece.
func Tokenize(text string) []Span {
	fields := strings.Fields(text)
	spans := make([]Span, 0, len(fields))
	for _, f := range fields {
		word := strings.TrimLeft(f, openers)
		prefix := f[:len(f)-len(word)]
		trimmed := strings.TrimRight(word, closers)
		spans = append(spans, Span{
			Prefix: prefix,
			Word:   trimmed,
			Suffix: word[len(trimmed):],
		})
	}
	return spans
}

// String reassembles the span.
func (s Span) String() string {
	return s.Prefix + s.Word + s.Suffix
}
