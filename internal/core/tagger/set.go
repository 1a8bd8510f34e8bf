package tagger

import (
	"fmt"
	"strings"

	"github.com/baditaflorin/go_text_normalization/internal/core/cardinal"
	"github.com/baditaflorin/go_text_normalization/internal/core/domain"
)

// Tagger set names.
const (
	// SetSmall tags only numerals that read better as words in running
	// text: five or more digits, or comma-grouped numbers.
	SetSmall = "small"
	// SetFull tags every cardinal, including short and signed numbers.
	SetFull = "full"
)

// Set tries its taggers in order and returns the first match.
type Set struct {
	name    string
	taggers []*ClassifyFst
}

// NewSet compiles the named tagger set. opts are passed to the cardinal
// grammars.
func NewSet(name string, deterministic bool, opts ...cardinal.Option) (*Set, error) {
	var g BodyGrammar
	switch name {
	case SetSmall:
		r, err := cardinal.NewRestricted(deterministic, opts...)
		if err != nil {
			return nil, err
		}
		g = r
	case SetFull:
		c, err := cardinal.New(append(opts[:len(opts):len(opts)], cardinal.WithDeterministic(deterministic))...)
		if err != nil {
			return nil, err
		}
		g = c
	default:
		return nil, fmt.Errorf("unknown tagger set %q (want %s or %s)", name, SetSmall, SetFull)
	}

	c, err := NewClassifyFst(domain.ClassCardinal, g)
	if err != nil {
		return nil, err
	}
	return &Set{name: name, taggers: []*ClassifyFst{c}}, nil
}

// Name returns the set name.
func (s *Set) Name() string {
	return s.name
}

// Classes lists the semiotic classes the set can produce.
func (s *Set) Classes() []string {
	classes := make([]string, len(s.taggers))
	for i, t := range s.taggers {
		classes[i] = t.Class()
	}
	return classes
}

// Tag implements ports.Tagger.
func (s *Set) Tag(token string) (domain.Token, bool) {
	for _, t := range s.taggers {
		if tok, ok := t.Tag(token); ok {
			return tok, true
		}
	}
	return domain.Token{}, false
}

// String describes the set for logs.
func (s *Set) String() string {
	return s.name + "[" + strings.Join(s.Classes(), ",") + "]"
}
