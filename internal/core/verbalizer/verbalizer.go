// Package verbalizer renders tagged tokens in spoken form.
package verbalizer

import (
	"errors"
	"fmt"

	"github.com/baditaflorin/go_text_normalization/internal/core/domain"
	"github.com/baditaflorin/go_text_normalization/internal/core/grammar"
	"github.com/baditaflorin/go_text_normalization/pkg/fst"
)

var (
	// ErrUnsupportedClass is returned for tokens no verbalizer handles.
	ErrUnsupportedClass = errors.New("unsupported semiotic class")
	// ErrNoReading is returned when a token body is not in the verbalizer's
	// input language.
	ErrNoReading = errors.New("no spoken reading")
)

// VerbalizeFst maps the body of one semiotic class to spoken words.
type VerbalizeFst struct {
	grammar.Graph
}

// NewCardinal compiles the cardinal verbalizer:
// `negative: "true" integer: "forty five"` -> "minus forty five".
func NewCardinal() (*VerbalizeFst, error) {
	f, err := grammar.Build(domain.ClassCardinal, func() *fst.Fst {
		negative := fst.Optional(fst.Cross(`negative: "true" `, "minus "))
		integer := grammar.DeleteField("integer", fst.Plus(grammar.SpokenChar()))
		return fst.Optimize(fst.Concat(negative, integer))
	})
	if err != nil {
		return nil, err
	}
	return &VerbalizeFst{Graph: grammar.NewGraph(domain.ClassCardinal, grammar.KindVerbalize, true, f)}, nil
}

// Verbalizer dispatches tokens to the verbalizer of their class. Name tokens
// keep their written form.
type Verbalizer struct {
	byClass map[string]*VerbalizeFst
}

// New returns a verbalizer for every class the library tags.
func New() (*Verbalizer, error) {
	c, err := NewCardinal()
	if err != nil {
		return nil, err
	}
	return &Verbalizer{byClass: map[string]*VerbalizeFst{domain.ClassCardinal: c}}, nil
}

// Verbalize implements ports.Verbalizer.
func (v *Verbalizer) Verbalize(tok domain.Token) (string, error) {
	if tok.Class == domain.ClassName {
		return tok.Raw, nil
	}
	g, ok := v.byClass[tok.Class]
	if !ok {
		return "", fmt.Errorf("verbalize %q: %w", tok.Class, ErrUnsupportedClass)
	}
	out, ok := g.Rewrite(tok.Body())
	if !ok {
		return "", fmt.Errorf("verbalize %s %q: %w", tok.Class, tok.Body(), ErrNoReading)
	}
	return out, nil
}
