// Package tagger turns written tokens into tagged semiotic tokens.
package tagger

import (
	"fmt"

	"github.com/baditaflorin/go_text_normalization/internal/core/domain"
	"github.com/baditaflorin/go_text_normalization/internal/core/grammar"
	"github.com/baditaflorin/go_text_normalization/pkg/fst"
)

// BodyGrammar is a classify grammar that can also write its tagged form.
type BodyGrammar interface {
	grammar.Transducer
	// TaggerFst maps written input to a token body such as
	// `integer: "forty two"`.
	TaggerFst() *fst.Fst
}

// ClassifyFst tags tokens of a single semiotic class.
type ClassifyFst struct {
	grammar.Graph
	class string
}

// NewClassifyFst wraps g as the tagger for class.
func NewClassifyFst(class string, g BodyGrammar) (*ClassifyFst, error) {
	if g.Kind() != grammar.KindClassify {
		return nil, fmt.Errorf("tagger %s: grammar %s is a %s grammar", class, g.Name(), g.Kind())
	}
	return &ClassifyFst{
		Graph: grammar.NewGraph(g.Name(), grammar.KindClassify, g.Deterministic(), g.TaggerFst()),
		class: class,
	}, nil
}

// Class returns the semiotic class this tagger produces.
func (c *ClassifyFst) Class() string {
	return c.class
}

// Tag implements ports.Tagger.
func (c *ClassifyFst) Tag(token string) (domain.Token, bool) {
	body, ok := c.Rewrite(token)
	if !ok {
		return domain.Token{}, false
	}
	fields, err := domain.ParseBody(body)
	if err != nil {
		return domain.Token{}, false
	}
	return domain.Token{Class: c.class, Fields: fields, Raw: token}, true
}
