// Package grammar holds the building blocks shared by every normalization
// grammar: the Graph base type, character-class primitives and the compiled
// grammar cache.
package grammar

import "github.com/baditaflorin/go_text_normalization/pkg/fst"

// Kind tells whether a grammar tags written text or verbalizes tokens.
type Kind string

const (
	KindClassify  Kind = "classify"
	KindVerbalize Kind = "verbalize"
)

// Transducer is implemented by every grammar fragment.
type Transducer interface {
	Name() string
	Kind() Kind
	Deterministic() bool
	Fst() *fst.Fst
}

// Graph is a named, compiled grammar fragment. Grammars embed it to expose
// their transducer.
type Graph struct {
	name          string
	kind          Kind
	deterministic bool
	fst           *fst.Fst
}

// NewGraph wraps a compiled transducer.
func NewGraph(name string, kind Kind, deterministic bool, f *fst.Fst) Graph {
	return Graph{name: name, kind: kind, deterministic: deterministic, fst: f}
}

func (g Graph) Name() string        { return g.name }
func (g Graph) Kind() Kind          { return g.kind }
func (g Graph) Deterministic() bool { return g.deterministic }
func (g Graph) Fst() *fst.Fst       { return g.fst }

// Rewrite returns the best output of the grammar for input.
func (g Graph) Rewrite(input string) (string, bool) {
	return fst.ShortestPath(g.fst, input)
}

// Alternatives returns up to n distinct outputs for input, best first.
func (g Graph) Alternatives(input string, n int) []fst.Path {
	return fst.Apply(g.fst, input, n)
}
