// Package fst implements weighted finite-state transducers over runes.
//
// Weights live in the tropical semiring: paths multiply by adding weights and
// alternatives combine by taking the minimum. A transducer maps input strings
// to output strings, each with a cost; an acceptor is a transducer whose input
// and output labels agree on every arc.
//
// An *Fst is immutable once built. Every operation in this package returns a
// new value, so compiled grammars can be shared across goroutines without
// locking.
package fst

import "math"

// Label is an arc label. Labels are runes and Epsilon matches the empty string.
type Label = rune

// Epsilon is the empty label.
const Epsilon Label = 0

// StateID identifies a state inside one Fst.
type StateID = int

// NoState marks the absence of a state, e.g. the start of an empty Fst.
const NoState StateID = -1

// Weight is a tropical semiring weight.
type Weight float64

var (
	// Zero is the additive identity. Non-final states have final weight Zero.
	Zero = Weight(math.Inf(1))
	// One is the multiplicative identity.
	One = Weight(0)
)

// Plus returns the minimum of two weights.
func (w Weight) Plus(o Weight) Weight {
	if o < w {
		return o
	}
	return w
}

// Times returns the sum of two weights.
func (w Weight) Times(o Weight) Weight {
	if w.IsZero() || o.IsZero() {
		return Zero
	}
	return w + o
}

// IsZero reports whether w is Zero.
func (w Weight) IsZero() bool {
	return math.IsInf(float64(w), 1)
}

// Arc is a transition consuming In, emitting Out and costing Weight.
type Arc struct {
	In     Label
	Out    Label
	Weight Weight
	Next   StateID
}

type state struct {
	final Weight
	arcs  []Arc
}

// Fst is an immutable weighted finite-state transducer.
type Fst struct {
	start  StateID
	states []state
}

// Empty returns the transducer accepting nothing.
func Empty() *Fst {
	return &Fst{start: NoState}
}

// Start returns the start state, or NoState for an empty transducer.
func (f *Fst) Start() StateID {
	return f.start
}

// NumStates returns the number of states.
func (f *Fst) NumStates() int {
	return len(f.states)
}

// NumArcs returns the total number of arcs.
func (f *Fst) NumArcs() int {
	n := 0
	for _, s := range f.states {
		n += len(s.arcs)
	}
	return n
}

// Final returns the final weight of s (Zero if s is not final).
func (f *Fst) Final(s StateID) Weight {
	return f.states[s].final
}

// IsFinal reports whether s is a final state.
func (f *Fst) IsFinal(s StateID) bool {
	return !f.states[s].final.IsZero()
}

// Arcs returns a copy of the arcs leaving s.
func (f *Fst) Arcs(s StateID) []Arc {
	arcs := make([]Arc, len(f.states[s].arcs))
	copy(arcs, f.states[s].arcs)
	return arcs
}

// IsAcceptor reports whether every arc has matching input and output labels.
func (f *Fst) IsAcceptor() bool {
	for _, s := range f.states {
		for _, a := range s.arcs {
			if a.In != a.Out {
				return false
			}
		}
	}
	return true
}

// IsEmpty reports whether no final state is reachable from the start, i.e.
// the transducer accepts the empty language.
func (f *Fst) IsEmpty() bool {
	if f.start == NoState {
		return true
	}
	seen := make([]bool, len(f.states))
	stack := []StateID{f.start}
	seen[f.start] = true
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !f.states[s].final.IsZero() {
			return false
		}
		for _, a := range f.states[s].arcs {
			if !seen[a.Next] {
				seen[a.Next] = true
				stack = append(stack, a.Next)
			}
		}
	}
	return true
}

// Builder assembles an Fst state by state. A Builder is not safe for
// concurrent use; the Fst it produces is.
type Builder struct {
	start  StateID
	states []state
}

// NewBuilder returns a builder with no states.
func NewBuilder() *Builder {
	return &Builder{start: NoState}
}

// AddState adds a non-final state and returns its id.
func (b *Builder) AddState() StateID {
	b.states = append(b.states, state{final: Zero})
	return len(b.states) - 1
}

// SetStart marks s as the start state.
func (b *Builder) SetStart(s StateID) {
	b.check("SetStart", s)
	b.start = s
}

// SetFinal sets the final weight of s. Zero makes s non-final.
func (b *Builder) SetFinal(s StateID, w Weight) {
	b.check("SetFinal", s)
	b.states[s].final = w
}

// AddArc adds an arc leaving s.
func (b *Builder) AddArc(s StateID, a Arc) {
	b.check("AddArc", s)
	b.states[s].arcs = append(b.states[s].arcs, a)
}

// Build validates the machine and returns it. The builder must not be used
// afterwards.
func (b *Builder) Build() *Fst {
	for s, st := range b.states {
		for _, a := range st.arcs {
			if a.Next < 0 || a.Next >= len(b.states) {
				fail("Build", "arc from state %d targets unknown state %d", s, a.Next)
			}
		}
	}
	if b.start == NoState && len(b.states) > 0 {
		return Empty()
	}
	f := &Fst{start: b.start, states: b.states}
	b.states = nil
	b.start = NoState
	return f
}

func (b *Builder) check(op string, s StateID) {
	if s < 0 || s >= len(b.states) {
		fail(op, "unknown state %d", s)
	}
}

// appendFst copies every state of f into the builder and returns the offset
// added to f's state ids.
func (b *Builder) appendFst(f *Fst) int {
	off := len(b.states)
	for _, st := range f.states {
		arcs := make([]Arc, len(st.arcs))
		for i, a := range st.arcs {
			a.Next += off
			arcs[i] = a
		}
		b.states = append(b.states, state{final: st.final, arcs: arcs})
	}
	return off
}
