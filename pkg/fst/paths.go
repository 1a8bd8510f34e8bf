package fst

import (
	"container/heap"
	"strings"
)

// MaxExpansions bounds the number of partial paths explored by Apply, which
// keeps output-epsilon cycles from running forever.
const MaxExpansions = 1 << 16

// Path is one output of a transducer for a given input.
type Path struct {
	Output string `json:"output"`
	Weight Weight `json:"weight"`
}

// Apply returns up to n distinct outputs of f for input, cheapest first. An
// empty result means f does not accept input.
func Apply(f *Fst, input string, n int) []Path {
	if n <= 0 {
		n = 1
	}
	return nBest(Compose(Accep(input), f), n)
}

// ShortestPath returns the cheapest output of f for input.
func ShortestPath(f *Fst, input string) (string, bool) {
	paths := Apply(f, input, 1)
	if len(paths) == 0 {
		return "", false
	}
	return paths[0].Output, true
}

// Accepts reports whether input is in f's input language.
func Accepts(f *Fst, input string) bool {
	return !Compose(Accep(input), f).IsEmpty()
}

type partial struct {
	state  StateID
	output string
	weight Weight
	// complete marks an item standing for the final weight of state.
	complete bool
}

type partialHeap []partial

func (h partialHeap) Len() int { return len(h) }
func (h partialHeap) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight < h[j].weight
	}
	return h[i].complete && !h[j].complete
}
func (h partialHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *partialHeap) Push(x interface{}) { *h = append(*h, x.(partial)) }
func (h *partialHeap) Pop() interface{} {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}

// nBest performs a best-first search over (state, output) pairs. With
// non-negative weights, complete items pop in order of total weight.
func nBest(f *Fst, n int) []Path {
	if f.start == NoState {
		return nil
	}
	type visit struct {
		state  StateID
		output string
	}
	seen := map[visit]bool{}
	emitted := map[string]bool{}
	var paths []Path
	h := &partialHeap{{state: f.start, weight: One}}
	var sb strings.Builder
	for expansions := 0; h.Len() > 0 && expansions < MaxExpansions; expansions++ {
		p := heap.Pop(h).(partial)
		if p.complete {
			if !emitted[p.output] {
				emitted[p.output] = true
				paths = append(paths, Path{Output: p.output, Weight: p.weight})
				if len(paths) == n {
					break
				}
			}
			continue
		}
		v := visit{p.state, p.output}
		if seen[v] {
			continue
		}
		seen[v] = true
		st := f.states[p.state]
		if !st.final.IsZero() {
			heap.Push(h, partial{state: p.state, output: p.output, weight: p.weight.Times(st.final), complete: true})
		}
		for _, a := range st.arcs {
			out := p.output
			if a.Out != Epsilon {
				sb.Reset()
				sb.WriteString(out)
				sb.WriteRune(a.Out)
				out = sb.String()
			}
			heap.Push(h, partial{state: a.Next, output: out, weight: p.weight.Times(a.Weight)})
		}
	}
	return paths
}
