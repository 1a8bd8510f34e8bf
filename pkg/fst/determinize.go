package fst

import (
	"encoding/binary"
	"sort"
)

// finalMark labels the encoded arcs that stand for final weights.
const finalMark Label = -1

// encLabel is an (input, output, weight) triple treated as a single symbol.
// Encoding the weight as well keeps subset construction unweighted, so it
// terminates on every input.
type encLabel struct {
	in, out Label
	w       Weight
}

type darc struct {
	label int
	next  int
}

// dfa is a deterministic acceptor over encoded labels. Final weights are
// encoded as finalMark arcs into the single accepting state.
type dfa struct {
	start  int
	final  []bool
	arcs   [][]darc
	labels []encLabel
}

type encoder struct {
	ids    map[encLabel]int
	labels []encLabel
}

func (e *encoder) encode(l encLabel) int {
	if id, ok := e.ids[l]; ok {
		return id
	}
	id := len(e.labels)
	e.ids[l] = id
	e.labels = append(e.labels, l)
	return id
}

// determinize runs subset construction on the encoded form of an
// epsilon-free f.
func determinize(f *Fst) *dfa {
	enc := &encoder{ids: map[encLabel]int{}}
	super := len(f.states)
	d := &dfa{}
	subsets := map[string]int{}
	var sets [][]StateID
	var key []byte
	add := func(set []StateID) int {
		key = key[:0]
		for _, s := range set {
			key = binary.AppendUvarint(key, uint64(s))
		}
		if id, ok := subsets[string(key)]; ok {
			return id
		}
		id := len(sets)
		subsets[string(key)] = id
		sets = append(sets, set)
		d.final = append(d.final, len(set) == 1 && set[0] == super)
		d.arcs = append(d.arcs, nil)
		return id
	}
	d.start = add([]StateID{f.start})

	for id := 0; id < len(sets); id++ {
		next := map[int][]StateID{}
		var order []int
		push := func(label int, s StateID) {
			if _, ok := next[label]; !ok {
				order = append(order, label)
			}
			next[label] = append(next[label], s)
		}
		for _, s := range sets[id] {
			if s == super {
				continue
			}
			st := f.states[s]
			if !st.final.IsZero() {
				push(enc.encode(encLabel{finalMark, finalMark, st.final}), super)
			}
			for _, a := range st.arcs {
				push(enc.encode(encLabel{a.In, a.Out, a.Weight}), a.Next)
			}
		}
		sort.Ints(order)
		arcs := make([]darc, 0, len(order))
		for _, label := range order {
			target := uniqueSorted(next[label])
			arcs = append(arcs, darc{label: label, next: add(target)})
		}
		d.arcs[id] = arcs
	}
	d.labels = enc.labels
	return d
}

func uniqueSorted(s []StateID) []StateID {
	sort.Ints(s)
	out := s[:0]
	for i, v := range s {
		if i == 0 || v != s[i-1] {
			out = append(out, v)
		}
	}
	return out
}

// minimize merges equivalent states by partition refinement. Each round
// splits classes by (class, outgoing labels, target classes); the partition is
// stable once a round adds no class.
func (d *dfa) minimize() *dfa {
	n := len(d.arcs)
	class := make([]int, n)
	classes := 1
	hasFinal, hasNonFinal := false, false
	for s := 0; s < n; s++ {
		if d.final[s] {
			class[s] = 1
			hasFinal = true
		} else {
			hasNonFinal = true
		}
	}
	if hasFinal && hasNonFinal {
		classes = 2
	}
	var buf []byte
	for {
		sigs := make(map[string]int, classes)
		next := make([]int, n)
		for s := 0; s < n; s++ {
			buf = buf[:0]
			buf = binary.AppendUvarint(buf, uint64(class[s]))
			for _, a := range d.arcs[s] {
				buf = binary.AppendUvarint(buf, uint64(a.label))
				buf = binary.AppendUvarint(buf, uint64(class[a.next]))
			}
			id, ok := sigs[string(buf)]
			if !ok {
				id = len(sigs)
				sigs[string(buf)] = id
			}
			next[s] = id
		}
		class = next
		if len(sigs) == classes {
			break
		}
		classes = len(sigs)
	}

	m := &dfa{
		start:  class[d.start],
		final:  make([]bool, classes),
		arcs:   make([][]darc, classes),
		labels: d.labels,
	}
	done := make([]bool, classes)
	for s := 0; s < n; s++ {
		c := class[s]
		if done[c] {
			continue
		}
		done[c] = true
		m.final[c] = d.final[s]
		arcs := make([]darc, len(d.arcs[s]))
		for i, a := range d.arcs[s] {
			arcs[i] = darc{label: a.label, next: class[a.next]}
		}
		m.arcs[c] = arcs
	}
	return m
}

// decode turns the encoded acceptor back into a transducer, folding finalMark
// arcs into final weights.
func (d *dfa) decode() *Fst {
	b := NewBuilder()
	ids := make([]StateID, len(d.arcs))
	for s := range d.arcs {
		ids[s] = NoState
		if !d.final[s] {
			ids[s] = b.AddState()
		}
	}
	for s, arcs := range d.arcs {
		if ids[s] == NoState {
			continue
		}
		final := Zero
		for _, a := range arcs {
			l := d.labels[a.label]
			if l.in == finalMark {
				final = final.Plus(l.w)
				continue
			}
			b.AddArc(ids[s], Arc{In: l.in, Out: l.out, Weight: l.w, Next: ids[a.next]})
		}
		b.SetFinal(ids[s], final)
	}
	if ids[d.start] == NoState {
		return Empty()
	}
	b.SetStart(ids[d.start])
	return b.Build()
}

// Determinize returns an equivalent transducer in which no state has two arcs
// with the same (input, output, weight) triple. Epsilons are removed first.
func Determinize(f *Fst) *Fst {
	f = RmEpsilon(f)
	if f.start == NoState {
		return Empty()
	}
	return Connect(determinize(f).decode())
}

// Minimize returns the minimal deterministic form of f over encoded labels.
func Minimize(f *Fst) *Fst {
	f = RmEpsilon(f)
	if f.start == NoState {
		return Empty()
	}
	return Connect(determinize(f).minimize().decode())
}

// Optimize removes epsilons, determinizes and minimizes f. The relation and
// the weight of each path are unchanged; only the state count shrinks.
func Optimize(f *Fst) *Fst {
	return Minimize(Connect(f))
}
