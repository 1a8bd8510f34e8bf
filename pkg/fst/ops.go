package fst

// Union returns a transducer accepting the paths of every argument.
func Union(fsts ...*Fst) *Fst {
	b := NewBuilder()
	start := b.AddState()
	b.SetStart(start)
	for _, f := range fsts {
		if f.start == NoState {
			continue
		}
		off := b.appendFst(f)
		b.AddArc(start, Arc{In: Epsilon, Out: Epsilon, Weight: One, Next: off + f.start})
	}
	return b.Build()
}

// Concat returns the concatenation of the arguments in order. With no
// arguments it returns the transducer of the empty string.
func Concat(fsts ...*Fst) *Fst {
	if len(fsts) == 0 {
		return Cross("", "")
	}
	for _, f := range fsts {
		if f.start == NoState {
			return Empty()
		}
	}
	b := NewBuilder()
	prevFinals := []StateID(nil)
	for i, f := range fsts {
		off := b.appendFst(f)
		if i == 0 {
			b.SetStart(off + f.start)
		} else {
			for _, q := range prevFinals {
				b.AddArc(q, Arc{In: Epsilon, Out: Epsilon, Weight: b.states[q].final, Next: off + f.start})
				b.states[q].final = Zero
			}
		}
		prevFinals = prevFinals[:0]
		for s := range f.states {
			if !f.states[s].final.IsZero() {
				prevFinals = append(prevFinals, off+s)
			}
		}
	}
	return b.Build()
}

// Star returns the Kleene closure of f.
func Star(f *Fst) *Fst {
	b := NewBuilder()
	start := b.AddState()
	b.SetStart(start)
	b.SetFinal(start, One)
	if f.start == NoState {
		return b.Build()
	}
	off := b.appendFst(f)
	inner := off + f.start
	b.AddArc(start, Arc{In: Epsilon, Out: Epsilon, Weight: One, Next: inner})
	for s := range f.states {
		if w := f.states[s].final; !w.IsZero() {
			b.AddArc(off+s, Arc{In: Epsilon, Out: Epsilon, Weight: w, Next: inner})
		}
	}
	return b.Build()
}

// Plus returns one or more repetitions of f.
func Plus(f *Fst) *Fst {
	return Concat(f, Star(f))
}

// Optional returns f or the empty string.
func Optional(f *Fst) *Fst {
	return Union(f, Cross("", ""))
}

// Closure returns between min and max repetitions of f. A negative max means
// no upper bound.
func Closure(f *Fst, min, max int) *Fst {
	if min < 0 || (max >= 0 && max < min) {
		fail("Closure", "invalid bounds [%d, %d]", min, max)
	}
	parts := make([]*Fst, 0, min+1)
	for i := 0; i < min; i++ {
		parts = append(parts, f)
	}
	if max < 0 {
		parts = append(parts, Star(f))
		return Concat(parts...)
	}
	tail := Cross("", "")
	for i := 0; i < max-min; i++ {
		tail = Optional(Concat(f, tail))
	}
	parts = append(parts, tail)
	return Concat(parts...)
}

// Repeat returns exactly n repetitions of f.
func Repeat(f *Fst, n int) *Fst {
	return Closure(f, n, n)
}

// AddWeight returns f with w added to every accepting path.
func AddWeight(f *Fst, w Weight) *Fst {
	g := f.copy()
	for i := range g.states {
		g.states[i].final = g.states[i].final.Times(w)
	}
	return g
}

// ProjectType selects the side kept by Project.
type ProjectType int

const (
	// ProjectInput keeps input labels.
	ProjectInput ProjectType = iota
	// ProjectOutput keeps output labels.
	ProjectOutput
)

// Project returns the acceptor of f's input or output language.
func Project(f *Fst, side ProjectType) *Fst {
	g := f.copy()
	for i := range g.states {
		for j := range g.states[i].arcs {
			a := &g.states[i].arcs[j]
			if side == ProjectInput {
				a.Out = a.In
			} else {
				a.In = a.Out
			}
		}
	}
	return g
}

// Invert swaps input and output labels.
func Invert(f *Fst) *Fst {
	g := f.copy()
	for i := range g.states {
		for j := range g.states[i].arcs {
			a := &g.states[i].arcs[j]
			a.In, a.Out = a.Out, a.In
		}
	}
	return g
}

func (f *Fst) copy() *Fst {
	b := NewBuilder()
	b.appendFst(f)
	g := &Fst{start: f.start, states: b.states}
	return g
}

// Connect removes states that are not on a path from the start to a final
// state.
func Connect(f *Fst) *Fst {
	if f.start == NoState {
		return Empty()
	}
	n := len(f.states)
	access := make([]bool, n)
	stack := []StateID{f.start}
	access[f.start] = true
	rev := make([][]StateID, n)
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, a := range f.states[s].arcs {
			rev[a.Next] = append(rev[a.Next], s)
			if !access[a.Next] {
				access[a.Next] = true
				stack = append(stack, a.Next)
			}
		}
	}
	coaccess := make([]bool, n)
	for s := 0; s < n; s++ {
		if access[s] && !f.states[s].final.IsZero() {
			coaccess[s] = true
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range rev[s] {
			if !coaccess[p] {
				coaccess[p] = true
				stack = append(stack, p)
			}
		}
	}
	if !coaccess[f.start] {
		return Empty()
	}
	ids := make([]StateID, n)
	b := NewBuilder()
	for s := 0; s < n; s++ {
		ids[s] = NoState
		if access[s] && coaccess[s] {
			ids[s] = b.AddState()
		}
	}
	for s := 0; s < n; s++ {
		if ids[s] == NoState {
			continue
		}
		b.SetFinal(ids[s], f.states[s].final)
		for _, a := range f.states[s].arcs {
			if ids[a.Next] == NoState {
				continue
			}
			a.Next = ids[a.Next]
			b.AddArc(ids[s], a)
		}
	}
	b.SetStart(ids[f.start])
	return b.Build()
}
