package fst

type arcKey struct {
	in, out Label
	next    StateID
}

// RmEpsilon removes arcs labeled epsilon on both sides. Parallel arcs with
// the same labels and destination are merged keeping the lower weight.
func RmEpsilon(f *Fst) *Fst {
	if f.start == NoState {
		return Empty()
	}
	if !f.hasEpsilons() {
		return f
	}
	n := len(f.states)
	dist := make([]Weight, n)
	for i := range dist {
		dist[i] = Zero
	}
	b := NewBuilder()
	for i := 0; i < n; i++ {
		b.AddState()
	}
	b.SetStart(f.start)
	limit := n * (f.NumArcs() + 1)
	for s := 0; s < n; s++ {
		closure := f.epsilonClosure(s, dist, limit)
		final := Zero
		merged := map[arcKey]int{}
		var arcs []Arc
		for _, p := range closure {
			d := dist[p]
			final = final.Plus(d.Times(f.states[p].final))
			for _, a := range f.states[p].arcs {
				if a.In == Epsilon && a.Out == Epsilon {
					continue
				}
				w := d.Times(a.Weight)
				k := arcKey{a.In, a.Out, a.Next}
				if i, ok := merged[k]; ok {
					arcs[i].Weight = arcs[i].Weight.Plus(w)
					continue
				}
				merged[k] = len(arcs)
				arcs = append(arcs, Arc{In: a.In, Out: a.Out, Weight: w, Next: a.Next})
			}
		}
		for _, p := range closure {
			dist[p] = Zero
		}
		b.SetFinal(s, final)
		for _, a := range arcs {
			b.AddArc(s, a)
		}
	}
	return Connect(b.Build())
}

func (f *Fst) hasEpsilons() bool {
	for _, s := range f.states {
		for _, a := range s.arcs {
			if a.In == Epsilon && a.Out == Epsilon {
				return true
			}
		}
	}
	return false
}

// epsilonClosure fills dist with the shortest epsilon distance from s to every
// state of its closure and returns those states. dist must be Zero on entry
// for every state. More than limit relaxations means a negative cycle.
func (f *Fst) epsilonClosure(s StateID, dist []Weight, limit int) []StateID {
	dist[s] = One
	closure := []StateID{s}
	queue := []StateID{s}
	relaxed := 0
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, a := range f.states[p].arcs {
			if a.In != Epsilon || a.Out != Epsilon {
				continue
			}
			d := dist[p].Times(a.Weight)
			if d >= dist[a.Next] {
				continue
			}
			if dist[a.Next].IsZero() {
				closure = append(closure, a.Next)
			}
			dist[a.Next] = d
			queue = append(queue, a.Next)
			relaxed++
			if relaxed > limit {
				fail("RmEpsilon", "negative-weight epsilon cycle through state %d", a.Next)
			}
		}
	}
	return closure
}
