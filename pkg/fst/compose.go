package fst

// Compose returns the relational composition of a and b: a path maps x to z
// when a maps x to some y and b maps y to z, with the weights added.
//
// Epsilon moves are sequenced so that each pair of matching paths yields a
// single composed path: between two matched labels, a's output-epsilon moves
// always come before b's input-epsilon moves.
func Compose(a, b *Fst) *Fst {
	if a.start == NoState || b.start == NoState {
		return Empty()
	}
	type triple struct {
		s1, s2 StateID
		// after is set once b has moved alone since the last match.
		after bool
	}
	bld := NewBuilder()
	ids := map[triple]StateID{}
	var queue []triple
	get := func(t triple) StateID {
		if id, ok := ids[t]; ok {
			return id
		}
		id := bld.AddState()
		ids[t] = id
		queue = append(queue, t)
		return id
	}
	bld.SetStart(get(triple{a.start, b.start, false}))

	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		id := ids[t]
		s1, s2 := a.states[t.s1], b.states[t.s2]
		if w := s1.final.Times(s2.final); !w.IsZero() {
			bld.SetFinal(id, w)
		}
		for _, a1 := range s1.arcs {
			if a1.Out == Epsilon {
				if !t.after {
					bld.AddArc(id, Arc{In: a1.In, Out: Epsilon, Weight: a1.Weight, Next: get(triple{a1.Next, t.s2, false})})
				}
				continue
			}
			for _, a2 := range s2.arcs {
				if a2.In != a1.Out {
					continue
				}
				bld.AddArc(id, Arc{
					In:     a1.In,
					Out:    a2.Out,
					Weight: a1.Weight.Times(a2.Weight),
					Next:   get(triple{a1.Next, a2.Next, false}),
				})
			}
		}
		for _, a2 := range s2.arcs {
			if a2.In == Epsilon {
				bld.AddArc(id, Arc{In: Epsilon, Out: a2.Out, Weight: a2.Weight, Next: get(triple{t.s1, a2.Next, true})})
			}
		}
	}
	return Connect(bld.Build())
}
