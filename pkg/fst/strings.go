package fst

import "sort"

// Accep returns the acceptor for exactly s.
func Accep(s string) *Fst {
	return Cross(s, s)
}

// Cross returns the transducer mapping in to out with weight One. The shorter
// side is padded with epsilons at the end.
func Cross(in, out string) *Fst {
	ri, ro := []rune(in), []rune(out)
	n := len(ri)
	if len(ro) > n {
		n = len(ro)
	}
	b := NewBuilder()
	prev := b.AddState()
	b.SetStart(prev)
	for i := 0; i < n; i++ {
		a := Arc{In: Epsilon, Out: Epsilon, Weight: One}
		if i < len(ri) {
			a.In = ri[i]
		}
		if i < len(ro) {
			a.Out = ro[i]
		}
		next := b.AddState()
		a.Next = next
		b.AddArc(prev, a)
		prev = next
	}
	b.SetFinal(prev, One)
	return b.Build()
}

// Insert returns the transducer reading nothing and writing s.
func Insert(s string) *Fst {
	return Cross("", s)
}

// Delete returns the transducer reading s and writing nothing.
func Delete(s string) *Fst {
	return Cross(s, "")
}

// AnyOf returns the acceptor of any single rune from chars.
func AnyOf(chars string) *Fst {
	seen := map[rune]bool{}
	var runes []rune
	for _, r := range chars {
		if r == Epsilon || seen[r] {
			continue
		}
		seen[r] = true
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	b := NewBuilder()
	s, t := b.AddState(), b.AddState()
	b.SetStart(s)
	b.SetFinal(t, One)
	for _, r := range runes {
		b.AddArc(s, Arc{In: r, Out: r, Weight: One, Next: t})
	}
	return b.Build()
}

// StringMap returns the union of Cross(p[0], p[1]) over pairs.
func StringMap(pairs [][2]string) *Fst {
	fsts := make([]*Fst, len(pairs))
	for i, p := range pairs {
		fsts[i] = Cross(p[0], p[1])
	}
	return Union(fsts...)
}
