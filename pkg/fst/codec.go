package fst

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

const codecVersion = 1

type wireArc struct {
	In     int32   `msgpack:"i"`
	Out    int32   `msgpack:"o"`
	Weight float64 `msgpack:"w"`
	Next   int     `msgpack:"n"`
}

type wireFst struct {
	Version int         `msgpack:"v"`
	Start   int         `msgpack:"s"`
	Finals  []float64   `msgpack:"f"`
	Arcs    [][]wireArc `msgpack:"a"`
}

// MarshalBinary encodes f with msgpack.
func (f *Fst) MarshalBinary() ([]byte, error) {
	w := wireFst{
		Version: codecVersion,
		Start:   f.start,
		Finals:  make([]float64, len(f.states)),
		Arcs:    make([][]wireArc, len(f.states)),
	}
	for s, st := range f.states {
		w.Finals[s] = float64(st.final)
		arcs := make([]wireArc, len(st.arcs))
		for i, a := range st.arcs {
			arcs[i] = wireArc{In: a.In, Out: a.Out, Weight: float64(a.Weight), Next: a.Next}
		}
		w.Arcs[s] = arcs
	}
	return msgpack.Marshal(&w)
}

// Decode rebuilds a transducer produced by MarshalBinary.
func Decode(data []byte) (*Fst, error) {
	var w wireFst
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if w.Version != codecVersion {
		return nil, fmt.Errorf("%w: version %d", ErrCorrupt, w.Version)
	}
	if len(w.Finals) != len(w.Arcs) {
		return nil, fmt.Errorf("%w: %d finals for %d states", ErrCorrupt, len(w.Finals), len(w.Arcs))
	}
	n := len(w.Arcs)
	if n == 0 {
		if w.Start != NoState {
			return nil, fmt.Errorf("%w: start %d without states", ErrCorrupt, w.Start)
		}
		return Empty(), nil
	}
	if w.Start < 0 || w.Start >= n {
		return nil, fmt.Errorf("%w: start %d out of range", ErrCorrupt, w.Start)
	}
	f := &Fst{start: w.Start, states: make([]state, n)}
	for s := 0; s < n; s++ {
		arcs := make([]Arc, len(w.Arcs[s]))
		for i, a := range w.Arcs[s] {
			if a.Next < 0 || a.Next >= n {
				return nil, fmt.Errorf("%w: state %d arc to %d", ErrCorrupt, s, a.Next)
			}
			arcs[i] = Arc{In: a.In, Out: a.Out, Weight: Weight(a.Weight), Next: a.Next}
		}
		f.states[s] = state{final: Weight(w.Finals[s]), arcs: arcs}
	}
	return f, nil
}
