package cardinal

import (
	"context"

	"github.com/baditaflorin/go_text_normalization/internal/core/grammar"
	"github.com/baditaflorin/go_text_normalization/pkg/fst"
)

// RestrictedName is the grammar name of the restricted cardinal.
const RestrictedName = "cardinal_restricted"

// DigitRunFilter accepts the numerals the restricted cardinal reads: runs of
// five or more digits, and a leading group of two or three digits followed
// by one or more comma-separated groups of three.
func DigitRunFilter() *fst.Fst {
	group := fst.Concat(fst.Accep(grammar.GroupingMark), grammar.DigitRun(3, 3))
	return fst.Union(
		grammar.DigitRun(5, -1),
		fst.Concat(grammar.DigitRun(2, 3), fst.Plus(group)),
	)
}

// Restricted is the cardinal grammar limited to DigitRunFilter inputs. Short
// numbers such as "123", signed numbers and irregular grouping are left to
// other grammars. Large numbers keep their magnitude names.
type Restricted struct {
	grammar.Graph
	tagger *fst.Fst
}

// NewRestricted compiles the restricted cardinal. Only WithCache is honored
// from opts; the base grammar is always built with large numbers named and
// shares the cache.
func NewRestricted(deterministic bool, opts ...Option) (*Restricted, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	f, err := cfg.cache.Load(context.Background(), RestrictedName, deterministic, func() (*fst.Fst, error) {
		return compileRestricted(deterministic, cfg.cache)
	})
	if err != nil {
		return nil, err
	}

	return &Restricted{
		Graph:  grammar.NewGraph(RestrictedName, grammar.KindClassify, deterministic, f),
		tagger: grammar.InsertField("integer", f),
	}, nil
}

func compileRestricted(deterministic bool, cache *grammar.Cache) (*fst.Fst, error) {
	base, err := New(WithDeterministic(deterministic), WithLargeToDigits(false), WithCache(cache))
	if err != nil {
		return nil, err
	}
	return grammar.Build(RestrictedName, func() *fst.Fst {
		filter := fst.Optimize(DigitRunFilter())
		return fst.Optimize(fst.Compose(filter, base.Fst()))
	})
}

// TaggerFst returns the transducer writing the tagged token body, e.g.
// `integer: "twelve thousand three hundred forty five"`.
func (r *Restricted) TaggerFst() *fst.Fst {
	return r.tagger
}
