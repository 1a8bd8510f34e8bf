// Package cardinal compiles the English cardinal number grammars: the base
// transducer from digit strings to words, and the restricted variant that
// only fires on numerals likely to need normalization in running text.
package cardinal

import (
	"context"
	"strconv"

	"github.com/baditaflorin/go_text_normalization/internal/core/grammar"
	"github.com/baditaflorin/go_text_normalization/pkg/fst"
)

// Name is the semiotic class and grammar name of the base cardinal.
const Name = "cardinal"

type config struct {
	deterministic bool
	largeToDigits bool
	cache         *grammar.Cache
}

func defaultConfig() config {
	return config{deterministic: true, largeToDigits: true}
}

// Option configures a cardinal grammar.
type Option func(*config)

// WithDeterministic selects a single reading per input (true, the default)
// or weighted alternatives for audio-oriented normalization (false).
func WithDeterministic(deterministic bool) Option {
	return func(cfg *config) {
		cfg.deterministic = deterministic
	}
}

// WithLargeToDigits reads numbers of 13 or more significant digits digit by
// digit instead of with magnitude names. Enabled by default.
func WithLargeToDigits(enable bool) Option {
	return func(cfg *config) {
		cfg.largeToDigits = enable
	}
}

// WithCache loads the compiled grammar from cache, compiling it on a miss.
func WithCache(cache *grammar.Cache) Option {
	return func(cfg *config) {
		cfg.cache = cache
	}
}

func (cfg config) cacheName() string {
	return Name + "-l2d-" + strconv.FormatBool(cfg.largeToDigits)
}

// Cardinal maps an optionally signed, optionally comma-grouped digit string
// to words, e.g. "-1,234" -> "minus one thousand two hundred thirty four".
type Cardinal struct {
	grammar.Graph
	unsigned      *fst.Fst
	tagger        *fst.Fst
	largeToDigits bool
}

// New compiles the base cardinal grammar.
func New(opts ...Option) (*Cardinal, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	unsigned, err := cfg.cache.Load(context.Background(), cfg.cacheName(), cfg.deterministic, func() (*fst.Fst, error) {
		return grammar.Build(Name, func() *fst.Fst { return compileUnsigned(cfg) })
	})
	if err != nil {
		return nil, err
	}

	var tagger *fst.Fst
	signed, err := grammar.Build(Name, func() *fst.Fst {
		minus := fst.Optional(fst.Cross(grammar.MinusSign, "minus "))
		negative := fst.Optional(fst.Cross(grammar.MinusSign, `negative: "true" `))
		tagger = fst.Concat(negative, grammar.InsertField("integer", unsigned))
		return fst.RmEpsilon(fst.Concat(minus, unsigned))
	})
	if err != nil {
		return nil, err
	}

	return &Cardinal{
		Graph:         grammar.NewGraph(Name, grammar.KindClassify, cfg.deterministic, signed),
		unsigned:      unsigned,
		tagger:        tagger,
		largeToDigits: cfg.largeToDigits,
	}, nil
}

// Unsigned returns the transducer without sign handling.
func (c *Cardinal) Unsigned() *fst.Fst {
	return c.unsigned
}

// TaggerFst returns the transducer writing the tagged token body, e.g.
// `negative: "true" integer: "forty five"`.
func (c *Cardinal) TaggerFst() *fst.Fst {
	return c.tagger
}

// LargeToDigits reports whether large numbers are read digit by digit.
func (c *Cardinal) LargeToDigits() bool {
	return c.largeToDigits
}

func compileUnsigned(cfg config) *fst.Fst {
	front := fst.Optimize(fst.Compose(grouping(), stripZeros()))
	return fst.Optimize(fst.Compose(front, numberNames(cfg)))
}

// grouping accepts plain digit runs and comma-grouped numerals and deletes
// the grouping commas.
func grouping() *fst.Fst {
	group := fst.Concat(fst.Delete(grammar.GroupingMark), grammar.DigitRun(3, 3))
	return fst.Union(
		grammar.DigitRun(1, -1),
		fst.Concat(grammar.DigitRun(1, 3), fst.Plus(group)),
	)
}

// stripZeros deletes leading zeros and keeps a single "0" for all-zero input.
func stripZeros() *fst.Fst {
	zeros := fst.Star(fst.Delete("0"))
	return fst.Union(
		fst.Concat(zeros, grammar.NonZeroDigit(), grammar.DigitRun(0, -1)),
		fst.Concat(zeros, fst.Accep("0")),
	)
}

// numberNames reads a digit string without leading zeros.
func numberNames(cfg config) *fst.Fst {
	digit := fst.StringMap(digitNames)
	space := grammar.InsertSpace()
	del0 := fst.Delete("0")

	// 10-99
	tensLead := fst.Union(
		fst.StringMap(teenNames),
		fst.Concat(fst.StringMap(tensNames), fst.Union(del0, fst.Concat(space, digit))),
	)
	// 01-99
	tens := fst.Union(tensLead, fst.Concat(del0, digit))

	tail := fst.Union(fst.Delete("00"), fst.Concat(space, tens))
	if !cfg.deterministic {
		tail = fst.Union(tail, fst.AddWeight(fst.Concat(fst.Insert(" and "), tens), andWeight))
	}
	// 100-999
	hundreds := fst.Concat(digit, fst.Insert(" hundred"), tail)

	lead := fst.Optimize(fst.Union(digit, tensLead, hundreds))
	group := fst.Optimize(fst.Union(hundreds, fst.Concat(del0, tens)))

	slots := make([]*fst.Fst, len(magnitudes))
	for j := range slots {
		named := fst.Concat(space, group)
		if j > 0 {
			named = fst.Concat(named, fst.Insert(" "+magnitudes[j-1]))
		}
		slots[j] = fst.Union(fst.Delete("000"), named)
	}

	limit := maxNamedDigits
	if cfg.largeToDigits {
		limit = largeNamedDigits
	}
	branches := []*fst.Fst{
		fst.Cross(zeroName[0], zeroName[1]),
		spellLongerThan(limit),
	}
	for k := 0; 3*k < limit; k++ {
		parts := []*fst.Fst{lead}
		if k > 0 {
			parts = append(parts, fst.Insert(" "+magnitudes[k-1]))
		}
		for j := k - 1; j >= 0; j-- {
			parts = append(parts, slots[j])
		}
		branches = append(branches, fst.Concat(parts...))
	}
	if !cfg.deterministic {
		branches = append(branches, fst.AddWeight(spellLongerThan(alternativeDigitsFrom-1), digitsWeight))
	}
	return fst.Optimize(fst.Union(branches...))
}

// spellLongerThan reads numbers of more than n digits one digit at a time.
func spellLongerThan(n int) *fst.Fst {
	one := fst.Union(fst.StringMap(digitNames), fst.Cross(zeroName[0], zeroName[1]))
	spelled := fst.Concat(one, fst.Star(fst.Concat(grammar.InsertSpace(), one)))
	long := fst.Concat(grammar.NonZeroDigit(), grammar.DigitRun(n, -1))
	return fst.Compose(long, spelled)
}
