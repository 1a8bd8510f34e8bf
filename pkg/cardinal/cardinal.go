// Package cardinal exposes the English cardinal number grammars.
//
//	r, err := cardinal.NewRestricted(true)
//	words, ok := r.Normalize("12,345") // "twelve thousand three hundred forty five", true
package cardinal

import (
	"github.com/baditaflorin/go_text_normalization/internal/adapters/kv"
	"github.com/baditaflorin/go_text_normalization/internal/adapters/logger"
	core "github.com/baditaflorin/go_text_normalization/internal/core/cardinal"
	"github.com/baditaflorin/go_text_normalization/internal/core/grammar"
	"github.com/baditaflorin/go_text_normalization/internal/ports"
	"github.com/baditaflorin/go_text_normalization/pkg/fst"
	"github.com/baditaflorin/l"
)

// Option defines a functional option for the cardinal grammars.
type Option func(*config)

type config struct {
	deterministic bool
	largeToDigits bool
	cacheDir      string
	logger        ports.Logger
}

// WithDeterministic selects one reading per input (the default) or weighted
// alternatives. NewRestricted takes this as its argument instead.
func WithDeterministic(deterministic bool) Option {
	return func(cfg *config) {
		cfg.deterministic = deterministic
	}
}

// WithLargeToDigits reads numbers of 13 or more digits digit by digit.
// Enabled by default for New; ignored by NewRestricted.
func WithLargeToDigits(enable bool) Option {
	return func(cfg *config) {
		cfg.largeToDigits = enable
	}
}

// WithCacheDir keeps compiled grammars in a badger database under dir, so
// later constructions skip compilation.
func WithCacheDir(dir string) Option {
	return func(cfg *config) {
		cfg.cacheDir = dir
	}
}

// WithLogger sets a custom logger.
func WithLogger(log l.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger.FromExisting(log)
	}
}

func newConfig(opts []Option) config {
	cfg := config{deterministic: true, largeToDigits: true, logger: logger.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// openCache returns the grammar cache and a func releasing it. Without a
// cache dir both are no-ops.
func (cfg config) openCache() (*grammar.Cache, func() error, error) {
	if cfg.cacheDir == "" {
		return nil, func() error { return nil }, nil
	}
	store, err := kv.NewBadger(kv.BadgerOptions{Dir: cfg.cacheDir, Logger: cfg.logger})
	if err != nil {
		return nil, nil, err
	}
	return grammar.NewCache(store, cfg.logger), store.Close, nil
}

// Grammar is a compiled cardinal transducer.
type Grammar struct {
	graph grammar.Transducer
}

// Fst returns the compiled transducer.
func (g *Grammar) Fst() *fst.Fst {
	return g.graph.Fst()
}

// Name returns the grammar name.
func (g *Grammar) Name() string {
	return g.graph.Name()
}

// Deterministic reports whether the grammar yields at most one reading.
func (g *Grammar) Deterministic() bool {
	return g.graph.Deterministic()
}

// Normalize returns the best spoken form of input, or false when the grammar
// does not apply.
func (g *Grammar) Normalize(input string) (string, bool) {
	return fst.ShortestPath(g.graph.Fst(), input)
}

// Alternatives returns up to n distinct readings of input, best first.
func (g *Grammar) Alternatives(input string, n int) []fst.Path {
	return fst.Apply(g.graph.Fst(), input, n)
}

// New compiles the base cardinal grammar, which reads every optionally signed
// digit string.
func New(opts ...Option) (*Grammar, error) {
	cfg := newConfig(opts)
	cache, closeCache, err := cfg.openCache()
	if err != nil {
		return nil, err
	}
	defer closeCache()

	c, err := core.New(
		core.WithDeterministic(cfg.deterministic),
		core.WithLargeToDigits(cfg.largeToDigits),
		core.WithCache(cache),
	)
	if err != nil {
		return nil, err
	}
	return &Grammar{graph: c}, nil
}

// NewRestricted compiles the restricted cardinal grammar, which only reads
// numbers of five or more digits and comma-grouped numbers with a leading
// group of two or three digits.
func NewRestricted(deterministic bool, opts ...Option) (*Grammar, error) {
	cfg := newConfig(opts)
	cache, closeCache, err := cfg.openCache()
	if err != nil {
		return nil, err
	}
	defer closeCache()

	r, err := core.NewRestricted(deterministic, core.WithCache(cache))
	if err != nil {
		return nil, err
	}
	return &Grammar{graph: r}, nil
}
