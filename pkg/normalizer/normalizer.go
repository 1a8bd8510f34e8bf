// Package normalizer converts written text to spoken form.
//
//	n, err := normalizer.New()
//	res, err := n.Normalize(ctx, "I have 12345 apples")
//	// res.Normalized == "I have twelve thousand three hundred forty five apples"
package normalizer

import (
	"context"
	"fmt"
	"io"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/baditaflorin/go_text_normalization/internal/adapters/kv"
	"github.com/baditaflorin/go_text_normalization/internal/adapters/logger"
	prep "github.com/baditaflorin/go_text_normalization/internal/adapters/normalizer"
	"github.com/baditaflorin/go_text_normalization/internal/adapters/stream"
	"github.com/baditaflorin/go_text_normalization/internal/core/cardinal"
	"github.com/baditaflorin/go_text_normalization/internal/core/domain"
	"github.com/baditaflorin/go_text_normalization/internal/core/grammar"
	"github.com/baditaflorin/go_text_normalization/internal/core/normalize"
	"github.com/baditaflorin/go_text_normalization/internal/core/tagger"
	"github.com/baditaflorin/go_text_normalization/internal/core/verbalizer"
	"github.com/baditaflorin/go_text_normalization/internal/metrics"
	"github.com/baditaflorin/go_text_normalization/internal/ports"
	"github.com/baditaflorin/go_text_normalization/internal/warmup"
	"github.com/baditaflorin/l"
)

// Tagger set names accepted by WithTaggerSet.
const (
	TaggerSetSmall = tagger.SetSmall
	TaggerSetFull  = tagger.SetFull
)

// Option defines a functional option for configuring TextNormalizer.
type Option func(*normalizerConfig)

type normalizerConfig struct {
	TaggerSet      string
	Deterministic  bool
	Preprocessor   string
	MaxTokenLength int
	CacheSize      int
	CacheDir       string
	BatchSize      int
	Workers        int
	WarmUp         bool
	Logger         ports.Logger
	Metrics        *metrics.Metrics
}

// WithTaggerSet selects TaggerSetSmall (default) or TaggerSetFull.
func WithTaggerSet(name string) Option {
	return func(cfg *normalizerConfig) {
		cfg.TaggerSet = name
	}
}

// WithDeterministic selects one reading per number (default) or allows the
// taggers to pick from weighted alternatives.
func WithDeterministic(deterministic bool) Option {
	return func(cfg *normalizerConfig) {
		cfg.Deterministic = deterministic
	}
}

// WithPreprocessor selects the text preprocessor: "default", "optimized" or
// "none".
func WithPreprocessor(name string) Option {
	return func(cfg *normalizerConfig) {
		cfg.Preprocessor = name
	}
}

// WithMaxTokenLength sets the longest word handed to the taggers.
func WithMaxTokenLength(n int) Option {
	return func(cfg *normalizerConfig) {
		cfg.MaxTokenLength = n
	}
}

// WithCacheSize sets the number of sentence results kept in an LRU cache.
// 0 disables the cache.
func WithCacheSize(size int) Option {
	return func(cfg *normalizerConfig) {
		cfg.CacheSize = size
	}
}

// WithCacheDir keeps compiled grammars in a badger database under dir.
func WithCacheDir(dir string) Option {
	return func(cfg *normalizerConfig) {
		cfg.CacheDir = dir
	}
}

// WithStream tunes NormalizeStream. workers 0 means one per CPU.
func WithStream(batchSize, workers int) Option {
	return func(cfg *normalizerConfig) {
		cfg.BatchSize = batchSize
		cfg.Workers = workers
	}
}

// WithWarmUp runs sample text through the grammars before New returns.
func WithWarmUp(enable bool) Option {
	return func(cfg *normalizerConfig) {
		cfg.WarmUp = enable
	}
}

// WithLogger sets a custom logger.
func WithLogger(log l.Logger) Option {
	return func(cfg *normalizerConfig) {
		cfg.Logger = logger.FromExisting(log)
	}
}

// WithMetrics records token and cache metrics on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(cfg *normalizerConfig) {
		cfg.Metrics = m
	}
}

// TextNormalizer rewrites written text into spoken form. It is safe for
// concurrent use.
type TextNormalizer struct {
	config  normalizerConfig
	logger  ports.Logger
	core    *normalize.Normalizer
	stream  *stream.LineProcessor
	tagger  *tagger.Set
	results *lru.Cache[string, domain.Result]
	metrics *metrics.Metrics
}

// New compiles the grammars and creates a TextNormalizer.
func New(opts ...Option) (*TextNormalizer, error) {
	defaultCore := normalize.DefaultConfig()
	defaultStream := stream.DefaultConfig()
	cfg := normalizerConfig{
		TaggerSet:      TaggerSetSmall,
		Deterministic:  true,
		Preprocessor:   "default",
		MaxTokenLength: defaultCore.MaxTokenLength,
		CacheSize:      4096,
		BatchSize:      defaultStream.BatchSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}

	prepType, ok := prep.ParseNormalizerType(cfg.Preprocessor)
	if !ok {
		return nil, fmt.Errorf("unknown preprocessor %q", cfg.Preprocessor)
	}
	preprocessor := prep.NewNormalizerFactory().CreateNormalizer(prepType)

	start := time.Now()
	set, err := buildTaggerSet(cfg)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Info("Loaded grammars",
		"tagger_set", set.String(),
		"deterministic", cfg.Deterministic,
		"duration", time.Since(start),
	)

	verb, err := verbalizer.New()
	if err != nil {
		return nil, err
	}
	core, err := normalize.New(normalize.Config{MaxTokenLength: cfg.MaxTokenLength}, cfg.Logger, preprocessor, set, verb)
	if err != nil {
		return nil, err
	}

	n := &TextNormalizer{
		config:  cfg,
		logger:  cfg.Logger,
		core:    core,
		tagger:  set,
		metrics: cfg.Metrics,
	}
	if cfg.CacheSize > 0 {
		n.results, err = lru.New[string, domain.Result](cfg.CacheSize)
		if err != nil {
			return nil, err
		}
	}
	// The stream goes through n so cached results and metrics apply per line.
	n.stream, err = stream.NewLineProcessor(cfg.Logger, plain{n}, stream.Config{BatchSize: cfg.BatchSize, Workers: cfg.Workers})
	if err != nil {
		return nil, err
	}

	if cfg.WarmUp {
		wcfg := warmup.DefaultWarmupConfig()
		wcfg.ForceGC = false
		m := warmup.NewManager(cfg.Logger, wcfg)
		m.RegisterTagger(set)
		m.RegisterNormalizer(core)
		// Warm-up text goes around the result cache and metrics.
		if proc, err := stream.NewLineProcessor(cfg.Logger, core, stream.Config{BatchSize: cfg.BatchSize, Workers: cfg.Workers}); err == nil {
			m.RegisterStreamProcessor(proc)
		}
		m.WarmUp(context.Background())
	}
	return n, nil
}

func buildTaggerSet(cfg normalizerConfig) (*tagger.Set, error) {
	if cfg.CacheDir == "" {
		return tagger.NewSet(cfg.TaggerSet, cfg.Deterministic)
	}
	store, err := kv.NewBadger(kv.BadgerOptions{Dir: cfg.CacheDir, Logger: cfg.Logger})
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return tagger.NewSet(cfg.TaggerSet, cfg.Deterministic, cardinal.WithCache(grammar.NewCache(store, cfg.Logger)))
}

// Normalize rewrites text and reports the tokens found. It returns ctx.Err()
// when cancelled mid-sentence. Results may be shared with the cache and must
// not be modified.
func (n *TextNormalizer) Normalize(ctx context.Context, text string) (domain.Result, error) {
	if n.results != nil {
		if res, ok := n.results.Get(text); ok {
			n.observeCache(true)
			return res, nil
		}
		n.observeCache(false)
	}
	res, err := n.core.NormalizeContext(ctx, text)
	if err != nil {
		return res, err
	}
	if n.results != nil {
		n.results.Add(text, res)
	}
	if n.metrics != nil {
		n.metrics.AddTokens(res.Counts)
	}
	return res, nil
}

// NormalizeString is Normalize without context or token details. It makes
// TextNormalizer usable wherever a plain string normalizer is expected.
func (n *TextNormalizer) NormalizeString(text string) string {
	res, err := n.Normalize(context.Background(), text)
	if err != nil {
		return text
	}
	return res.Normalized
}

// NormalizeStream normalizes reader line by line into writer, keeping line
// order.
func (n *TextNormalizer) NormalizeStream(ctx context.Context, reader io.Reader, writer io.Writer) (ports.StreamStats, error) {
	return n.stream.ProcessStream(ctx, reader, writer)
}

// TaggerSet returns the name of the active tagger set.
func (n *TextNormalizer) TaggerSet() string {
	return n.tagger.Name()
}

// Close flushes and releases the logger, including one passed with
// WithLogger.
func (n *TextNormalizer) Close() error {
	return n.logger.Close()
}

func (n *TextNormalizer) observeCache(hit bool) {
	if n.metrics != nil {
		n.metrics.ObserveCache(hit)
	}
}

// plain adapts TextNormalizer to ports.Normalizer for the line processor.
type plain struct{ n *TextNormalizer }

func (p plain) Normalize(text string) string { return p.n.NormalizeString(text) }
