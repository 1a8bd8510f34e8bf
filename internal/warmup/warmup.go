package warmup

import (
	"context"
	"io"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_text_normalization/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Sample text size for warmup
	SampleTextSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency:    runtime.NumCPU(),
		Iterations:     100,
		SampleTextSize: 1000,
		Duration:       5 * time.Second,
		ForceGC:        true,
	}
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	normalizers []ports.Normalizer
	taggers     []ports.Tagger
	streams     []ports.StreamProcessor
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// RegisterTagger adds a tagger to be warmed up
func (wm *Manager) RegisterTagger(tagger ports.Tagger) {
	wm.taggers = append(wm.taggers, tagger)
}

// RegisterStreamProcessor adds a stream processor to be warmed up
func (wm *Manager) RegisterStreamProcessor(proc ports.StreamProcessor) {
	wm.streams = append(wm.streams, proc)
}

// WarmUp runs the warmup process for all registered components. It returns
// the number of sample texts processed.
func (wm *Manager) WarmUp(ctx context.Context) int {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.normalizers)+len(wm.taggers)+len(wm.streams),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	sample := generateSampleText(wm.config.SampleTextSize)
	words := strings.Fields(sample)

	processed := wm.run(warmupCtx, "normalizers", len(wm.normalizers), wm.config.Iterations, func() {
		for _, n := range wm.normalizers {
			_ = n.Normalize(sample)
		}
	})
	processed += wm.run(warmupCtx, "taggers", len(wm.taggers), wm.config.Iterations, func() {
		for _, t := range wm.taggers {
			for _, w := range words {
				_, _ = t.Tag(w)
			}
		}
	})
	// Fewer iterations for streaming
	processed += wm.run(warmupCtx, "stream processors", len(wm.streams), wm.config.Iterations/10+1, func() {
		for _, s := range wm.streams {
			_, _ = s.ProcessStream(warmupCtx, strings.NewReader(sample), io.Discard)
		}
	})

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"processed", processed,
		"duration", time.Since(startTime),
	)
	return processed
}

// run calls work iterations times on each of Concurrency goroutines until
// ctx is done, and returns the number of completed calls.
func (wm *Manager) run(ctx context.Context, what string, components, iterations int, work func()) int {
	if components == 0 {
		return 0
	}
	wm.logger.Debug("Warming up "+what, "count", components)

	done := make([]int, wm.config.Concurrency)
	var g errgroup.Group
	for i := 0; i < wm.config.Concurrency; i++ {
		g.Go(func() error {
			for j := 0; j < iterations; j++ {
				if ctx.Err() != nil {
					return nil
				}
				work()
				done[i]++
			}
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, n := range done {
		total += n
	}
	return total
}

// generateSampleText creates sample text of roughly the specified size that
// mixes words with numerals of every shape the taggers handle.
func generateSampleText(size int) string {
	words := []string{
		"the", "invoice", "lists", "12345", "items", "and", "123,456", "units",
		"of", "which", "42", "shipped", "on", "-17", "days", "1,000,000",
		"remaining", "0007", "9876543210123", "total",
	}

	var sb strings.Builder
	for i := 0; sb.Len() < size; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		w := words[i%len(words)]
		if i >= len(words) && i%7 == 0 {
			w = strconv.Itoa(10000 + i)
		}
		sb.WriteString(w)
	}
	return sb.String()
}
