// Package stream normalizes text streams line by line.
package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_text_normalization/internal/ports"
)

const (
	// DefaultBatchSize is the number of lines normalized concurrently before
	// they are written out.
	DefaultBatchSize = 256

	// MaxScannerBufferSize defines the maximum buffer size for the scanner
	// This helps prevent "token too long" errors
	MaxScannerBufferSize = 1024 * 1024 // 1MB
)

// Config holds configuration for the line processor.
type Config struct {
	BatchSize int
	// Workers bounds the goroutines per batch; 0 means runtime.NumCPU().
	Workers int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{BatchSize: DefaultBatchSize}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.BatchSize <= 0 {
		return errors.New("batchSize must be greater than 0")
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	return nil
}

// LineProcessor implements ports.StreamProcessor. Lines of a batch are
// normalized in parallel and written in input order.
type LineProcessor struct {
	logger     ports.Logger
	normalizer ports.Normalizer
	config     Config
}

// NewLineProcessor creates a new line processor
func NewLineProcessor(logger ports.Logger, normalizer ports.Normalizer, config Config) (*LineProcessor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Workers == 0 {
		config.Workers = runtime.NumCPU()
	}
	return &LineProcessor{logger: logger, normalizer: normalizer, config: config}, nil
}

// ProcessStream implements ports.StreamProcessor.
func (p *LineProcessor) ProcessStream(ctx context.Context, reader io.Reader, writer io.Writer) (ports.StreamStats, error) {
	start := time.Now()
	var stats ports.StreamStats

	if reader == nil || writer == nil {
		p.logger.Error("Nil reader or writer provided")
		return stats, io.ErrUnexpectedEOF
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxScannerBufferSize)
	out := bufio.NewWriter(writer)

	batch := make([]string, 0, p.config.BatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		lines, err := p.normalizeBatch(ctx, batch)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := out.WriteString(line); err != nil {
				return err
			}
			if err := out.WriteByte('\n'); err != nil {
				return err
			}
		}
		stats.Lines += len(lines)
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		stats.BytesProcessed += int64(len(line)) + 1
		batch = append(batch, line)
		if len(batch) >= p.config.BatchSize {
			if err := flush(); err != nil {
				return p.fail(stats, start, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return p.fail(stats, start, fmt.Errorf("read stream: %w", err))
	}
	if err := flush(); err != nil {
		return p.fail(stats, start, err)
	}
	if err := out.Flush(); err != nil {
		return p.fail(stats, start, err)
	}

	stats.ProcessingTime = time.Since(start)
	p.logger.Debug("Stream processing completed",
		"lines", stats.Lines,
		"bytes_processed", stats.BytesProcessed,
		"duration", stats.ProcessingTime,
	)
	return stats, nil
}

func (p *LineProcessor) normalizeBatch(ctx context.Context, batch []string) ([]string, error) {
	results := make([]string, len(batch))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.config.Workers)
	for i, line := range batch {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.normalizer.Normalize(line)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *LineProcessor) fail(stats ports.StreamStats, start time.Time, err error) (ports.StreamStats, error) {
	stats.ProcessingTime = time.Since(start)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		p.logger.Warn("Processing cancelled by context", "error", err, "lines", stats.Lines)
	} else {
		p.logger.Error("Stream processing error", "error", err, "lines", stats.Lines)
	}
	return stats, err
}
