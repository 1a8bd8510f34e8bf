package ports

import (
	"context"
	"io"
	"time"
)

// StreamProcessor normalizes a text stream line by line.
type StreamProcessor interface {
	// ProcessStream reads lines from reader, normalizes each one and writes
	// them to writer in input order.
	ProcessStream(ctx context.Context, reader io.Reader, writer io.Writer) (StreamStats, error)
}

// StreamStats summarizes one ProcessStream call.
type StreamStats struct {
	Lines          int
	BytesProcessed int64
	ProcessingTime time.Duration
}
