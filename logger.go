// logger.go
// Package textnormalization provides shared utilities for the go_text_normalization package.
package textnormalization

import (
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/l"
)

// Environment variables read by the default logger.
const (
	envLogFile   = "TNORM_LOG_FILE"
	envLogFormat = "TNORM_LOG_FORMAT"
)

// createDefaultLogger creates the logger of the one-shot helpers. Records go
// to stderr, or to the file named by TNORM_LOG_FILE, so stdout stays free for
// normalized text. TNORM_LOG_FORMAT=json switches to JSON records.
func createDefaultLogger() (l.Logger, error) {
	var output io.Writer = os.Stderr
	if path := os.Getenv(envLogFile); path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  os.Getenv(envLogFormat) == "json",
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,      // 1MB buffer
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
}
