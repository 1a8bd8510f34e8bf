package logger

import (
	"os"

	"github.com/baditaflorin/go_text_normalization/internal/ports"
	"github.com/baditaflorin/l"
)

// StdLogger adapts the l.Logger to the ports.Logger interface.
type StdLogger struct {
	logger l.Logger
}

// NewStdLogger creates a logger writing text records to stderr. Stdout is
// left to the normalized output of streams and CLIs.
func NewStdLogger() (ports.Logger, error) {
	return NewCustomStdLogger(l.Config{
		Output:      os.Stderr,
		JsonFormat:  false,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,      // 1MB buffer
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
}

// NewCustomStdLogger creates a new standard logger with custom configuration.
func NewCustomStdLogger(config l.Config) (ports.Logger, error) {
	logger, err := l.NewStandardFactory().CreateLogger(config)
	if err != nil {
		return nil, err
	}
	return &StdLogger{logger: logger}, nil
}

// FromExisting creates a new StdLogger from an existing l.Logger. Closing
// the result closes logger.
func FromExisting(logger l.Logger) ports.Logger {
	return &StdLogger{logger: logger}
}

func (s *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

func (s *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

func (s *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

func (s *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

// Close flushes and closes the underlying logger.
func (s *StdLogger) Close() error {
	return s.logger.Close()
}

// With returns a logger that prepends keysAndValues to every record, e.g.
// With(log, "request_id", id). The result does not own log: its Close is a
// no-op.
func With(log ports.Logger, keysAndValues ...interface{}) ports.Logger {
	if f, ok := log.(*fields); ok {
		kv := append(f.kv[:len(f.kv):len(f.kv)], keysAndValues...)
		return &fields{inner: f.inner, kv: kv}
	}
	return &fields{inner: log, kv: keysAndValues}
}

type fields struct {
	inner ports.Logger
	kv    []interface{}
}

func (f *fields) merge(keysAndValues []interface{}) []interface{} {
	out := make([]interface{}, 0, len(f.kv)+len(keysAndValues))
	out = append(out, f.kv...)
	return append(out, keysAndValues...)
}

func (f *fields) Debug(msg string, keysAndValues ...interface{}) {
	f.inner.Debug(msg, f.merge(keysAndValues)...)
}

func (f *fields) Info(msg string, keysAndValues ...interface{}) {
	f.inner.Info(msg, f.merge(keysAndValues)...)
}

func (f *fields) Warn(msg string, keysAndValues ...interface{}) {
	f.inner.Warn(msg, f.merge(keysAndValues)...)
}

func (f *fields) Error(msg string, keysAndValues ...interface{}) {
	f.inner.Error(msg, f.merge(keysAndValues)...)
}

func (f *fields) Close() error { return nil }

// Nop returns a logger that discards everything.
func Nop() ports.Logger { return nop{} }

type nop struct{}

func (nop) Debug(string, ...interface{}) {}
func (nop) Info(string, ...interface{})  {}
func (nop) Warn(string, ...interface{})  {}
func (nop) Error(string, ...interface{}) {}
func (nop) Close() error                 { return nil }
