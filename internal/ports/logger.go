package ports

// Logger is the structured logger used across the library. Key/value pairs
// follow the message, e.g. Info("compiled grammar", "states", 42).
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Close() error
}
