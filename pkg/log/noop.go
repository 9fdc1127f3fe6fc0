package log

// NoopLogger drops every message. It is the logger used by app.NewController
// and rimed.New when no WithLogger option is given.
type NoopLogger struct{}

// NewNoopLogger returns a logger that writes nothing.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

// Debug drops the message.
func (NoopLogger) Debug(string, ...Field) {}

// Info drops the message.
func (NoopLogger) Info(string, ...Field) {}

// Warn drops the message.
func (NoopLogger) Warn(string, ...Field) {}

// Error drops the message.
func (NoopLogger) Error(string, ...Field) {}
