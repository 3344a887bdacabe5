package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Field represents a structured logging key-value pair.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64 field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Dur creates a duration field.
func Dur(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err creates an error field with the conventional "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is the minimal structured logging interface used across the
// application. It decouples components from the concrete logging backend.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
}

// ZerologAdapter implements Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog.Logger.
func NewZerologAdapter(l zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: l}
}

// NewLogger creates a Logger writing JSON lines to w, tagged with a component
// field. This is the standard constructor for package-level loggers.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	l := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &ZerologAdapter{logger: l}
}

// NewDefaultLogger creates a Logger writing to stderr with timestamps.
func NewDefaultLogger() *ZerologAdapter {
	return NewLogger(os.Stderr, "expertpanel")
}

func (z *ZerologAdapter) withFields(e *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case uint64:
			e = e.Uint64(f.Key, v)
		case float64:
			e = e.Float64(f.Key, v)
		case time.Duration:
			e = e.Dur(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	return e
}

// Debug logs a message at debug level.
func (z *ZerologAdapter) Debug(msg string, fields ...Field) {
	z.withFields(z.logger.Debug(), fields).Msg(msg)
}

// Info logs a message at info level.
func (z *ZerologAdapter) Info(msg string, fields ...Field) {
	z.withFields(z.logger.Info(), fields).Msg(msg)
}

// Warn logs a message at warn level.
func (z *ZerologAdapter) Warn(msg string, fields ...Field) {
	z.withFields(z.logger.Warn(), fields).Msg(msg)
}

// Error logs a message at error level with an attached error value.
func (z *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	z.withFields(z.logger.Error().Err(err), fields).Msg(msg)
}

// NopLogger is a Logger that discards everything. Useful in tests.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field)        {}
func (NopLogger) Info(string, ...Field)         {}
func (NopLogger) Warn(string, ...Field)         {}
func (NopLogger) Error(string, error, ...Field) {}
