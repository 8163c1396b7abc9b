// Package logger provides structured logging for the Servify client core.
// It wraps logrus with a small fielded API so components can accept a
// *logger.Logger without depending on the backend directly.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is a leveled, fielded logger bound to a component name.
type Logger struct {
	entry *logrus.Entry
}

// Config configures a Logger.
type Config struct {
	// Component is recorded on every entry (e.g. "gateway", "cli").
	Component string
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string
	// Output defaults to stderr.
	Output io.Writer
	// JSON switches from the text formatter to JSON output.
	JSON bool
}

// New creates a logger for the given component with default settings.
func New(component string) *Logger {
	return NewWithConfig(Config{Component: component})
}

// NewWithConfig creates a logger from an explicit configuration.
func NewWithConfig(cfg Config) *Logger {
	l := logrus.New()

	if cfg.Output != nil {
		l.SetOutput(cfg.Output)
	} else {
		l.SetOutput(os.Stderr)
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if cfg.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	entry := logrus.NewEntry(l)
	if cfg.Component != "" {
		entry = entry.WithField("component", cfg.Component)
	}
	return &Logger{entry: entry}
}

// Discard returns a logger that drops everything. Components use it as the
// default when no logger is injected.
func Discard() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{entry: logrus.NewEntry(l)}
}

// WithField returns a logger with an additional field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// WithFields returns a logger with additional fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithFields(fields)}
}

// WithError returns a logger with the error attached.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{entry: l.entry.WithError(err)}
}

// Debug logs at debug level.
func (l *Logger) Debug(args ...interface{}) { l.entry.Debug(args...) }

// Debugf logs a formatted message at debug level.
func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }

// Info logs at info level.
func (l *Logger) Info(args ...interface{}) { l.entry.Info(args...) }

// Infof logs a formatted message at info level.
func (l *Logger) Infof(format string, args ...interface{}) { l.entry.Infof(format, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(args ...interface{}) { l.entry.Warn(args...) }

// Warnf logs a formatted message at warn level.
func (l *Logger) Warnf(format string, args ...interface{}) { l.entry.Warnf(format, args...) }

// Error logs at error level.
func (l *Logger) Error(args ...interface{}) { l.entry.Error(args...) }

// Errorf logs a formatted message at error level.
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
