// Package telemetry writes the structured event log.
package telemetry

import (
	"io"
	"os"
	"path/filepath"

	clog "github.com/charmbracelet/log"
)

// JSONLogger emits one JSON object per event. A nil logger drops everything.
type JSONLogger struct {
	w      io.WriteCloser
	logger *clog.Logger
}

// NewJSONLogger appends to path, or discards when path is empty.
func NewJSONLogger(path string, debug bool) (*JSONLogger, error) {
	var w io.WriteCloser = nopCloser{Writer: io.Discard}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		w = f
	}
	return newJSONLogger(w, debug), nil
}

func newJSONLogger(w io.WriteCloser, debug bool) *JSONLogger {
	level := clog.InfoLevel
	if debug {
		level = clog.DebugLevel
	}
	l := clog.NewWithOptions(w, clog.Options{
		Level:           level,
		Formatter:       clog.JSONFormatter,
		ReportTimestamp: true,
	})
	return &JSONLogger{w: w, logger: l}
}

// With returns a logger that adds keyvals to every event.
func (l *JSONLogger) With(keyvals ...any) *JSONLogger {
	if l == nil {
		return nil
	}
	return &JSONLogger{w: l.w, logger: l.logger.With(keyvals...)}
}

func (l *JSONLogger) Debug(msg string, keyvals ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Debug(msg, keyvals...)
}

func (l *JSONLogger) Info(msg string, keyvals ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Info(msg, keyvals...)
}

func (l *JSONLogger) Error(msg string, keyvals ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Error(msg, keyvals...)
}

func (l *JSONLogger) Close() error {
	if l == nil || l.w == nil {
		return nil
	}
	return l.w.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
