// Package logger defines the logging facade used across the client.
//
// The client never logs through a concrete library directly; it accepts
// anything implementing Logger. Two implementations ship with the package:
// a log/slog adapter (New) and a zerolog adapter (NewZerolog).
package logger

import (
	"log/slog"
)

// Logger is the minimal leveled logging surface the client requires.
// Arguments are alternating key/value pairs, as in log/slog.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

type SlogLogger struct {
	logger *slog.Logger
}

// New wraps a slog.Handler in a Logger.
func New(h slog.Handler) *SlogLogger {
	return &SlogLogger{logger: slog.New(h)}
}

func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}
