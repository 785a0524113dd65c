package logger

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerolog returns a Logger writing structured JSON lines to w.
func NewZerolog(w io.Writer) *ZerologLogger {
	return &ZerologLogger{
		logger: zerolog.New(w).With().Timestamp().Logger(),
	}
}

func (l *ZerologLogger) Error(msg string, args ...any) {
	l.logger.Error().Fields(fields(args)).Msg(msg)
}

func (l *ZerologLogger) Warn(msg string, args ...any) {
	l.logger.Warn().Fields(fields(args)).Msg(msg)
}

func (l *ZerologLogger) Info(msg string, args ...any) {
	l.logger.Info().Fields(fields(args)).Msg(msg)
}

func (l *ZerologLogger) Debug(msg string, args ...any) {
	l.logger.Debug().Fields(fields(args)).Msg(msg)
}

// fields converts alternating key/value pairs into a zerolog fields map.
// A trailing key with no value is kept with a nil value rather than dropped.
func fields(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}

	m := make(map[string]any, len(args)/2+1)
	for i := 0; i < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		if i+1 < len(args) {
			m[key] = args[i+1]
		} else {
			m[key] = nil
		}
	}
	return m
}
