package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"topoconf/internal/config"
)

// newLogger creates a logger with timestamp formatting that filters at level.
// JSON output is used when format is config.LogFormatJSON.
func newLogger(w io.Writer, level log.Level, format config.LogFormat) *log.Logger {
	opts := log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	}
	if format == config.LogFormatJSON {
		opts.Formatter = log.JSONFormatter
		opts.TimeFormat = "2006-01-02T15:04:05.000Z07:00"
	}
	return log.NewWithOptions(w, opts)
}

// levelFor maps a configured level onto a logger level; debug forces DebugLevel
func levelFor(level config.LogLevel, debug bool) log.Level {
	if debug {
		return log.DebugLevel
	}
	parsed, err := log.ParseLevel(string(level))
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none is attached
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
