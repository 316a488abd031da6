// Package cli implements the mcgen command-line interface.
//
// Commands:
//   - serve: run the web server and the metrics listener
//   - render: write a single achievement PNG to a file
//   - backgrounds: list the available backgrounds
//
// All commands accept --config for a TOML file and --verbose (-v) for
// debug-level logging. Loggers travel through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at level. Production loggers emit
// JSON; development loggers emit timestamped text.
func newLogger(w io.Writer, level log.Level, production bool) *log.Logger {
	opts := log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	}
	if production {
		opts.Formatter = log.JSONFormatter
		opts.TimeFormat = time.RFC3339
	}
	return log.NewWithOptions(w, opts)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
