// Package cli implements the licensebat command-line interface.
//
// # Commands
//
//   - check: Check the licenses of a lockfile against a policy
//   - report: Render a saved JSON report as text or markdown
//   - collectors: List the supported lockfiles
//   - serve: Run the HTTP API
//   - completion: Generate shell completion scripts
//
// # Configuration
//
// Every check and serve setting can come from a flag, a LICENSEBAT_*
// environment variable or licensebat.yaml, in that order of precedence.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// traces registry requests. Loggers are passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/licensebat/pkg/observability"
)

// newLogger returns a logger writing to w with short "15:04:05.00"
// timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Checked 42 dependencies (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for loggerFromContext.
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

// logHooks reports registry traffic at debug level.
type logHooks struct {
	observability.NoopHTTPHooks
	logger *log.Logger
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("registry", "method", method, "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("registry request failed", "method", method, "host", host, "path", path, "error", err)
}
