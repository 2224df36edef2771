// Package cli implements the dashgrid command-line interface.
//
// The commands load a dashboard file (JSON or YAML), run one of the layout
// engine operations on it and write the result back:
//   - init: create an empty dashboard
//   - place: add a widget at the first free position
//   - import: add widgets from a CSV or Excel sheet
//   - tidy: compact one screen or all of them
//   - compare: show both compaction strategies side by side
//   - check: report overlapping and out-of-grid widgets
//   - export: render a screen to PDF, PNG or a share QR code
//   - screens: list screens and widgets
//   - backup / restore: bundle config and dashboards into one file
//
// All commands support --verbose (-v) for debug-level logging and --config
// to point at a different config file. Loggers and the loaded config are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/dashgrid/internal/model"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with the elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Packed 3 screens (2ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const (
	loggerKey ctxKey = iota
	configKey
)

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// appConfig is the loaded configuration together with the file it came from.
type appConfig struct {
	model.AppConfig
	path string
}

func withConfig(ctx context.Context, c appConfig) context.Context {
	return context.WithValue(ctx, configKey, c)
}

// configFromContext returns the config loaded by the root command, or the
// defaults when no config is attached.
func configFromContext(ctx context.Context) appConfig {
	if c, ok := ctx.Value(configKey).(appConfig); ok {
		return c
	}
	return appConfig{AppConfig: model.DefaultAppConfig()}
}
