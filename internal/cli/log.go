// Package cli implements the flow command-line interface.
//
// The CLI solves tree documents against a viewport, watches a document while
// the terminal is resized, serves the layout API over HTTP, and manages the
// result cache. It is built on cobra, logs through charmbracelet/log and
// renders status lines with lipgloss.
//
// # Commands
//
//   - solve: Solve one or more documents and write JSON, DOT or SVG output
//   - watch: Re-solve a document whenever the terminal is resized
//   - serve: Run the HTTP layout API
//   - cache: Clear the cache or print its location
//   - completion: Generate shell completion scripts
//
// # Configuration
//
// Defaults come from an optional TOML file (--config, by default
// $XDG_CONFIG_HOME/flow/config.toml). Flags given on the command line
// override values from the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with
// elapsed duration. It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg and the elapsed time rounded to the millisecond, e.g.
// "Solved app.toml (12ms)". Extra key/value pairs are passed through.
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
	if len(keyvals) > 0 {
		p.logger.Debug(msg, keyvals...)
	}
}
