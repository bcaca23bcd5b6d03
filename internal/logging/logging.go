// Package logging builds the process logger: the slog API on top of a
// charmbracelet/log handler writing to stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

// Format selects the log line encoding
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"
)

// Options configures New
type Options struct {
	Level  string
	Format string
	// ReportTimestamp is off for the CLI, where lines are read immediately
	ReportTimestamp bool
}

// ParseLevel maps a level name to a log.Level; "" is warn so routine CLI
// use stays quiet.
func ParseLevel(s string) (log.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return log.WarnLevel, nil
	case "warning":
		return log.WarnLevel, nil
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q (valid: debug, info, warn, error)", s)
	}
	return level, nil
}

// ParseFormat maps a format name to a formatter; "" is text
func ParseFormat(s string) (log.Formatter, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return log.TextFormatter, nil
	case FormatJSON:
		return log.JSONFormatter, nil
	case FormatLogfmt:
		return log.LogfmtFormatter, nil
	default:
		return 0, fmt.Errorf("invalid log format %q (valid: text, json, logfmt)", s)
	}
}

// New returns a slog.Logger writing to w
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	formatter, err := ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          "vibrant",
	})
	return slog.New(handler), nil
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel}))
}
