// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options selects the log destination and verbosity.
type Options struct {
	// Path sends output to a file. Empty logs to Stderr.
	Path   string
	Debug  bool
	Stderr io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger and the closer for its destination. The TUIs own the
// terminal, so interactive commands should pass a file path.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level := log.WarnLevel
	if opts.Debug {
		level = log.DebugLevel
	}
	if opts.Path == "" {
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		logger := log.NewWithOptions(w, log.Options{Prefix: "sortlab", Level: level})
		return logger, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Prefix:          "sortlab",
		Level:           level,
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
	})
	return logger, f, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
