// Package logging configures the application logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Options selects level, format and destinations.
type Options struct {
	Level  string // logrus level name, "info" when empty or unknown
	Format string // "json" or "text"
	File   string // optional file receiving a copy of stdout
}

// New builds a logger writing to stdout and, when opts.File is set, to that
// file as well.  The returned cleanup closes the file.
func New(opts Options) (*logrus.Logger, func(), error) {
	l := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	switch opts.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	cleanup := func() {}
	var out io.Writer = os.Stdout
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, f)
		cleanup = func() { _ = f.Close() }
	}
	l.SetOutput(out)
	return l, cleanup, nil
}

// Discard returns a logger that drops everything.  Handy in tests.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
