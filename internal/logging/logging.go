// Package logging provides structured logging configuration using log/slog.
//
// Logs go to stderr so that stdout stays reserved for command output (the
// JSON bootstrap result, rendered plans). When a file is configured the same
// records are also written to a size-rotated log file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects the handler and its destinations.
type Options struct {
	// Level is "debug", "info", "warn" or "error" (default: "info").
	Level string
	// Format is "text" or "json" (default: "text").
	Format string
	// File, when set, receives a copy of every record with rotation.
	File      string
	MaxSizeMB int
	MaxFiles  int

	// Writer overrides stderr; used by tests.
	Writer io.Writer
}

// Setup builds a logger from opts, installs it as the slog default, and
// returns it with a close function that releases the log file (a no-op when
// no file is configured).
func Setup(opts Options) (*slog.Logger, func() error, error) {
	var out io.Writer = os.Stderr
	if opts.Writer != nil {
		out = opts.Writer
	}

	closeFn := func() error { return nil }
	if strings.TrimSpace(opts.File) != "" {
		rw, err := NewRotatingWriter(RotationConfig{
			File:      opts.File,
			MaxSizeMB: opts.MaxSizeMB,
			MaxFiles:  opts.MaxFiles,
		})
		if err != nil {
			return nil, nil, err
		}
		out = io.MultiWriter(out, rw)
		closeFn = rw.Close
	}

	hopts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		handler = slog.NewJSONHandler(out, hopts)
	} else {
		handler = slog.NewTextHandler(out, hopts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
