// Package logging builds the structured logger used across reviewdesk.
//
//	TRACE (-1) → DEBUG (0) → INFO (1) → WARN (2) → ERROR (3)
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger construction.
type Options struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Defaults to "info" when empty or unrecognised.
	Level string
	// Pretty enables human-friendly console output instead of JSON lines.
	Pretty bool
	// Output is the writer logs are sent to. When nil, File is opened.
	Output io.Writer
	// File is the log file path used when Output is nil. Parent
	// directories are created. Empty discards output.
	File string
}

// New builds a logger and returns a close function for any file it opened.
func New(opts Options) (zerolog.Logger, func() error, error) {
	closer := func() error { return nil }

	out := opts.Output
	if out == nil {
		if strings.TrimSpace(opts.File) == "" {
			out = io.Discard
		} else {
			if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
				return zerolog.Nop(), closer, fmt.Errorf("create log dir: %w", err)
			}
			f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
			}
			out = f
			closer = f.Close
		}
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: opts.Output == nil}
	}

	logger := zerolog.New(out).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()
	return logger, closer, nil
}

// ParseLevel converts a string to a zerolog.Level.
//
//	"trace" → TraceLevel (-1)
//	"debug" → DebugLevel ( 0)
//	"info"  → InfoLevel  ( 1)  ← default
//	"warn"  → WarnLevel  ( 2)
//	"error" → ErrorLevel ( 3)
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
