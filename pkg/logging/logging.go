// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	log := logging.Setup(cfg.LogLevel)      // "debug", "info", "warn", "error"
//	log := logging.New(os.Stdout, "debug")  // handler for a specific writer
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs a colored stderr logger at level as the slog default and returns it.
func Setup(level string) *slog.Logger {
	log := New(os.Stderr, level)
	slog.SetDefault(log)
	return log
}

// New returns a colored logger writing to w. Colors are disabled when w is not stderr.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      ParseLevel(level),
			TimeFormat: time.Kitchen,
			AddSource:  true,
			NoColor:    w != os.Stderr,
		}),
	)
}

// ParseLevel maps debug, info, warn and error to slog levels, defaulting to info.
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
