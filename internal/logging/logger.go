// Package logging installs the process-wide slog handler.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init sets the default slog logger writing to stdout.
func Init(level, format string) {
	slog.SetDefault(New(os.Stdout, level, format))
	slog.Debug("logger initialized", "level", level, "format", format)
}

// New builds a text or JSON logger at the given level.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
