package logger

import (
	"log/slog"
	"os"
)

// New creates the JSON logger every component shares. Info level is
// the floor; debug output stays off outside development builds.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", "dispatch"))
}
