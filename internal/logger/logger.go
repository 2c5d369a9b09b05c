package logger

import (
	"io"
	"log/slog"
)

func New(env string, w io.Writer) *slog.Logger {
	var h slog.Handler
	if env == "prod" {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(h)
}

// Discard is for tests and callers that do not want output.
func Discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }
