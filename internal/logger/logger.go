package logger

import (
	"log/slog"
	"os"
)

// New creates the JSON slog.Logger used across the service.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", "tireflow"))
}
