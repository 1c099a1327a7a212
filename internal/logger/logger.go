package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/jwebster45206/dialog-engine/internal/config"
)

// Setup configures the global slog logger based on environment.
// The console hands stdout to the dialog menu, so logs go to stderr.
func Setup(cfg *config.Config) *slog.Logger {
	return setup(cfg, os.Stderr)
}

func setup(cfg *config.Config, w io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	if cfg.Environment == "production" {
		// JSON format for production
		handler = slog.NewJSONHandler(w, opts)
	} else {
		// Text format for development
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)

	// Set as default logger
	slog.SetDefault(logger)

	return logger
}

// WithScript adds the script name to logger context
func WithScript(logger *slog.Logger, script string) *slog.Logger {
	return logger.With("script", script)
}

// WithError adds error to logger context
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}
