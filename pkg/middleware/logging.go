package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/mkdom"
)

// LogObserver returns an observer that logs every call at debug level and
// every failure at warn level.
func LogObserver(logger *slog.Logger) CallObserver {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "host")

	return func(op string, elapsed time.Duration, err error) {
		if err != nil {
			logger.Warn("host call failed", "op", op, "duration", elapsed, "error", err)
			return
		}
		if logger.Enabled(context.Background(), slog.LevelDebug) {
			logger.Debug("host call", "op", op, "duration", elapsed)
		}
	}
}

// Logging wraps doc with a slog observer.
func Logging(doc mkdom.Document, logger *slog.Logger) mkdom.Document {
	return Observe(doc, LogObserver(logger))
}
