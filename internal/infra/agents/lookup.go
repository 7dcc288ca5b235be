package agents

import (
	"context"
	"log/slog"
)

// lookup is one candidate location for an agent value.
type lookup[T any] struct {
	source string
	read   func(ctx context.Context) (T, bool)
}

// firstOf tries each lookup in priority order and returns the first value
// found. Later lookups are not consulted.
func firstOf[T any](ctx context.Context, logger *slog.Logger, what string, lookups []lookup[T]) (T, bool) {
	for _, l := range lookups {
		if v, ok := l.read(ctx); ok {
			if logger != nil {
				logger.Debug("agent value located", "value", what, "source", l.source)
			}
			return v, true
		}
	}
	if logger != nil {
		logger.Debug("agent value not found", "value", what, "candidates", len(lookups))
	}
	var zero T
	return zero, false
}
