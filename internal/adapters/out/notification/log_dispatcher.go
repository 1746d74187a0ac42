package notification

import (
	"context"
	"log/slog"

	"storefront/internal/core/ports"
)

// LogDispatcher writes notifications to the log instead of a broker.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger.With("component", "LogDispatcher")}
}

func (d *LogDispatcher) Notify(ctx context.Context, n ports.Notification) error {
	d.logger.InfoContext(ctx, "notification",
		"id", n.ID.String(),
		"recipient", n.RecipientID.String(),
		"kind", n.Kind,
		"payload", string(n.Payload),
	)
	return nil
}
