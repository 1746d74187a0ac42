package ports

import (
	"context"

	"storefront/internal/core/domain/model/outbox"
)

// OutboxRepository stores notifications written in the same unit of work as the state
// change they describe.
type OutboxRepository interface {
	Add(ctx context.Context, messages ...outbox.Message) error

	// GetPendingForUpdate locks up to limit unsent messages, oldest first. Messages locked
	// by another relay are skipped.
	GetPendingForUpdate(ctx context.Context, limit int) ([]outbox.Message, error)

	// Update records a delivery attempt.
	Update(ctx context.Context, message outbox.Message) error
}
