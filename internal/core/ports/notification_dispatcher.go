package ports

import (
	"context"
	"encoding/json"
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// Notification is a message for one recipient. Rendering and channel selection belong to the
// consumer.
type Notification struct {
	ID          kernel.UUID
	RecipientID kernel.UUID
	Kind        string
	Payload     json.RawMessage
	CreatedAt   time.Time
}

// NotificationDispatcher hands notifications to the delivery channel. Delivery is
// at-least-once: the same notification may be dispatched more than once and consumers
// deduplicate on ID.
type NotificationDispatcher interface {
	Notify(ctx context.Context, n Notification) error
}
