package outbox

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Kind names the notification a message carries. Consumers switch on it.
type Kind string

const (
	KindOrderPlaced           Kind = "order.placed"
	KindOrderStatusChanged    Kind = "order.status_changed"
	KindRefundIssued          Kind = "order.refund_issued"
	KindCashbackCredited      Kind = "ledger.cashback_credited"
	KindLoyaltyPointsEarned   Kind = "ledger.loyalty_points_earned"
	KindDeliveryStatusChanged Kind = "delivery.status_changed"
	KindDriverAssigned        Kind = "delivery.driver_assigned"
)

var ErrPayloadIsRequired = errs.NewValueIsRequiredError("payload")

// Message is a notification waiting to be handed to the notification dispatcher. It is
// written in the same unit of work as the state change it describes and relayed only after
// that unit commits.
type Message struct {
	ID          kernel.UUID     `json:"id"`
	RecipientID kernel.UUID     `json:"recipientId"`
	Kind        Kind            `json:"kind"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"createdAt"`
	SentAt      *time.Time      `json:"sentAt,omitempty"`
	Attempts    int             `json:"attempts"`
	LastError   string          `json:"lastError,omitempty"`
}

// NewMessage serializes payload and addresses it to recipientID.
func NewMessage(recipientID kernel.UUID, kind Kind, payload any, now time.Time) (Message, error) {
	if err := recipientID.Validate(); err != nil {
		return Message{}, err
	}
	if strings.TrimSpace(string(kind)) == "" {
		return Message{}, errs.NewValueIsRequiredError("kind")
	}
	if payload == nil {
		return Message{}, ErrPayloadIsRequired
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}
	return Message{
		ID:          kernel.NewUUID(),
		RecipientID: recipientID,
		Kind:        kind,
		Payload:     raw,
		CreatedAt:   now,
	}, nil
}

// IsSent reports whether the message was delivered at least once.
func (m Message) IsSent() bool {
	return m.SentAt != nil
}

// MarkSent records a successful delivery.
func (m *Message) MarkSent(now time.Time) {
	m.Attempts++
	m.SentAt = &now
	m.LastError = ""
}

// MarkFailed records a failed delivery attempt. The message stays pending.
func (m *Message) MarkFailed(cause error) {
	m.Attempts++
	if cause == nil {
		cause = errors.New("unknown error")
	}
	m.LastError = cause.Error()
}
