// Package outboxrepo stores notifications written in the same transaction as the state
// change that produced them.
package outboxrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Kind        string     `gorm:"type:varchar(64);not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time  `gorm:"not null;index"`
	SentAt      *time.Time `gorm:"index"`
	Attempts    int        `gorm:"not null;default:0"`
	LastError   string     `gorm:"type:text"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(m outbox.Message) MessageDTO {
	return MessageDTO{
		ID:          m.ID.Bytes(),
		RecipientID: m.RecipientID.Bytes(),
		Kind:        string(m.Kind),
		Payload:     m.Payload,
		CreatedAt:   m.CreatedAt,
		SentAt:      m.SentAt,
		Attempts:    m.Attempts,
		LastError:   m.LastError,
	}
}

func toDomain(dto MessageDTO) (outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return outbox.Message{}, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return outbox.Message{}, err
	}
	return outbox.Message{
		ID:          id,
		RecipientID: recipientID,
		Kind:        outbox.Kind(dto.Kind),
		Payload:     dto.Payload,
		CreatedAt:   dto.CreatedAt,
		SentAt:      dto.SentAt,
		Attempts:    dto.Attempts,
		LastError:   dto.LastError,
	}, nil
}
