// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// An order is stored as one row in "orders" plus its lines in "order_items" and its
// append-only status history in "order_status_history".
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number           string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status           string          `gorm:"type:varchar(32);not null;index"`
	PaymentStatus    string          `gorm:"type:varchar(32);not null"`
	PaymentMethod    string          `gorm:"type:varchar(32);not null"`
	PaymentReference string          `gorm:"type:varchar(255)"`
	Subtotal         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Discount         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryFee      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	VATRate          decimal.Decimal `gorm:"type:numeric(6,4);not null"`
	VATAmount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	RefundedAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PromoCode        string          `gorm:"type:varchar(64)"`
	AddressLine      string          `gorm:"type:text;not null"`
	Latitude         *float64
	Longitude        *float64
	CreatedAt        time.Time    `gorm:"not null;index"`
	Items            []ItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History          []HistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line. Lines never change after checkout.
type ItemDTO struct {
	OrderID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Line       int             `gorm:"primaryKey;autoIncrement:false"`
	ProductID  string          `gorm:"type:varchar(64);not null"`
	Name       string          `gorm:"type:varchar(255)"`
	Quantity   decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryDTO is one status history entry; Seq is its position in the history.
type HistoryDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int       `gorm:"primaryKey;autoIncrement:false"`
	Status    string    `gorm:"type:varchar(32);not null"`
	ChangedAt time.Time `gorm:"not null"`
	ChangedBy string    `gorm:"type:varchar(64);not null"`
}

func (HistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain maps the order row and its lines. History is written separately because only
// pending entries are inserted on update.
func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()
	dto := OrderDTO{
		ID:               s.ID.Bytes(),
		Number:           s.Number,
		CustomerID:       s.CustomerID.Bytes(),
		Status:           s.Status.String(),
		PaymentStatus:    s.PaymentStatus.String(),
		PaymentMethod:    string(s.PaymentMethod),
		PaymentReference: s.PaymentReference,
		Subtotal:         s.Subtotal.Decimal(),
		Discount:         s.Discount.Decimal(),
		DeliveryFee:      s.DeliveryFee.Decimal(),
		VATRate:          s.VATRate,
		VATAmount:        s.VATAmount.Decimal(),
		Total:            s.Total.Decimal(),
		RefundedAmount:   s.RefundedAmount.Decimal(),
		PromoCode:        s.PromoCode,
		AddressLine:      s.AddressLine,
		Latitude:         s.Latitude,
		Longitude:        s.Longitude,
		CreatedAt:        s.CreatedAt,
		Items:            make([]ItemDTO, 0, len(s.Items)),
	}
	for i, item := range s.Items {
		dto.Items = append(dto.Items, ItemDTO{
			OrderID:    dto.ID,
			Line:       i,
			ProductID:  item.ProductID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.Decimal(),
			TotalPrice: item.TotalPrice.Decimal(),
		})
	}
	return dto
}

// historyFromDomain maps entries that start at position offset of the history.
func historyFromDomain(orderID kernel.UUID, offset int, entries []order.HistoryEntry) []HistoryDTO {
	dtos := make([]HistoryDTO, 0, len(entries))
	for i, entry := range entries {
		dtos = append(dtos, HistoryDTO{
			OrderID:   orderID.Bytes(),
			Seq:       offset + i,
			Status:    entry.Status.String(),
			ChangedAt: entry.ChangedAt,
			ChangedBy: entry.ChangedBy,
		})
	}
	return dtos
}

// toDomain converts a DTO with preloaded items and history (ordered by position) back
// into an order. RestoreOrder re-checks every invariant.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	items := make([]order.ItemSnapshot, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, order.ItemSnapshot{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  kernel.NewMoney(item.UnitPrice),
			TotalPrice: kernel.NewMoney(item.TotalPrice),
		})
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, entry := range dto.History {
		entryStatus, statusErr := order.ParseStatus(entry.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		history = append(history, order.HistoryEntry{
			Status:    entryStatus,
			ChangedAt: entry.ChangedAt,
			ChangedBy: entry.ChangedBy,
		})
	}

	return order.RestoreOrder(order.Snapshot{
		ID:               id,
		Number:           dto.Number,
		CustomerID:       customerID,
		Status:           status,
		PaymentStatus:    paymentStatus,
		PaymentMethod:    order.PaymentMethod(dto.PaymentMethod),
		PaymentReference: dto.PaymentReference,
		Items:            items,
		Subtotal:         kernel.NewMoney(dto.Subtotal),
		Discount:         kernel.NewMoney(dto.Discount),
		DeliveryFee:      kernel.NewMoney(dto.DeliveryFee),
		VATRate:          dto.VATRate,
		VATAmount:        kernel.NewMoney(dto.VATAmount),
		Total:            kernel.NewMoney(dto.Total),
		PromoCode:        dto.PromoCode,
		RefundedAmount:   kernel.NewMoney(dto.RefundedAmount),
		AddressLine:      dto.AddressLine,
		Latitude:         dto.Latitude,
		Longitude:        dto.Longitude,
		History:          history,
		CreatedAt:        dto.CreatedAt,
	})
}
