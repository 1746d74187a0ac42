// Package promorepo persists promo codes, keyed by their normalized code.
package promorepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/promo"

	"github.com/shopspring/decimal"
)

type PromoCodeDTO struct {
	Code      string           `gorm:"type:varchar(64);primaryKey"`
	Discount  decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	Type      string           `gorm:"type:varchar(16);not null"`
	MinOrder  *decimal.Decimal `gorm:"type:numeric(12,2)"`
	MaxUses   *int
	UsedCount int `gorm:"not null;default:0"`
	Expiry    *time.Time
	Enabled   bool `gorm:"not null"`
}

func (PromoCodeDTO) TableName() string {
	return "promo_codes"
}

func fromDomain(p *promo.PromoCode) PromoCodeDTO {
	s := p.Snapshot()
	dto := PromoCodeDTO{
		Code:      s.Code,
		Discount:  s.Discount,
		Type:      string(s.Type),
		MaxUses:   s.MaxUses,
		UsedCount: s.UsedCount,
		Expiry:    s.Expiry,
		Enabled:   s.Enabled,
	}
	if s.MinOrder != nil {
		minOrder := s.MinOrder.Decimal()
		dto.MinOrder = &minOrder
	}
	return dto
}

func toDomain(dto PromoCodeDTO) (*promo.PromoCode, error) {
	s := promo.Snapshot{
		Code:      dto.Code,
		Discount:  dto.Discount,
		Type:      promo.DiscountType(dto.Type),
		MaxUses:   dto.MaxUses,
		UsedCount: dto.UsedCount,
		Expiry:    dto.Expiry,
		Enabled:   dto.Enabled,
	}
	if dto.MinOrder != nil {
		minOrder := kernel.NewMoney(*dto.MinOrder)
		s.MinOrder = &minOrder
	}
	return promo.RestorePromoCode(s)
}
