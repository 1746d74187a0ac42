package ports

import (
	"context"

	"storefront/internal/core/domain/model/promo"
)

// PromoCodeRepository defines the persistence contract for promo codes. Codes are looked up
// in their normalized, upper-case form.
type PromoCodeRepository interface {
	Add(ctx context.Context, aggregate *promo.PromoCode) error
	Update(ctx context.Context, aggregate *promo.PromoCode) error
	Get(ctx context.Context, code string) (*promo.PromoCode, error)
	GetForUpdate(ctx context.Context, code string) (*promo.PromoCode, error)
}
