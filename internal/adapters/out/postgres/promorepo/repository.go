package promorepo

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/promo"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormPromoCodeRepository struct {
	db *gorm.DB
}

func NewGormPromoCodeRepository(db *gorm.DB) *GormPromoCodeRepository {
	return &GormPromoCodeRepository{db: db}
}

func (r *GormPromoCodeRepository) Add(ctx context.Context, aggregate *promo.PromoCode) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("%s already exists", dto.Code))
		}
		return err
	}
	return nil
}

// Update stores the usage counter and the enabled flag; the other terms never change.
func (r *GormPromoCodeRepository) Update(ctx context.Context, aggregate *promo.PromoCode) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PromoCodeDTO{}).Where("code = ?", dto.Code).
		Select("used_count", "enabled").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("promo code", dto.Code)
	}
	return nil
}

func (r *GormPromoCodeRepository) Get(ctx context.Context, code string) (*promo.PromoCode, error) {
	return r.get(ctx, r.db, code)
}

func (r *GormPromoCodeRepository) GetForUpdate(ctx context.Context, code string) (*promo.PromoCode, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), code)
}

func (r *GormPromoCodeRepository) get(ctx context.Context, db *gorm.DB, code string) (*promo.PromoCode, error) {
	code = promo.Normalize(code)

	var dto PromoCodeDTO
	if err := db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("promo code", code)
		}
		return nil, err
	}
	return toDomain(dto)
}
