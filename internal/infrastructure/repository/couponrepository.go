package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kinetix-inc/kinetix/internal/domain/coupon"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/persistence/models"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	"github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type CouponRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewCouponRepository(db *gorm.DB, logger logger.Interface) coupon.Repository {
	return &CouponRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *CouponRepositoryImpl) Create(ctx context.Context, c *coupon.Coupon) error {
	model := r.toModel(c)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create coupon", "error", err, "code", c.Code())
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	if err := c.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("coupon created successfully", "coupon_id", model.ID, "code", c.Code())
	return nil
}

func (r *CouponRepositoryImpl) Update(ctx context.Context, c *coupon.Coupon) error {
	model := r.toModel(c)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.CouponModel{}).
		Where("id = ?", c.ID()).
		Updates(map[string]interface{}{
			"max_discount": model.MaxDiscount,
			"min_purchase": model.MinPurchase,
			"valid_from":   model.ValidFrom,
			"valid_until":  model.ValidUntil,
			"max_uses":     model.MaxUses,
			"current_uses": model.CurrentUses,
			"active":       model.Active,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update coupon", "error", result.Error, "coupon_id", c.ID())
		return fmt.Errorf("failed to update coupon: %w", result.Error)
	}

	return nil
}

func (r *CouponRepositoryImpl) GetByID(ctx context.Context, id uint) (*coupon.Coupon, error) {
	var model models.CouponModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("coupon not found")
		}
		r.logger.Errorw("failed to get coupon by ID", "error", err, "coupon_id", id)
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return r.toEntity(&model)
}

func (r *CouponRepositoryImpl) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	var model models.CouponModel
	if err := db.GetTxFromContext(ctx, r.db).Where("code = ?", coupon.NormalizeCode(code)).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("coupon not found")
		}
		r.logger.Errorw("failed to get coupon by code", "error", err, "code", code)
		return nil, fmt.Errorf("failed to get coupon by code: %w", err)
	}

	return r.toEntity(&model)
}

// GetByCodeForUpdate locks the coupon row until the surrounding transaction
// ends, so concurrent redemptions of the same code serialize.
func (r *CouponRepositoryImpl) GetByCodeForUpdate(ctx context.Context, code string) (*coupon.Coupon, error) {
	var model models.CouponModel
	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", coupon.NormalizeCode(code)).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("coupon not found")
		}
		r.logger.Errorw("failed to lock coupon by code", "error", err, "code", code)
		return nil, fmt.Errorf("failed to lock coupon by code: %w", err)
	}

	return r.toEntity(&model)
}

func (r *CouponRepositoryImpl) List(ctx context.Context, offset, limit int, activeOnly bool) ([]*coupon.Coupon, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CouponModel{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count coupons", "error", err)
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	var couponModels []*models.CouponModel
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&couponModels).Error; err != nil {
		r.logger.Errorw("failed to list coupons", "error", err)
		return nil, 0, fmt.Errorf("failed to list coupons: %w", err)
	}

	coupons := make([]*coupon.Coupon, 0, len(couponModels))
	for _, model := range couponModels {
		c, err := r.toEntity(model)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to convert coupon model ID %d: %w", model.ID, err)
		}
		coupons = append(coupons, c)
	}

	return coupons, total, nil
}

func (r *CouponRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.CouponModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete coupon", "error", result.Error, "coupon_id", id)
		return fmt.Errorf("failed to delete coupon: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("coupon not found")
	}

	r.logger.Infow("coupon deleted successfully", "coupon_id", id)
	return nil
}

func (r *CouponRepositoryImpl) toEntity(model *models.CouponModel) (*coupon.Coupon, error) {
	return coupon.Reconstruct(coupon.ReconstructParams{
		ID:           model.ID,
		Code:         model.Code,
		DiscountType: coupon.DiscountType(model.DiscountType),
		Value:        model.Value,
		MaxDiscount:  model.MaxDiscount,
		MinPurchase:  model.MinPurchase,
		ValidFrom:    model.ValidFrom,
		ValidUntil:   model.ValidUntil,
		MaxUses:      model.MaxUses,
		CurrentUses:  model.CurrentUses,
		Active:       model.Active,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	})
}

func (r *CouponRepositoryImpl) toModel(c *coupon.Coupon) *models.CouponModel {
	return &models.CouponModel{
		ID:           c.ID(),
		Code:         c.Code(),
		DiscountType: c.DiscountType().String(),
		Value:        c.Value(),
		MaxDiscount:  c.MaxDiscount(),
		MinPurchase:  c.MinPurchase(),
		ValidFrom:    c.ValidFrom(),
		ValidUntil:   c.ValidUntil(),
		MaxUses:      c.MaxUses(),
		CurrentUses:  c.CurrentUses(),
		Active:       c.IsActive(),
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
	}
}
