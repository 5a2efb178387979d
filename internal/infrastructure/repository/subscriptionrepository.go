package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kinetix-inc/kinetix/internal/domain/subscription"
	"github.com/kinetix-inc/kinetix/internal/domain/subscription/valueobjects"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/persistence/models"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	"github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, sub *subscription.Subscription) error {
	model := r.toModel(sub)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription", "error", err, "member_id", sub.MemberID())
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := sub.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("subscription created successfully",
		"subscription_id", model.ID,
		"member_id", sub.MemberID(),
		"package_id", sub.PackageID(),
	)
	return nil
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, sub *subscription.Subscription) error {
	model := r.toModel(sub)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).
		Where("id = ?", sub.ID()).
		Updates(map[string]interface{}{
			"package_id":        model.PackageID,
			"package_name":      model.PackageName,
			"duration_days":     model.DurationDays,
			"visit_quota":       model.VisitQuota,
			"vip":               model.VIP,
			"end_date":          model.EndDate,
			"original_end_date": model.OriginalEndDate,
			"frozen_reason":     model.FrozenReason,
			"frozen_start_date": model.FrozenStartDate,
			"frozen_end_date":   model.FrozenEndDate,
			"frozen_days":       model.FrozenDays,
			"total_price":       model.TotalPrice,
			"discount_amount":   model.DiscountAmount,
			"final_price":       model.FinalPrice,
			"auto_renew":        model.AutoRenew,
			"status":            model.Status,
			"updated_at":        model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "error", result.Error, "subscription_id", sub.ID())
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}

	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("subscription not found")
		}
		r.logger.Errorw("failed to get subscription by ID", "error", err, "subscription_id", id)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.toEntity(&model)
}

func (r *SubscriptionRepositoryImpl) List(ctx context.Context, offset, limit int, filter subscription.ListFilter) ([]*subscription.Subscription, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SubscriptionModel{})

	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	var subModels []*models.SubscriptionModel
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&subModels).Error; err != nil {
		r.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	subs, err := r.toEntities(subModels)
	if err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}

func (r *SubscriptionRepositoryImpl) GetActiveByMember(ctx context.Context, memberID uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("member_id = ? AND status = ?", memberID, string(valueobjects.StatusActive)).
		Order("end_date DESC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("no active subscription for member")
		}
		r.logger.Errorw("failed to get active subscription", "error", err, "member_id", memberID)
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}

	return r.toEntity(&model)
}

func (r *SubscriptionRepositoryImpl) ListOverdue(ctx context.Context, now time.Time, limit int) ([]*subscription.Subscription, error) {
	var subModels []*models.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_date < ?", string(valueobjects.StatusActive), now).
		Order("end_date ASC").
		Limit(limit).
		Find(&subModels).Error
	if err != nil {
		r.logger.Errorw("failed to list overdue subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list overdue subscriptions: %w", err)
	}

	return r.toEntities(subModels)
}

func (r *SubscriptionRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.SubscriptionModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete subscription", "error", result.Error, "subscription_id", id)
		return fmt.Errorf("failed to delete subscription: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("subscription not found")
	}

	r.logger.Infow("subscription deleted successfully", "subscription_id", id)
	return nil
}

func (r *SubscriptionRepositoryImpl) toEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	return subscription.Reconstruct(subscription.ReconstructParams{
		ID:              model.ID,
		MemberID:        model.MemberID,
		PackageID:       model.PackageID,
		PackageName:     model.PackageName,
		DurationDays:    model.DurationDays,
		VisitQuota:      model.VisitQuota,
		VIP:             model.VIP,
		StartDate:       model.StartDate,
		EndDate:         model.EndDate,
		OriginalEndDate: model.OriginalEndDate,
		FrozenReason:    model.FrozenReason,
		FrozenStartDate: model.FrozenStartDate,
		FrozenEndDate:   model.FrozenEndDate,
		FrozenDays:      model.FrozenDays,
		TotalPrice:      model.TotalPrice,
		DiscountAmount:  model.DiscountAmount,
		FinalPrice:      model.FinalPrice,
		CouponCode:      model.CouponCode,
		AutoRenew:       model.AutoRenew,
		Status:          valueobjects.Status(model.Status),
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	})
}

func (r *SubscriptionRepositoryImpl) toModel(sub *subscription.Subscription) *models.SubscriptionModel {
	return &models.SubscriptionModel{
		ID:              sub.ID(),
		MemberID:        sub.MemberID(),
		PackageID:       sub.PackageID(),
		PackageName:     sub.PackageName(),
		DurationDays:    sub.DurationDays(),
		VisitQuota:      sub.VisitQuota(),
		VIP:             sub.IsVIP(),
		StartDate:       sub.StartDate(),
		EndDate:         sub.EndDate(),
		OriginalEndDate: sub.OriginalEndDate(),
		FrozenReason:    sub.FrozenReason(),
		FrozenStartDate: sub.FrozenStartDate(),
		FrozenEndDate:   sub.FrozenEndDate(),
		FrozenDays:      sub.FrozenDays(),
		TotalPrice:      sub.TotalPrice(),
		DiscountAmount:  sub.DiscountAmount(),
		FinalPrice:      sub.FinalPrice(),
		CouponCode:      sub.CouponCode(),
		AutoRenew:       sub.AutoRenew(),
		Status:          string(sub.Status()),
		CreatedAt:       sub.CreatedAt(),
		UpdatedAt:       sub.UpdatedAt(),
	}
}

func (r *SubscriptionRepositoryImpl) toEntities(subModels []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	subs := make([]*subscription.Subscription, 0, len(subModels))
	for _, model := range subModels {
		sub, err := r.toEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to convert subscription model ID %d: %w", model.ID, err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}
