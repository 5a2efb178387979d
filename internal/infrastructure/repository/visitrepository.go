package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/kinetix-inc/kinetix/internal/domain/subscription"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/persistence/models"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type VisitRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewVisitRepository(db *gorm.DB, logger logger.Interface) subscription.VisitRepository {
	return &VisitRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *VisitRepositoryImpl) Create(ctx context.Context, visit *subscription.Visit) error {
	model := &models.VisitModel{
		MemberID:       visit.MemberID(),
		SubscriptionID: visit.SubscriptionID(),
		CheckedInAt:    visit.CheckedInAt(),
		CreatedAt:      visit.CreatedAt(),
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create visit", "error", err, "member_id", visit.MemberID())
		return fmt.Errorf("failed to create visit: %w", err)
	}

	if err := visit.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *VisitRepositoryImpl) CountBySubscription(ctx context.Context, subscriptionID uint) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.VisitModel{}).
		Where("subscription_id = ?", subscriptionID).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count visits", "error", err, "subscription_id", subscriptionID)
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}

	return count, nil
}

func (r *VisitRepositoryImpl) ListByMember(ctx context.Context, memberID uint, offset, limit int) ([]*subscription.Visit, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.VisitModel{}).Where("member_id = ?", memberID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count member visits", "error", err, "member_id", memberID)
		return nil, 0, fmt.Errorf("failed to count member visits: %w", err)
	}

	var visitModels []*models.VisitModel
	if err := query.Offset(offset).Limit(limit).Order("checked_in_at DESC").Find(&visitModels).Error; err != nil {
		r.logger.Errorw("failed to list member visits", "error", err, "member_id", memberID)
		return nil, 0, fmt.Errorf("failed to list member visits: %w", err)
	}

	visits := make([]*subscription.Visit, 0, len(visitModels))
	for _, model := range visitModels {
		visits = append(visits, subscription.ReconstructVisit(
			model.ID,
			model.MemberID,
			model.SubscriptionID,
			model.CheckedInAt,
			model.CreatedAt,
		))
	}

	return visits, total, nil
}
