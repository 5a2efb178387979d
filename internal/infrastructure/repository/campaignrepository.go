package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kinetix-inc/kinetix/internal/domain/campaign"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/persistence/models"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	"github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type CampaignRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewCampaignRepository(db *gorm.DB, logger logger.Interface) campaign.Repository {
	return &CampaignRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *CampaignRepositoryImpl) Create(ctx context.Context, c *campaign.Campaign) error {
	model := r.toModel(c)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create campaign", "error", err, "name", c.Name())
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	if err := c.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("campaign created successfully", "campaign_id", model.ID, "name", c.Name())
	return nil
}

func (r *CampaignRepositoryImpl) Update(ctx context.Context, c *campaign.Campaign) error {
	model := r.toModel(c)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.CampaignModel{}).
		Where("id = ?", c.ID()).
		Updates(map[string]interface{}{
			"status":           model.Status,
			"total_recipients": model.TotalRecipients,
			"started_at":       model.StartedAt,
			"completed_at":     model.CompletedAt,
			"updated_at":       model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update campaign", "error", result.Error, "campaign_id", c.ID())
		return fmt.Errorf("failed to update campaign: %w", result.Error)
	}

	return nil
}

func (r *CampaignRepositoryImpl) IncrementOutcome(ctx context.Context, campaignID uint, delivered bool) error {
	column := "sent_count"
	if !delivered {
		column = "failed_count"
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.CampaignModel{}).
		Where("id = ? AND status = ?", campaignID, string(campaign.StatusRunning)).
		Updates(map[string]interface{}{
			column:       gorm.Expr(column + " + 1"),
			"updated_at": time.Now().UTC(),
		})

	if result.Error != nil {
		r.logger.Errorw("failed to increment campaign counter", "error", result.Error, "campaign_id", campaignID)
		return fmt.Errorf("failed to increment campaign counter: %w", result.Error)
	}

	return nil
}

func (r *CampaignRepositoryImpl) Complete(ctx context.Context, campaignID uint, completedAt time.Time) error {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.CampaignModel{}).
		Where("id = ? AND status = ?", campaignID, string(campaign.StatusRunning)).
		Updates(map[string]interface{}{
			"status":       string(campaign.StatusCompleted),
			"completed_at": completedAt,
			"updated_at":   completedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to complete campaign", "error", result.Error, "campaign_id", campaignID)
		return fmt.Errorf("failed to complete campaign: %w", result.Error)
	}

	return nil
}

func (r *CampaignRepositoryImpl) GetByID(ctx context.Context, id uint) (*campaign.Campaign, error) {
	var model models.CampaignModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("campaign not found")
		}
		r.logger.Errorw("failed to get campaign by ID", "error", err, "campaign_id", id)
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return r.toEntity(&model)
}

func (r *CampaignRepositoryImpl) List(ctx context.Context, offset, limit int) ([]*campaign.Campaign, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CampaignModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count campaigns", "error", err)
		return nil, 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	var campaignModels []*models.CampaignModel
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&campaignModels).Error; err != nil {
		r.logger.Errorw("failed to list campaigns", "error", err)
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}

	campaigns := make([]*campaign.Campaign, 0, len(campaignModels))
	for _, model := range campaignModels {
		c, err := r.toEntity(model)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to convert campaign model ID %d: %w", model.ID, err)
		}
		campaigns = append(campaigns, c)
	}

	return campaigns, total, nil
}

func (r *CampaignRepositoryImpl) toEntity(model *models.CampaignModel) (*campaign.Campaign, error) {
	return campaign.ReconstructCampaign(campaign.ReconstructCampaignParams{
		ID:              model.ID,
		Name:            model.Name,
		Subject:         model.Subject,
		Body:            model.Body,
		Audience:        campaign.Audience(model.Audience),
		Status:          campaign.Status(model.Status),
		TotalRecipients: model.TotalRecipients,
		SentCount:       model.SentCount,
		FailedCount:     model.FailedCount,
		StartedAt:       model.StartedAt,
		CompletedAt:     model.CompletedAt,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	})
}

func (r *CampaignRepositoryImpl) toModel(c *campaign.Campaign) *models.CampaignModel {
	return &models.CampaignModel{
		ID:              c.ID(),
		Name:            c.Name(),
		Subject:         c.Subject(),
		Body:            c.Body(),
		Audience:        string(c.Audience()),
		Status:          string(c.Status()),
		TotalRecipients: c.TotalRecipients(),
		SentCount:       c.SentCount(),
		FailedCount:     c.FailedCount(),
		StartedAt:       c.StartedAt(),
		CompletedAt:     c.CompletedAt(),
		CreatedAt:       c.CreatedAt(),
		UpdatedAt:       c.UpdatedAt(),
	}
}
