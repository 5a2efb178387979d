package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kinetix-inc/kinetix/internal/domain/campaign"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/persistence/models"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type CampaignMessageRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewCampaignMessageRepository(db *gorm.DB, logger logger.Interface) campaign.MessageRepository {
	return &CampaignMessageRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *CampaignMessageRepositoryImpl) CreateBatch(ctx context.Context, messages []*campaign.Message) error {
	if len(messages) == 0 {
		return nil
	}

	messageModels := make([]*models.CampaignMessageModel, 0, len(messages))
	for _, msg := range messages {
		messageModels = append(messageModels, r.toModel(msg))
	}

	if err := db.GetTxFromContext(ctx, r.db).CreateInBatches(messageModels, 500).Error; err != nil {
		r.logger.Errorw("failed to create campaign messages", "error", err, "count", len(messages))
		return fmt.Errorf("failed to create campaign messages: %w", err)
	}

	for i, msg := range messages {
		if err := msg.SetID(messageModels[i].ID); err != nil {
			return err
		}
	}

	r.logger.Infow("campaign messages queued",
		"campaign_id", messages[0].CampaignID(),
		"count", len(messages),
	)
	return nil
}

func (r *CampaignMessageRepositoryImpl) Update(ctx context.Context, msg *campaign.Message) error {
	model := r.toModel(msg)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.CampaignMessageModel{}).
		Where("id = ?", msg.ID()).
		Updates(map[string]interface{}{
			"status":          model.Status,
			"attempts":        model.Attempts,
			"last_error":      model.LastError,
			"next_attempt_at": model.NextAttemptAt,
			"sent_at":         model.SentAt,
			"updated_at":      model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update campaign message", "error", result.Error, "message_id", msg.MessageID())
		return fmt.Errorf("failed to update campaign message: %w", result.Error)
	}

	return nil
}

// ClaimDue flips due queued rows to sending inside one transaction, with the
// rows locked, so concurrent dispatchers never claim the same message. The
// returned messages already carry the incremented attempt count.
func (r *CampaignMessageRepositoryImpl) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*campaign.Message, error) {
	var claimed []*models.CampaignMessageModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var due []*models.CampaignMessageModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ? AND next_attempt_at <= ?", string(campaign.MessageStatusQueued), now).
			Order("next_attempt_at ASC").
			Limit(limit).
			Find(&due).Error
		if err != nil {
			return err
		}
		if len(due) == 0 {
			return nil
		}

		ids := make([]uint, 0, len(due))
		for _, model := range due {
			ids = append(ids, model.ID)
		}

		err = tx.Model(&models.CampaignMessageModel{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"status":     string(campaign.MessageStatusSending),
				"attempts":   gorm.Expr("attempts + 1"),
				"updated_at": time.Now().UTC(),
			}).Error
		if err != nil {
			return err
		}

		for _, model := range due {
			model.Status = string(campaign.MessageStatusSending)
			model.Attempts++
		}
		claimed = due
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to claim due campaign messages", "error", err)
		return nil, fmt.Errorf("failed to claim due campaign messages: %w", err)
	}

	messages := make([]*campaign.Message, 0, len(claimed))
	for _, model := range claimed {
		msg, err := r.toEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to convert message model ID %d: %w", model.ID, err)
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

func (r *CampaignMessageRepositoryImpl) CountUndelivered(ctx context.Context, campaignID uint) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.CampaignMessageModel{}).
		Where("campaign_id = ? AND status IN ?", campaignID, []string{
			string(campaign.MessageStatusQueued),
			string(campaign.MessageStatusSending),
		}).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count undelivered messages", "error", err, "campaign_id", campaignID)
		return 0, fmt.Errorf("failed to count undelivered messages: %w", err)
	}

	return count, nil
}

func (r *CampaignMessageRepositoryImpl) DiscardQueued(ctx context.Context, campaignID uint) error {
	result := db.GetTxFromContext(ctx, r.db).
		Where("campaign_id = ? AND status = ?", campaignID, string(campaign.MessageStatusQueued)).
		Delete(&models.CampaignMessageModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to discard queued messages", "error", result.Error, "campaign_id", campaignID)
		return fmt.Errorf("failed to discard queued messages: %w", result.Error)
	}

	r.logger.Infow("queued campaign messages discarded",
		"campaign_id", campaignID,
		"count", result.RowsAffected,
	)
	return nil
}

func (r *CampaignMessageRepositoryImpl) toEntity(model *models.CampaignMessageModel) (*campaign.Message, error) {
	return campaign.ReconstructMessage(campaign.ReconstructMessageParams{
		DBID:          model.ID,
		MessageID:     model.MessageID,
		CampaignID:    model.CampaignID,
		MemberID:      model.MemberID,
		Email:         model.Email,
		Name:          model.Name,
		Status:        campaign.MessageStatus(model.Status),
		Attempts:      model.Attempts,
		LastError:     model.LastError,
		NextAttemptAt: model.NextAttemptAt,
		SentAt:        model.SentAt,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	})
}

func (r *CampaignMessageRepositoryImpl) toModel(msg *campaign.Message) *models.CampaignMessageModel {
	return &models.CampaignMessageModel{
		ID:            msg.ID(),
		MessageID:     msg.MessageID(),
		CampaignID:    msg.CampaignID(),
		MemberID:      msg.MemberID(),
		Email:         msg.Email(),
		Name:          msg.Name(),
		Status:        string(msg.Status()),
		Attempts:      msg.Attempts(),
		LastError:     msg.LastError(),
		NextAttemptAt: msg.NextAttemptAt(),
		SentAt:        msg.SentAt(),
		CreatedAt:     msg.CreatedAt(),
		UpdatedAt:     msg.UpdatedAt(),
	}
}
