package usecases

import (
	"context"
	"fmt"

	"github.com/kinetix-inc/kinetix/internal/domain/campaign"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	apperrors "github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

// CancelCampaignUseCase stops a campaign and discards its undelivered
// queue rows in the same transaction.
type CancelCampaignUseCase struct {
	campaignRepo campaign.Repository
	messageRepo  campaign.MessageRepository
	txMgr        *db.TransactionManager
	logger       logger.Interface
}

func NewCancelCampaignUseCase(
	campaignRepo campaign.Repository,
	messageRepo campaign.MessageRepository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *CancelCampaignUseCase {
	return &CancelCampaignUseCase{
		campaignRepo: campaignRepo,
		messageRepo:  messageRepo,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *CancelCampaignUseCase) Execute(ctx context.Context, campaignID uint) (*campaign.Campaign, error) {
	c, err := uc.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		uc.logger.Errorw("failed to get campaign", "error", err, "campaign_id", campaignID)
		return nil, err
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := c.Cancel(); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		if err := uc.campaignRepo.Update(txCtx, c); err != nil {
			return fmt.Errorf("failed to update campaign: %w", err)
		}
		if err := uc.messageRepo.DiscardQueued(txCtx, campaignID); err != nil {
			return fmt.Errorf("failed to discard queued messages: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to cancel campaign", "error", err, "campaign_id", campaignID)
		return nil, err
	}

	uc.logger.Infow("campaign cancelled", "campaign_id", campaignID)
	return c, nil
}
