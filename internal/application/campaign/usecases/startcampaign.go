package usecases

import (
	"context"
	"fmt"

	"github.com/kinetix-inc/kinetix/internal/domain/campaign"
	"github.com/kinetix-inc/kinetix/internal/domain/member"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	apperrors "github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

// StartCampaignUseCase resolves the audience and enqueues one durable
// message per recipient. Flipping the campaign to running and inserting
// the queue rows happen in one transaction, so a crash either leaves the
// campaign untouched or fully queued. Actual delivery is the dispatcher's
// job.
type StartCampaignUseCase struct {
	campaignRepo campaign.Repository
	messageRepo  campaign.MessageRepository
	memberRepo   member.Repository
	txMgr        *db.TransactionManager
	logger       logger.Interface
}

func NewStartCampaignUseCase(
	campaignRepo campaign.Repository,
	messageRepo campaign.MessageRepository,
	memberRepo member.Repository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *StartCampaignUseCase {
	return &StartCampaignUseCase{
		campaignRepo: campaignRepo,
		messageRepo:  messageRepo,
		memberRepo:   memberRepo,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *StartCampaignUseCase) Execute(ctx context.Context, campaignID uint) (*campaign.Campaign, error) {
	c, err := uc.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		uc.logger.Errorw("failed to get campaign", "error", err, "campaign_id", campaignID)
		return nil, err
	}

	contacts, err := uc.memberRepo.ListContacts(ctx, c.Audience() == campaign.AudienceActive)
	if err != nil {
		uc.logger.Errorw("failed to resolve campaign audience", "error", err, "campaign_id", campaignID)
		return nil, fmt.Errorf("failed to resolve audience: %w", err)
	}

	messages := make([]*campaign.Message, 0, len(contacts))
	for _, contact := range contacts {
		msg, err := campaign.NewMessage(campaignID, contact.MemberID, contact.Email, contact.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to build message: %w", err)
		}
		messages = append(messages, msg)
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := c.Start(len(messages)); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		if err := uc.campaignRepo.Update(txCtx, c); err != nil {
			return fmt.Errorf("failed to update campaign: %w", err)
		}
		if err := uc.messageRepo.CreateBatch(txCtx, messages); err != nil {
			return fmt.Errorf("failed to enqueue messages: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to start campaign", "error", err, "campaign_id", campaignID)
		return nil, err
	}

	uc.logger.Infow("campaign started", "campaign_id", campaignID, "recipients", len(messages))
	return c, nil
}
