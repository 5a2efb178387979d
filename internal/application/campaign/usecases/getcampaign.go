package usecases

import (
	"context"

	"github.com/kinetix-inc/kinetix/internal/domain/campaign"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type GetCampaignUseCase struct {
	campaignRepo campaign.Repository
	logger       logger.Interface
}

func NewGetCampaignUseCase(campaignRepo campaign.Repository, logger logger.Interface) *GetCampaignUseCase {
	return &GetCampaignUseCase{
		campaignRepo: campaignRepo,
		logger:       logger,
	}
}

func (uc *GetCampaignUseCase) Execute(ctx context.Context, campaignID uint) (*campaign.Campaign, error) {
	c, err := uc.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		uc.logger.Errorw("failed to get campaign", "error", err, "campaign_id", campaignID)
		return nil, err
	}
	return c, nil
}
