package usecases

import (
	"context"
	"fmt"

	"github.com/kinetix-inc/kinetix/internal/domain/campaign"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
	"github.com/kinetix-inc/kinetix/internal/shared/utils"
)

type ListCampaignsResult struct {
	Campaigns []*campaign.Campaign
	Total     int64
}

type ListCampaignsUseCase struct {
	campaignRepo campaign.Repository
	logger       logger.Interface
}

func NewListCampaignsUseCase(campaignRepo campaign.Repository, logger logger.Interface) *ListCampaignsUseCase {
	return &ListCampaignsUseCase{
		campaignRepo: campaignRepo,
		logger:       logger,
	}
}

func (uc *ListCampaignsUseCase) Execute(ctx context.Context, pagination utils.Pagination) (*ListCampaignsResult, error) {
	campaigns, total, err := uc.campaignRepo.List(ctx, pagination.Offset(), pagination.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list campaigns", "error", err)
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	return &ListCampaignsResult{Campaigns: campaigns, Total: total}, nil
}
