package usecases

import (
	"context"
	"fmt"

	"github.com/kinetix-inc/kinetix/internal/domain/campaign"
	apperrors "github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type CreateCampaignCommand struct {
	Name     string
	Subject  string
	Body     string
	Audience string
}

type CreateCampaignUseCase struct {
	campaignRepo campaign.Repository
	logger       logger.Interface
}

func NewCreateCampaignUseCase(campaignRepo campaign.Repository, logger logger.Interface) *CreateCampaignUseCase {
	return &CreateCampaignUseCase{
		campaignRepo: campaignRepo,
		logger:       logger,
	}
}

func (uc *CreateCampaignUseCase) Execute(ctx context.Context, cmd CreateCampaignCommand) (*campaign.Campaign, error) {
	audience, err := campaign.ParseAudience(cmd.Audience)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	c, err := campaign.NewCampaign(cmd.Name, cmd.Subject, cmd.Body, audience)
	if err != nil {
		uc.logger.Warnw("invalid campaign input", "error", err, "name", cmd.Name)
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.campaignRepo.Create(ctx, c); err != nil {
		uc.logger.Errorw("failed to create campaign", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	uc.logger.Infow("campaign created", "campaign_id", c.ID(), "name", c.Name(), "audience", c.Audience())
	return c, nil
}
