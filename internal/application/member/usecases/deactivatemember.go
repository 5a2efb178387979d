package usecases

import (
	"context"
	"fmt"

	"github.com/kinetix-inc/kinetix/internal/domain/member"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type DeactivateMemberUseCase struct {
	memberRepo member.Repository
	logger     logger.Interface
}

func NewDeactivateMemberUseCase(memberRepo member.Repository, logger logger.Interface) *DeactivateMemberUseCase {
	return &DeactivateMemberUseCase{
		memberRepo: memberRepo,
		logger:     logger,
	}
}

func (uc *DeactivateMemberUseCase) Execute(ctx context.Context, memberID uint) (*member.Member, error) {
	m, err := uc.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		uc.logger.Errorw("failed to get member", "error", err, "member_id", memberID)
		return nil, err
	}

	m.Deactivate()

	if err := uc.memberRepo.Update(ctx, m); err != nil {
		uc.logger.Errorw("failed to deactivate member", "error", err, "member_id", memberID)
		return nil, fmt.Errorf("failed to deactivate member: %w", err)
	}

	uc.logger.Infow("member deactivated", "member_id", memberID)
	return m, nil
}
