package usecases

import (
	"context"

	"github.com/kinetix-inc/kinetix/internal/domain/member"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type GetMemberUseCase struct {
	memberRepo member.Repository
	logger     logger.Interface
}

func NewGetMemberUseCase(memberRepo member.Repository, logger logger.Interface) *GetMemberUseCase {
	return &GetMemberUseCase{
		memberRepo: memberRepo,
		logger:     logger,
	}
}

func (uc *GetMemberUseCase) Execute(ctx context.Context, memberID uint) (*member.Member, error) {
	m, err := uc.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		uc.logger.Errorw("failed to get member", "error", err, "member_id", memberID)
		return nil, err
	}
	return m, nil
}
