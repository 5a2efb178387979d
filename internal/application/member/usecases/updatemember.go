package usecases

import (
	"context"
	"fmt"

	"github.com/kinetix-inc/kinetix/internal/domain/member"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type UpdateMemberCommand struct {
	MemberID uint
	Name     string
	Email    string
	Phone    string
	Notes    string
}

type UpdateMemberUseCase struct {
	memberRepo member.Repository
	logger     logger.Interface
}

func NewUpdateMemberUseCase(memberRepo member.Repository, logger logger.Interface) *UpdateMemberUseCase {
	return &UpdateMemberUseCase{
		memberRepo: memberRepo,
		logger:     logger,
	}
}

func (uc *UpdateMemberUseCase) Execute(ctx context.Context, cmd UpdateMemberCommand) (*member.Member, error) {
	m, err := uc.memberRepo.GetByID(ctx, cmd.MemberID)
	if err != nil {
		uc.logger.Errorw("failed to get member", "error", err, "member_id", cmd.MemberID)
		return nil, err
	}

	if err := m.UpdateContact(cmd.Name, cmd.Email, cmd.Phone, cmd.Notes); err != nil {
		uc.logger.Warnw("invalid member update", "error", err, "member_id", cmd.MemberID)
		return nil, fmt.Errorf("invalid member: %w", err)
	}

	if err := uc.memberRepo.Update(ctx, m); err != nil {
		uc.logger.Errorw("failed to update member", "error", err, "member_id", cmd.MemberID)
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	uc.logger.Infow("member updated", "member_id", m.ID())
	return m, nil
}
