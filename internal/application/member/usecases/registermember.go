package usecases

import (
	"context"
	"fmt"

	"github.com/kinetix-inc/kinetix/internal/domain/member"
	"github.com/kinetix-inc/kinetix/internal/domain/sequence"
	"github.com/kinetix-inc/kinetix/internal/shared/constants"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type RegisterMemberCommand struct {
	Name  string
	Email string
	Phone string
}

// RegisterMemberUseCase registers a member. The membership number comes
// from the shared sequence inside the same transaction as the insert, so
// numbers are unique without a retry loop.
type RegisterMemberUseCase struct {
	memberRepo   member.Repository
	sequenceRepo sequence.Repository
	txMgr        *db.TransactionManager
	logger       logger.Interface
}

func NewRegisterMemberUseCase(
	memberRepo member.Repository,
	sequenceRepo sequence.Repository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *RegisterMemberUseCase {
	return &RegisterMemberUseCase{
		memberRepo:   memberRepo,
		sequenceRepo: sequenceRepo,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *RegisterMemberUseCase) Execute(ctx context.Context, cmd RegisterMemberCommand) (*member.Member, error) {
	var registered *member.Member

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		seq, err := uc.sequenceRepo.Next(txCtx, constants.SequenceMember)
		if err != nil {
			return fmt.Errorf("failed to allocate member number: %w", err)
		}

		m, err := member.NewMember(member.FormatNumber(seq), cmd.Name, cmd.Email, cmd.Phone)
		if err != nil {
			return fmt.Errorf("invalid member: %w", err)
		}

		if err := uc.memberRepo.Create(txCtx, m); err != nil {
			return fmt.Errorf("failed to create member: %w", err)
		}

		registered = m
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to register member", "error", err, "name", cmd.Name)
		return nil, err
	}

	uc.logger.Infow("member registered", "member_id", registered.ID(), "member_number", registered.MemberNumber())
	return registered, nil
}
