package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/kinetix-inc/kinetix/internal/domain/member"
	"github.com/kinetix-inc/kinetix/internal/domain/subscription"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type RecordVisitCommand struct {
	MemberID uint
	// CheckedInAt defaults to now when zero.
	CheckedInAt time.Time
}

type RecordVisitResult struct {
	Visit        *subscription.Visit
	Subscription *subscription.Subscription
	// VisitsUsed counts visits on the subscription including this one.
	VisitsUsed int64
}

// RecordVisitUseCase checks a member in against their active subscription,
// enforcing the visit quota when the package has one.
type RecordVisitUseCase struct {
	memberRepo       member.Repository
	subscriptionRepo subscription.Repository
	visitRepo        subscription.VisitRepository
	logger           logger.Interface
}

func NewRecordVisitUseCase(
	memberRepo member.Repository,
	subscriptionRepo subscription.Repository,
	visitRepo subscription.VisitRepository,
	logger logger.Interface,
) *RecordVisitUseCase {
	return &RecordVisitUseCase{
		memberRepo:       memberRepo,
		subscriptionRepo: subscriptionRepo,
		visitRepo:        visitRepo,
		logger:           logger,
	}
}

func (uc *RecordVisitUseCase) Execute(ctx context.Context, cmd RecordVisitCommand) (*RecordVisitResult, error) {
	if _, err := uc.memberRepo.GetByID(ctx, cmd.MemberID); err != nil {
		uc.logger.Errorw("failed to get member", "error", err, "member_id", cmd.MemberID)
		return nil, err
	}

	sub, err := uc.subscriptionRepo.GetActiveByMember(ctx, cmd.MemberID)
	if err != nil {
		uc.logger.Warnw("no active subscription for check-in", "error", err, "member_id", cmd.MemberID)
		return nil, err
	}

	used, err := uc.visitRepo.CountBySubscription(ctx, sub.ID())
	if err != nil {
		uc.logger.Errorw("failed to count visits", "error", err, "subscription_id", sub.ID())
		return nil, fmt.Errorf("failed to count visits: %w", err)
	}

	if err := sub.CanCheckIn(int(used)); err != nil {
		uc.logger.Warnw("check-in rejected", "error", err, "member_id", cmd.MemberID, "subscription_id", sub.ID())
		return nil, err
	}

	visit, err := subscription.NewVisit(cmd.MemberID, sub.ID(), cmd.CheckedInAt)
	if err != nil {
		return nil, fmt.Errorf("invalid visit: %w", err)
	}

	if err := uc.visitRepo.Create(ctx, visit); err != nil {
		uc.logger.Errorw("failed to record visit", "error", err, "member_id", cmd.MemberID)
		return nil, fmt.Errorf("failed to record visit: %w", err)
	}

	uc.logger.Infow("visit recorded", "member_id", cmd.MemberID, "subscription_id", sub.ID(), "visits_used", used+1)
	return &RecordVisitResult{Visit: visit, Subscription: sub, VisitsUsed: used + 1}, nil
}
