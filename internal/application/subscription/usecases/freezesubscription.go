package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/kinetix-inc/kinetix/internal/domain/subscription"
	"github.com/kinetix-inc/kinetix/internal/shared/biztime"
	apperrors "github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type FreezeSubscriptionCommand struct {
	SubscriptionID uint
	Reason         string
	// Exactly one of Days and Until must be set.
	Days  *int
	Until *time.Time
}

type FreezeSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewFreezeSubscriptionUseCase(subscriptionRepo subscription.Repository, logger logger.Interface) *FreezeSubscriptionUseCase {
	return &FreezeSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *FreezeSubscriptionUseCase) Execute(ctx context.Context, cmd FreezeSubscriptionCommand) (*subscription.Subscription, error) {
	now := time.Now().UTC()

	days, err := resolveFreezeDays(cmd.Days, cmd.Until, now)
	if err != nil {
		return nil, err
	}

	sub, err := uc.subscriptionRepo.GetByID(ctx, cmd.SubscriptionID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, err
	}

	if err := sub.Freeze(cmd.Reason, days, now); err != nil {
		uc.logger.Warnw("freeze rejected", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.logger.Infow("subscription frozen",
		"subscription_id", sub.ID(),
		"days", days,
		"end_date", sub.EndDate(),
	)
	return sub, nil
}

// resolveFreezeDays turns the days-or-until input into a day count. Giving
// both or neither is rejected.
func resolveFreezeDays(days *int, until *time.Time, now time.Time) (int, error) {
	switch {
	case days != nil && until != nil:
		return 0, apperrors.NewValidationError("freeze days and freeze until are mutually exclusive")
	case days != nil:
		return *days, nil
	case until != nil:
		derived := biztime.DaysBetween(now, *until)
		if derived <= 0 {
			return 0, apperrors.NewValidationError("freeze until must be at least one day in the future")
		}
		return derived, nil
	default:
		return 0, apperrors.NewValidationError("either freeze days or freeze until is required")
	}
}
