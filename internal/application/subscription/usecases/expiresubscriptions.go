package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/kinetix-inc/kinetix/internal/domain/subscription"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

const expireBatchSize = 200

// ExpireSubscriptionsUseCase marks overdue active subscriptions expired.
// Run daily by the scheduler; safe to run concurrently with normal traffic
// because only active rows past their end date are touched.
type ExpireSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewExpireSubscriptionsUseCase(subscriptionRepo subscription.Repository, logger logger.Interface) *ExpireSubscriptionsUseCase {
	return &ExpireSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute sweeps until no overdue rows remain and returns the number of
// subscriptions expired.
func (uc *ExpireSubscriptionsUseCase) Execute(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	expired := 0

	for {
		overdue, err := uc.subscriptionRepo.ListOverdue(ctx, now, expireBatchSize)
		if err != nil {
			return expired, fmt.Errorf("failed to list overdue subscriptions: %w", err)
		}
		if len(overdue) == 0 {
			break
		}

		for _, sub := range overdue {
			if err := sub.MarkExpired(); err != nil {
				uc.logger.Warnw("skipping non-expirable subscription", "error", err, "subscription_id", sub.ID())
				continue
			}
			if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
				return expired, fmt.Errorf("failed to expire subscription %d: %w", sub.ID(), err)
			}
			expired++
		}

		if len(overdue) < expireBatchSize {
			break
		}
	}

	if expired > 0 {
		uc.logger.Infow("expired overdue subscriptions", "count", expired)
	}
	return expired, nil
}
