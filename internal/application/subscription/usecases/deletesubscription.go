package usecases

import (
	"context"
	"fmt"

	"github.com/kinetix-inc/kinetix/internal/domain/subscription"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

// DeleteSubscriptionUseCase hard-deletes a subscription row. Intended for
// data entry mistakes, not for ending service; Cancel is the business
// operation for that.
type DeleteSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	txMgr            *db.TransactionManager
	logger           logger.Interface
}

func NewDeleteSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *DeleteSubscriptionUseCase {
	return &DeleteSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		txMgr:            txMgr,
		logger:           logger,
	}
}

func (uc *DeleteSubscriptionUseCase) Execute(ctx context.Context, subscriptionID uint) error {
	if _, err := uc.subscriptionRepo.GetByID(ctx, subscriptionID); err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_id", subscriptionID)
		return err
	}

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.subscriptionRepo.Delete(txCtx, subscriptionID); err != nil {
			return fmt.Errorf("failed to delete subscription: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to delete subscription", "error", err, "subscription_id", subscriptionID)
		return err
	}

	uc.logger.Infow("subscription deleted", "subscription_id", subscriptionID)
	return nil
}
