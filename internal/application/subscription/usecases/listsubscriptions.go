package usecases

import (
	"context"
	"fmt"

	"github.com/kinetix-inc/kinetix/internal/domain/subscription"
	"github.com/kinetix-inc/kinetix/internal/domain/subscription/valueobjects"
	apperrors "github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
	"github.com/kinetix-inc/kinetix/internal/shared/utils"
)

type ListSubscriptionsQuery struct {
	Pagination utils.Pagination
	MemberID   *uint
	Status     string
}

type ListSubscriptionsResult struct {
	Subscriptions []*subscription.Subscription
	Total         int64
}

type ListSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewListSubscriptionsUseCase(subscriptionRepo subscription.Repository, logger logger.Interface) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, query ListSubscriptionsQuery) (*ListSubscriptionsResult, error) {
	filter := subscription.ListFilter{MemberID: query.MemberID}

	if query.Status != "" {
		status := valueobjects.Status(query.Status)
		if !valueobjects.ValidStatuses[status] {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid subscription status: %s", query.Status))
		}
		filter.Status = &status
	}

	subs, total, err := uc.subscriptionRepo.List(ctx, query.Pagination.Offset(), query.Pagination.PageSize, filter)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return &ListSubscriptionsResult{Subscriptions: subs, Total: total}, nil
}
