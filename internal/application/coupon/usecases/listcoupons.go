package usecases

import (
	"context"
	"fmt"

	"github.com/kinetix-inc/kinetix/internal/domain/coupon"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
	"github.com/kinetix-inc/kinetix/internal/shared/utils"
)

type ListCouponsQuery struct {
	Pagination utils.Pagination
	ActiveOnly bool
}

type ListCouponsResult struct {
	Coupons []*coupon.Coupon
	Total   int64
}

type ListCouponsUseCase struct {
	couponRepo coupon.Repository
	logger     logger.Interface
}

func NewListCouponsUseCase(couponRepo coupon.Repository, logger logger.Interface) *ListCouponsUseCase {
	return &ListCouponsUseCase{
		couponRepo: couponRepo,
		logger:     logger,
	}
}

func (uc *ListCouponsUseCase) Execute(ctx context.Context, query ListCouponsQuery) (*ListCouponsResult, error) {
	coupons, total, err := uc.couponRepo.List(ctx, query.Pagination.Offset(), query.Pagination.PageSize, query.ActiveOnly)
	if err != nil {
		uc.logger.Errorw("failed to list coupons", "error", err)
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}

	return &ListCouponsResult{Coupons: coupons, Total: total}, nil
}
