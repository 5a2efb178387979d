package usecases

import (
	"context"
	"fmt"

	"github.com/kinetix-inc/kinetix/internal/domain/coupon"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type DeactivateCouponUseCase struct {
	couponRepo coupon.Repository
	logger     logger.Interface
}

func NewDeactivateCouponUseCase(couponRepo coupon.Repository, logger logger.Interface) *DeactivateCouponUseCase {
	return &DeactivateCouponUseCase{
		couponRepo: couponRepo,
		logger:     logger,
	}
}

func (uc *DeactivateCouponUseCase) Execute(ctx context.Context, couponID uint) (*coupon.Coupon, error) {
	c, err := uc.couponRepo.GetByID(ctx, couponID)
	if err != nil {
		uc.logger.Errorw("failed to get coupon", "error", err, "coupon_id", couponID)
		return nil, err
	}

	c.Deactivate()

	if err := uc.couponRepo.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to deactivate coupon", "error", err, "coupon_id", couponID)
		return nil, fmt.Errorf("failed to deactivate coupon: %w", err)
	}

	uc.logger.Infow("coupon deactivated", "coupon_id", couponID, "code", c.Code())
	return c, nil
}
