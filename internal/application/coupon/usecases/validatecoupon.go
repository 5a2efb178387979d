package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/domain/coupon"
	apperrors "github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type ValidateCouponQuery struct {
	Code           string
	PurchaseAmount decimal.Decimal
}

// ValidateCouponResult reports whether a coupon applies and what it would
// take off. Rejections carry a machine-readable reason instead of an error
// so the front desk can show it to the member.
type ValidateCouponResult struct {
	Valid          bool
	Reason         string
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
	Coupon         *coupon.Coupon
}

type ValidateCouponUseCase struct {
	couponRepo coupon.Repository
	logger     logger.Interface
}

func NewValidateCouponUseCase(couponRepo coupon.Repository, logger logger.Interface) *ValidateCouponUseCase {
	return &ValidateCouponUseCase{
		couponRepo: couponRepo,
		logger:     logger,
	}
}

func (uc *ValidateCouponUseCase) Execute(ctx context.Context, query ValidateCouponQuery) (*ValidateCouponResult, error) {
	code := coupon.NormalizeCode(query.Code)

	c, err := uc.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return &ValidateCouponResult{Valid: false, Reason: "coupon not found"}, nil
		}
		uc.logger.Errorw("failed to get coupon", "error", err, "code", code)
		return nil, err
	}

	discount, err := c.DiscountFor(query.PurchaseAmount, time.Now().UTC())
	if err != nil {
		reason := "coupon not usable"
		for _, known := range []error{
			coupon.ErrCouponInactive,
			coupon.ErrCouponNotYetValid,
			coupon.ErrCouponExpired,
			coupon.ErrCouponExhausted,
			coupon.ErrMinPurchaseNotMet,
		} {
			if errors.Is(err, known) {
				reason = known.Error()
				break
			}
		}
		return &ValidateCouponResult{Valid: false, Reason: reason, Coupon: c}, nil
	}

	final := query.PurchaseAmount.Sub(discount)
	if final.IsNegative() {
		final = decimal.Zero
	}

	return &ValidateCouponResult{
		Valid:          true,
		DiscountAmount: discount,
		FinalAmount:    final,
		Coupon:         c,
	}, nil
}
