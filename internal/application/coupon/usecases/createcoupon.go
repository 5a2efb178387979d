package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/domain/coupon"
	"github.com/kinetix-inc/kinetix/internal/shared/id"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type CreateCouponCommand struct {
	// Code is optional; a human-friendly one is generated when empty.
	Code         string
	DiscountType string
	Value        decimal.Decimal
	MaxDiscount  *decimal.Decimal
	MinPurchase  *decimal.Decimal
	ValidFrom    time.Time
	ValidUntil   time.Time
	MaxUses      *uint
}

type CreateCouponUseCase struct {
	couponRepo coupon.Repository
	logger     logger.Interface
}

func NewCreateCouponUseCase(couponRepo coupon.Repository, logger logger.Interface) *CreateCouponUseCase {
	return &CreateCouponUseCase{
		couponRepo: couponRepo,
		logger:     logger,
	}
}

func (uc *CreateCouponUseCase) Execute(ctx context.Context, cmd CreateCouponCommand) (*coupon.Coupon, error) {
	discountType, err := coupon.ParseDiscountType(cmd.DiscountType)
	if err != nil {
		return nil, err
	}

	code := cmd.Code
	if code == "" {
		code, err = id.GenerateCode()
		if err != nil {
			uc.logger.Errorw("failed to generate coupon code", "error", err)
			return nil, fmt.Errorf("failed to generate coupon code: %w", err)
		}
	}

	c, err := coupon.NewCoupon(coupon.Params{
		Code:         code,
		DiscountType: discountType,
		Value:        cmd.Value,
		MaxDiscount:  cmd.MaxDiscount,
		MinPurchase:  cmd.MinPurchase,
		ValidFrom:    cmd.ValidFrom,
		ValidUntil:   cmd.ValidUntil,
		MaxUses:      cmd.MaxUses,
	})
	if err != nil {
		uc.logger.Warnw("invalid coupon input", "error", err, "code", code)
		return nil, fmt.Errorf("invalid coupon: %w", err)
	}

	if err := uc.couponRepo.Create(ctx, c); err != nil {
		uc.logger.Errorw("failed to create coupon", "error", err, "code", c.Code())
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	uc.logger.Infow("coupon created", "coupon_id", c.ID(), "code", c.Code(), "type", c.DiscountType())
	return c, nil
}
