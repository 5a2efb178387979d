package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/domain/coupon"
	"github.com/kinetix-inc/kinetix/internal/domain/pricing"
	apperrors "github.com/kinetix-inc/kinetix/internal/shared/errors"
)

// purchaseDiscounts carries the optional discount inputs of a purchase.
type purchaseDiscounts struct {
	DiscountPercent *decimal.Decimal
	DiscountAmount  *decimal.Decimal
	CouponCode      *string
}

// resolveQuote prices a purchase. When a coupon code is present it is
// loaded (locked when forUpdate, for redemption inside the surrounding
// transaction) and validated against the list price; the coupon discount
// then takes precedence over any manual discount.
func resolveQuote(
	ctx context.Context,
	couponRepo coupon.Repository,
	listPrice decimal.Decimal,
	d purchaseDiscounts,
	forUpdate bool,
	now time.Time,
) (pricing.Quote, *coupon.Coupon, error) {
	manual, err := pricing.DiscountFromInput(d.DiscountPercent, d.DiscountAmount)
	if err != nil {
		return pricing.Quote{}, nil, apperrors.NewValidationError(err.Error())
	}

	var c *coupon.Coupon
	couponDiscount := decimal.Zero

	if d.CouponCode != nil && *d.CouponCode != "" {
		code := coupon.NormalizeCode(*d.CouponCode)
		if forUpdate {
			c, err = couponRepo.GetByCodeForUpdate(ctx, code)
		} else {
			c, err = couponRepo.GetByCode(ctx, code)
		}
		if err != nil {
			return pricing.Quote{}, nil, err
		}

		couponDiscount, err = c.DiscountFor(listPrice, now)
		if err != nil {
			return pricing.Quote{}, nil, apperrors.NewValidationError(fmt.Sprintf("coupon %s: %s", code, err))
		}
	}

	return pricing.BuildQuote(listPrice, manual, couponDiscount), c, nil
}
