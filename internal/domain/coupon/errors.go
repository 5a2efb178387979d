package coupon

import "errors"

var (
	ErrCouponInactive    = errors.New("coupon is not active")
	ErrCouponNotYetValid = errors.New("coupon is not valid yet")
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrCouponExhausted   = errors.New("coupon has reached its maximum uses")
	ErrMinPurchaseNotMet = errors.New("purchase amount is below the coupon minimum")
)
