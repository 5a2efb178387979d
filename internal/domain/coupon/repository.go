package coupon

import "context"

// Repository persists coupons.
type Repository interface {
	Create(ctx context.Context, coupon *Coupon) error
	Update(ctx context.Context, coupon *Coupon) error
	GetByID(ctx context.Context, id uint) (*Coupon, error)
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	// GetByCodeForUpdate locks the coupon row for the remainder of the
	// surrounding transaction. Redemption must go through this lookup so
	// concurrent purchases cannot over-redeem a near-exhausted coupon.
	GetByCodeForUpdate(ctx context.Context, code string) (*Coupon, error)
	List(ctx context.Context, offset, limit int, activeOnly bool) ([]*Coupon, int64, error)
	Delete(ctx context.Context, id uint) error
}
