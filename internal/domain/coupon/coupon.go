package coupon

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType distinguishes percentage coupons from fixed-amount coupons.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

func (t DiscountType) String() string {
	return string(t)
}

// ParseDiscountType parses and validates a discount type string.
func ParseDiscountType(value string) (DiscountType, error) {
	switch DiscountType(strings.ToLower(strings.TrimSpace(value))) {
	case DiscountTypePercentage:
		return DiscountTypePercentage, nil
	case DiscountTypeFixed:
		return DiscountTypeFixed, nil
	default:
		return "", fmt.Errorf("invalid discount type: %s", value)
	}
}

var hundred = decimal.NewFromInt(100)

// NormalizeCode uppercases and trims a coupon code. All lookups and storage
// go through this normalization.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Coupon is the coupon aggregate root.
type Coupon struct {
	id           uint
	code         string
	discountType DiscountType
	value        decimal.Decimal
	maxDiscount  *decimal.Decimal
	minPurchase  *decimal.Decimal
	validFrom    time.Time
	validUntil   time.Time
	maxUses      *uint
	currentUses  uint
	active       bool
	createdAt    time.Time
	updatedAt    time.Time
}

// Params carries the fields needed to create a new coupon.
type Params struct {
	Code         string
	DiscountType DiscountType
	Value        decimal.Decimal
	MaxDiscount  *decimal.Decimal
	MinPurchase  *decimal.Decimal
	ValidFrom    time.Time
	ValidUntil   time.Time
	MaxUses      *uint
}

// NewCoupon creates a new coupon.
func NewCoupon(p Params) (*Coupon, error) {
	code := NormalizeCode(p.Code)
	if code == "" {
		return nil, fmt.Errorf("coupon code is required")
	}

	switch p.DiscountType {
	case DiscountTypePercentage:
		if !p.Value.IsPositive() {
			return nil, fmt.Errorf("percentage value must be positive, got %s", p.Value)
		}
		if p.Value.GreaterThan(hundred) {
			return nil, fmt.Errorf("percentage value cannot exceed 100, got %s", p.Value)
		}
	case DiscountTypeFixed:
		if !p.Value.IsPositive() {
			return nil, fmt.Errorf("fixed discount value must be positive, got %s", p.Value)
		}
		if p.MaxDiscount != nil {
			return nil, fmt.Errorf("max discount cap only applies to percentage coupons")
		}
	default:
		return nil, fmt.Errorf("invalid discount type: %s", p.DiscountType)
	}

	if p.MaxDiscount != nil && !p.MaxDiscount.IsPositive() {
		return nil, fmt.Errorf("max discount must be positive")
	}
	if p.MinPurchase != nil && p.MinPurchase.IsNegative() {
		return nil, fmt.Errorf("minimum purchase cannot be negative")
	}
	if p.ValidFrom.IsZero() || p.ValidUntil.IsZero() {
		return nil, fmt.Errorf("validity window is required")
	}
	if !p.ValidUntil.After(p.ValidFrom) {
		return nil, fmt.Errorf("valid until must be after valid from")
	}
	if p.MaxUses != nil && *p.MaxUses == 0 {
		return nil, fmt.Errorf("max uses must be positive when set")
	}

	now := time.Now().UTC()
	return &Coupon{
		code:         code,
		discountType: p.DiscountType,
		value:        p.Value,
		maxDiscount:  p.MaxDiscount,
		minPurchase:  p.MinPurchase,
		validFrom:    p.ValidFrom,
		validUntil:   p.ValidUntil,
		maxUses:      p.MaxUses,
		currentUses:  0,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructParams carries all persisted fields of a coupon.
type ReconstructParams struct {
	ID           uint
	Code         string
	DiscountType DiscountType
	Value        decimal.Decimal
	MaxDiscount  *decimal.Decimal
	MinPurchase  *decimal.Decimal
	ValidFrom    time.Time
	ValidUntil   time.Time
	MaxUses      *uint
	CurrentUses  uint
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Reconstruct rebuilds a coupon from persistence.
func Reconstruct(p ReconstructParams) (*Coupon, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("coupon ID cannot be zero")
	}
	if p.Code == "" {
		return nil, fmt.Errorf("coupon code is required")
	}
	if p.DiscountType != DiscountTypePercentage && p.DiscountType != DiscountTypeFixed {
		return nil, fmt.Errorf("invalid discount type: %s", p.DiscountType)
	}

	return &Coupon{
		id:           p.ID,
		code:         p.Code,
		discountType: p.DiscountType,
		value:        p.Value,
		maxDiscount:  p.MaxDiscount,
		minPurchase:  p.MinPurchase,
		validFrom:    p.ValidFrom,
		validUntil:   p.ValidUntil,
		maxUses:      p.MaxUses,
		currentUses:  p.CurrentUses,
		active:       p.Active,
		createdAt:    p.CreatedAt,
		updatedAt:    p.UpdatedAt,
	}, nil
}

func (c *Coupon) ID() uint                      { return c.id }
func (c *Coupon) Code() string                  { return c.code }
func (c *Coupon) DiscountType() DiscountType    { return c.discountType }
func (c *Coupon) Value() decimal.Decimal        { return c.value }
func (c *Coupon) MaxDiscount() *decimal.Decimal { return c.maxDiscount }
func (c *Coupon) MinPurchase() *decimal.Decimal { return c.minPurchase }
func (c *Coupon) ValidFrom() time.Time          { return c.validFrom }
func (c *Coupon) ValidUntil() time.Time         { return c.validUntil }
func (c *Coupon) MaxUses() *uint                { return c.maxUses }
func (c *Coupon) CurrentUses() uint             { return c.currentUses }
func (c *Coupon) IsActive() bool                { return c.active }
func (c *Coupon) CreatedAt() time.Time          { return c.createdAt }
func (c *Coupon) UpdatedAt() time.Time          { return c.updatedAt }

// SetID sets the coupon ID (only for persistence layer use)
func (c *Coupon) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("coupon ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("coupon ID cannot be zero")
	}
	c.id = id
	return nil
}

// CheckUsable validates the coupon against a purchase amount at the given
// time, without consuming a redemption.
func (c *Coupon) CheckUsable(purchaseAmount decimal.Decimal, now time.Time) error {
	if !c.active {
		return ErrCouponInactive
	}
	if now.Before(c.validFrom) {
		return ErrCouponNotYetValid
	}
	if now.After(c.validUntil) {
		return ErrCouponExpired
	}
	if c.maxUses != nil && c.currentUses >= *c.maxUses {
		return ErrCouponExhausted
	}
	if c.minPurchase != nil && purchaseAmount.LessThan(*c.minPurchase) {
		return ErrMinPurchaseNotMet
	}
	return nil
}

// DiscountFor validates the coupon and computes the discount it grants on
// the given purchase amount. A percentage discount is capped at the coupon's
// max discount when set; a fixed discount never exceeds the purchase amount.
func (c *Coupon) DiscountFor(purchaseAmount decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	if err := c.CheckUsable(purchaseAmount, now); err != nil {
		return decimal.Zero, err
	}

	var discount decimal.Decimal
	switch c.discountType {
	case DiscountTypePercentage:
		discount = purchaseAmount.Mul(c.value).Div(hundred).Round(2)
		if c.maxDiscount != nil && discount.GreaterThan(*c.maxDiscount) {
			discount = *c.maxDiscount
		}
	case DiscountTypeFixed:
		discount = c.value
		if discount.GreaterThan(purchaseAmount) {
			discount = purchaseAmount
		}
	}

	return discount, nil
}

// Redeem consumes one use of the coupon. The caller must persist the coupon
// within the same transaction as the purchase that consumed it.
func (c *Coupon) Redeem() error {
	if c.maxUses != nil && c.currentUses >= *c.maxUses {
		return ErrCouponExhausted
	}
	c.currentUses++
	c.updatedAt = time.Now().UTC()
	return nil
}

// Deactivate makes the coupon unusable for future purchases.
func (c *Coupon) Deactivate() {
	if !c.active {
		return
	}
	c.active = false
	c.updatedAt = time.Now().UTC()
}

// Activate re-enables the coupon.
func (c *Coupon) Activate() {
	if c.active {
		return
	}
	c.active = true
	c.updatedAt = time.Now().UTC()
}
