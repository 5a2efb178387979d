package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type discountKind int

const (
	discountNone discountKind = iota
	discountPercent
	discountFixed
)

// Discount is a manual discount applied at purchase time. It is a closed
// union: Percent(n), Fixed(n) or None. The constructors are the only way to
// build one, so an ambiguous percent-and-fixed combination cannot exist.
type Discount struct {
	kind  discountKind
	value decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// NoDiscount returns the zero discount.
func NoDiscount() Discount {
	return Discount{kind: discountNone}
}

// PercentDiscount creates a percentage discount. The percent must be greater
// than zero and at most 100.
func PercentDiscount(percent decimal.Decimal) (Discount, error) {
	if !percent.IsPositive() {
		return Discount{}, fmt.Errorf("discount percent must be positive, got %s", percent)
	}
	if percent.GreaterThan(hundred) {
		return Discount{}, fmt.Errorf("discount percent cannot exceed 100, got %s", percent)
	}
	return Discount{kind: discountPercent, value: percent}, nil
}

// FixedDiscount creates a fixed-amount discount. The amount must be positive.
func FixedDiscount(amount decimal.Decimal) (Discount, error) {
	if !amount.IsPositive() {
		return Discount{}, fmt.Errorf("discount amount must be positive, got %s", amount)
	}
	return Discount{kind: discountFixed, value: amount}, nil
}

// DiscountFromInput builds a Discount from optional percent/fixed request
// fields. Both set is rejected; zero or negative values mean no discount.
func DiscountFromInput(percent, fixed *decimal.Decimal) (Discount, error) {
	hasPercent := percent != nil && percent.IsPositive()
	hasFixed := fixed != nil && fixed.IsPositive()

	switch {
	case hasPercent && hasFixed:
		return Discount{}, fmt.Errorf("discount percent and discount amount are mutually exclusive")
	case hasPercent:
		return PercentDiscount(*percent)
	case hasFixed:
		return FixedDiscount(*fixed)
	default:
		return NoDiscount(), nil
	}
}

// IsZero reports whether the discount is None.
func (d Discount) IsZero() bool {
	return d.kind == discountNone
}

// AmountOff computes the monetary reduction this discount takes off the
// given price. The result is never negative and never exceeds the price.
func (d Discount) AmountOff(price decimal.Decimal) decimal.Decimal {
	if price.IsNegative() {
		return decimal.Zero
	}

	var off decimal.Decimal
	switch d.kind {
	case discountPercent:
		off = price.Mul(d.value).Div(hundred)
	case discountFixed:
		off = d.value
	default:
		return decimal.Zero
	}

	if off.GreaterThan(price) {
		return price
	}
	return off.Round(2)
}

// Percent returns the percent value and true when the discount is a
// percentage discount.
func (d Discount) Percent() (decimal.Decimal, bool) {
	if d.kind != discountPercent {
		return decimal.Zero, false
	}
	return d.value, true
}

// Fixed returns the fixed amount and true when the discount is a fixed
// discount.
func (d Discount) Fixed() (decimal.Decimal, bool) {
	if d.kind != discountFixed {
		return decimal.Zero, false
	}
	return d.value, true
}

func (d Discount) String() string {
	switch d.kind {
	case discountPercent:
		return d.value.String() + "%"
	case discountFixed:
		return d.value.String()
	default:
		return "none"
	}
}
