package coupon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func uintPtr(v uint) *uint {
	return &v
}

func validParams() Params {
	now := time.Now().UTC()
	return Params{
		Code:         "summer25",
		DiscountType: DiscountTypePercentage,
		Value:        dec("25"),
		ValidFrom:    now.Add(-time.Hour),
		ValidUntil:   now.Add(30 * 24 * time.Hour),
	}
}

func newTestCoupon(t *testing.T, mutate func(*Params)) *Coupon {
	t.Helper()
	p := validParams()
	if mutate != nil {
		mutate(&p)
	}
	c, err := NewCoupon(p)
	require.NoError(t, err)
	return c
}

func TestNewCoupon_NormalizesCode(t *testing.T) {
	c := newTestCoupon(t, func(p *Params) { p.Code = "  summer25 " })
	assert.Equal(t, "SUMMER25", c.Code())
	assert.True(t, c.IsActive())
	assert.Equal(t, uint(0), c.CurrentUses())
}

func TestNewCoupon_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"empty code", func(p *Params) { p.Code = "  " }},
		{"zero percentage", func(p *Params) { p.Value = dec("0") }},
		{"negative percentage", func(p *Params) { p.Value = dec("-10") }},
		{"percentage above 100", func(p *Params) { p.Value = dec("150") }},
		{"zero fixed value", func(p *Params) {
			p.DiscountType = DiscountTypeFixed
			p.Value = dec("0")
		}},
		{"max discount on fixed coupon", func(p *Params) {
			p.DiscountType = DiscountTypeFixed
			p.Value = dec("50")
			p.MaxDiscount = decPtr("20")
		}},
		{"unknown discount type", func(p *Params) { p.DiscountType = "bogus" }},
		{"inverted validity window", func(p *Params) {
			p.ValidFrom = p.ValidUntil.Add(time.Hour)
		}},
		{"zero max uses", func(p *Params) { p.MaxUses = uintPtr(0) }},
		{"negative min purchase", func(p *Params) { p.MinPurchase = decPtr("-1") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			_, err := NewCoupon(p)
			assert.Error(t, err)
		})
	}
}

func TestDiscountFor_Percentage(t *testing.T) {
	c := newTestCoupon(t, nil) // 25%

	got, err := c.DiscountFor(dec("400"), time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("100")), "discount = %s, want 100", got)
}

func TestDiscountFor_PercentageCappedAtMaxDiscount(t *testing.T) {
	c := newTestCoupon(t, func(p *Params) { p.MaxDiscount = decPtr("50") })

	got, err := c.DiscountFor(dec("400"), time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("50")), "discount = %s, want capped 50", got)

	// Below the cap the raw percentage applies.
	got, err = c.DiscountFor(dec("100"), time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("25")))
}

func TestDiscountFor_FixedNeverExceedsPurchase(t *testing.T) {
	c := newTestCoupon(t, func(p *Params) {
		p.DiscountType = DiscountTypeFixed
		p.Value = dec("150")
	})

	got, err := c.DiscountFor(dec("100"), time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("100")), "fixed discount must clamp to purchase amount")

	got, err = c.DiscountFor(dec("500"), time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("150")))
}

func TestDiscountFor_ValidityWindow(t *testing.T) {
	now := time.Now().UTC()

	future := newTestCoupon(t, func(p *Params) {
		p.ValidFrom = now.Add(time.Hour)
		p.ValidUntil = now.Add(48 * time.Hour)
	})
	_, err := future.DiscountFor(dec("100"), now)
	assert.ErrorIs(t, err, ErrCouponNotYetValid)

	expired := newTestCoupon(t, func(p *Params) {
		p.ValidFrom = now.Add(-48 * time.Hour)
		p.ValidUntil = now.Add(-time.Hour)
	})
	_, err = expired.DiscountFor(dec("100"), now)
	assert.ErrorIs(t, err, ErrCouponExpired)
}

func TestDiscountFor_Inactive(t *testing.T) {
	c := newTestCoupon(t, nil)
	c.Deactivate()

	_, err := c.DiscountFor(dec("100"), time.Now().UTC())
	assert.ErrorIs(t, err, ErrCouponInactive)

	c.Activate()
	_, err = c.DiscountFor(dec("100"), time.Now().UTC())
	assert.NoError(t, err)
}

func TestDiscountFor_MinPurchase(t *testing.T) {
	c := newTestCoupon(t, func(p *Params) { p.MinPurchase = decPtr("200") })

	_, err := c.DiscountFor(dec("199.99"), time.Now().UTC())
	assert.ErrorIs(t, err, ErrMinPurchaseNotMet)

	_, err = c.DiscountFor(dec("200"), time.Now().UTC())
	assert.NoError(t, err)
}

func TestRedeem_TracksUses(t *testing.T) {
	c := newTestCoupon(t, func(p *Params) { p.MaxUses = uintPtr(2) })

	require.NoError(t, c.Redeem())
	require.NoError(t, c.Redeem())
	assert.Equal(t, uint(2), c.CurrentUses())

	err := c.Redeem()
	assert.ErrorIs(t, err, ErrCouponExhausted)
	assert.Equal(t, uint(2), c.CurrentUses(), "failed redeem must not increment")
}

func TestDiscountFor_Exhausted(t *testing.T) {
	c := newTestCoupon(t, func(p *Params) { p.MaxUses = uintPtr(1) })
	require.NoError(t, c.Redeem())

	_, err := c.DiscountFor(dec("100"), time.Now().UTC())
	assert.ErrorIs(t, err, ErrCouponExhausted)
}

func TestParseDiscountType(t *testing.T) {
	got, err := ParseDiscountType(" Percentage ")
	require.NoError(t, err)
	assert.Equal(t, DiscountTypePercentage, got)

	got, err = ParseDiscountType("FIXED")
	require.NoError(t, err)
	assert.Equal(t, DiscountTypeFixed, got)

	_, err = ParseDiscountType("half-off")
	assert.Error(t, err)
}
