package pricing

import (
	"testing"

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

func TestExtractTax_SplitsInclusiveTotal(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		wantBase string
		wantTax  string
	}{
		{"round total", "115", "100", "15"},
		{"typical package price", "300", "260.87", "39.13"},
		{"zero", "0", "0", "0"},
		{"small amount", "1", "0.87", "0.13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, tax := ExtractTax(dec(tt.total))

			assert.True(t, base.Equal(dec(tt.wantBase)), "base = %s, want %s", base, tt.wantBase)
			assert.True(t, tax.Equal(dec(tt.wantTax)), "tax = %s, want %s", tax, tt.wantTax)
			assert.True(t, base.Add(tax).Equal(dec(tt.total)), "base + tax must equal total exactly")
		})
	}
}

func TestExtractTax_IsInclusiveNotAdditive(t *testing.T) {
	base, tax := ExtractTax(dec("115"))

	// Inclusive extraction: 115/1.15 = 100, tax 15.
	// Additive tax would have produced base 115 and tax 17.25.
	assert.True(t, base.Equal(dec("100")))
	assert.True(t, tax.Equal(dec("15")))
}

func TestBuildQuote_NoDiscount(t *testing.T) {
	q := BuildQuote(dec("500"), NoDiscount(), decimal.Zero)

	assert.True(t, q.FinalPrice.Equal(dec("500")))
	assert.True(t, q.DiscountTotal.IsZero())
	assert.True(t, q.BasePrice.Add(q.TaxAmount).Equal(q.FinalPrice))
}

func TestBuildQuote_PercentDiscount(t *testing.T) {
	d, err := PercentDiscount(dec("10"))
	require.NoError(t, err)

	q := BuildQuote(dec("500"), d, decimal.Zero)

	assert.True(t, q.DiscountTotal.Equal(dec("50")))
	assert.True(t, q.FinalPrice.Equal(dec("450")))
}

func TestBuildQuote_FixedDiscount(t *testing.T) {
	d, err := FixedDiscount(dec("120"))
	require.NoError(t, err)

	q := BuildQuote(dec("500"), d, decimal.Zero)

	assert.True(t, q.DiscountTotal.Equal(dec("120")))
	assert.True(t, q.FinalPrice.Equal(dec("380")))
}

func TestBuildQuote_CouponTakesPrecedenceOverManual(t *testing.T) {
	manual, err := FixedDiscount(dec("100"))
	require.NoError(t, err)

	q := BuildQuote(dec("500"), manual, dec("30"))

	// Coupon wins; the manual discount is not stacked on top.
	assert.True(t, q.DiscountTotal.Equal(dec("30")))
	assert.True(t, q.FinalPrice.Equal(dec("470")))
}

func TestBuildQuote_DiscountClampedAtZero(t *testing.T) {
	manual, err := FixedDiscount(dec("900"))
	require.NoError(t, err)

	q := BuildQuote(dec("500"), manual, decimal.Zero)

	assert.True(t, q.FinalPrice.IsZero(), "final price must clamp to zero, got %s", q.FinalPrice)
	assert.True(t, q.DiscountTotal.Equal(dec("500")), "discount cannot exceed the price")

	q = BuildQuote(dec("500"), NoDiscount(), dec("10000"))
	assert.True(t, q.FinalPrice.IsZero())
	assert.True(t, q.DiscountTotal.Equal(dec("500")))
}

func TestBuildQuote_TaxIdentityHolds(t *testing.T) {
	prices := []string{"0", "1", "99.99", "115", "300", "1234.56", "10000"}
	for _, p := range prices {
		q := BuildQuote(dec(p), NoDiscount(), decimal.Zero)
		assert.True(t, q.BasePrice.Add(q.TaxAmount).Equal(q.FinalPrice),
			"base %s + tax %s != final %s", q.BasePrice, q.TaxAmount, q.FinalPrice)
		assert.False(t, q.TaxAmount.IsNegative())
		assert.False(t, q.BasePrice.IsNegative())
	}
}

func TestPercentDiscount_Bounds(t *testing.T) {
	_, err := PercentDiscount(dec("0"))
	assert.Error(t, err)

	_, err = PercentDiscount(dec("-5"))
	assert.Error(t, err)

	_, err = PercentDiscount(dec("101"))
	assert.Error(t, err, "over-100 percent must be a hard validation error")

	d, err := PercentDiscount(dec("100"))
	require.NoError(t, err)
	assert.True(t, d.AmountOff(dec("200")).Equal(dec("200")))
}

func TestFixedDiscount_Bounds(t *testing.T) {
	_, err := FixedDiscount(dec("0"))
	assert.Error(t, err)

	_, err = FixedDiscount(dec("-1"))
	assert.Error(t, err)
}

func TestDiscountFromInput(t *testing.T) {
	ten := dec("10")
	fifty := dec("50")
	zero := decimal.Zero

	t.Run("both set is rejected", func(t *testing.T) {
		_, err := DiscountFromInput(&ten, &fifty)
		assert.Error(t, err)
	})

	t.Run("zero values mean no discount", func(t *testing.T) {
		d, err := DiscountFromInput(&zero, nil)
		require.NoError(t, err)
		assert.True(t, d.IsZero())
	})

	t.Run("nil means no discount", func(t *testing.T) {
		d, err := DiscountFromInput(nil, nil)
		require.NoError(t, err)
		assert.True(t, d.IsZero())
	})

	t.Run("percent", func(t *testing.T) {
		d, err := DiscountFromInput(&ten, nil)
		require.NoError(t, err)
		pct, ok := d.Percent()
		assert.True(t, ok)
		assert.True(t, pct.Equal(ten))
	})

	t.Run("fixed", func(t *testing.T) {
		d, err := DiscountFromInput(nil, &fifty)
		require.NoError(t, err)
		amt, ok := d.Fixed()
		assert.True(t, ok)
		assert.True(t, amt.Equal(fifty))
	})
}

func TestProratedDelta(t *testing.T) {
	// 10 days remaining on a 300/30d package, upgrading to 900/30d:
	// old remaining value 100, new remaining value 300, delta 200.
	delta := ProratedDelta(dec("300"), 30, dec("900"), 30, 10)
	assert.True(t, delta.Equal(dec("200")), "delta = %s, want 200", delta)
}

func TestProratedDelta_DowngradeClampsToZero(t *testing.T) {
	delta := ProratedDelta(dec("900"), 30, dec("300"), 30, 10)
	assert.True(t, delta.IsZero())
}

func TestProratedDelta_NoRemainingDays(t *testing.T) {
	assert.True(t, ProratedDelta(dec("300"), 30, dec("900"), 30, 0).IsZero())
	assert.True(t, ProratedDelta(dec("300"), 30, dec("900"), 30, -3).IsZero())
}
