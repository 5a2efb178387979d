// Package pricing computes payable amounts for subscription purchases.
//
// All stored and displayed prices are tax-inclusive. The VAT portion is
// extracted out of the final amount (final/1.15), never added on top of it.
package pricing

import (
	"github.com/shopspring/decimal"
)

// TaxRate is the fixed VAT rate already contained in every stored price.
var TaxRate = decimal.NewFromFloat(0.15)

var taxDivisor = decimal.NewFromInt(1).Add(TaxRate)

// Quote is the priced result of a purchase: the tax-inclusive final amount
// with its discount and extracted tax breakdown.
type Quote struct {
	ListPrice     decimal.Decimal
	DiscountTotal decimal.Decimal
	FinalPrice    decimal.Decimal
	BasePrice     decimal.Decimal
	TaxAmount     decimal.Decimal
}

// ExtractTax splits a tax-inclusive total into its untaxed base and tax
// portions. base + tax always equals the total exactly.
func ExtractTax(total decimal.Decimal) (base, tax decimal.Decimal) {
	if total.IsNegative() {
		total = decimal.Zero
	}
	base = total.Div(taxDivisor).Round(2)
	tax = total.Sub(base)
	return base, tax
}

// BuildQuote prices a purchase from a tax-inclusive list price. A coupon
// discount, when present, takes precedence over any manual discount; the
// two never stack. The final price is clamped at zero.
func BuildQuote(listPrice decimal.Decimal, manual Discount, couponDiscount decimal.Decimal) Quote {
	if listPrice.IsNegative() {
		listPrice = decimal.Zero
	}

	var discountTotal decimal.Decimal
	if couponDiscount.IsPositive() {
		discountTotal = couponDiscount
	} else {
		discountTotal = manual.AmountOff(listPrice)
	}

	if discountTotal.GreaterThan(listPrice) {
		discountTotal = listPrice
	}

	finalPrice := listPrice.Sub(discountTotal).Round(2)
	if finalPrice.IsNegative() {
		finalPrice = decimal.Zero
	}

	base, tax := ExtractTax(finalPrice)

	return Quote{
		ListPrice:     listPrice,
		DiscountTotal: discountTotal,
		FinalPrice:    finalPrice,
		BasePrice:     base,
		TaxAmount:     tax,
	}
}

// ProratedDelta computes the price difference owed when switching from one
// package to another with remainingDays left on the current term. Each
// package's daily rate is its tax-inclusive price over its full duration.
// The delta is clamped at zero: downgrades owe nothing and refund nothing.
func ProratedDelta(currentPrice decimal.Decimal, currentDurationDays int, newPrice decimal.Decimal, newDurationDays, remainingDays int) decimal.Decimal {
	if remainingDays <= 0 || currentDurationDays <= 0 || newDurationDays <= 0 {
		return decimal.Zero
	}

	days := decimal.NewFromInt(int64(remainingDays))
	currentRemaining := currentPrice.Div(decimal.NewFromInt(int64(currentDurationDays))).Mul(days)
	newRemaining := newPrice.Div(decimal.NewFromInt(int64(newDurationDays))).Mul(days)

	delta := newRemaining.Sub(currentRemaining).Round(2)
	if delta.IsNegative() {
		return decimal.Zero
	}
	return delta
}
