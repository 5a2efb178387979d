package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinetix-inc/kinetix/internal/domain/catalog"
	"github.com/kinetix-inc/kinetix/internal/domain/coupon"
	"github.com/kinetix-inc/kinetix/internal/domain/pricing"
	"github.com/kinetix-inc/kinetix/internal/domain/subscription"
	apperrors "github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type upgradeFixture struct {
	uc          *UpgradeSubscriptionUseCase
	couponRepo  *memCouponRepo
	invoiceRepo *memInvoiceRepo
	sub         *subscription.Subscription
}

func newUpgradeFixture(t *testing.T) *upgradeFixture {
	t.Helper()

	subscriptionRepo := newMemSubscriptionRepo()
	packageRepo := &memPackageRepo{packages: map[uint]*catalog.Package{
		1: mustPackage(t, 1, "Monthly", 30, "300"),
		3: mustPackage(t, 3, "Premium", 30, "600"),
	}}
	couponRepo := newMemCouponRepo()
	invoiceRepo := &memInvoiceRepo{}

	sub, err := subscription.NewSubscription(subscription.NewSubscriptionParams{
		MemberID:     7,
		PackageID:    1,
		PackageName:  "Monthly",
		DurationDays: 30,
		StartDate:    time.Now().UTC().AddDate(0, 0, -10),
		TotalPrice:   decimal.RequireFromString("300"),
		FinalPrice:   decimal.RequireFromString("300"),
	})
	require.NoError(t, err)
	require.NoError(t, subscriptionRepo.Create(context.Background(), sub))

	uc := NewUpgradeSubscriptionUseCase(
		subscriptionRepo,
		packageRepo,
		couponRepo,
		invoiceRepo,
		newMemSequenceRepo(),
		newTestTxManager(t),
		logger.NewLogger(),
	)
	return &upgradeFixture{uc: uc, couponRepo: couponRepo, invoiceRepo: invoiceRepo, sub: sub}
}

func (f *upgradeFixture) addFixedCoupon(t *testing.T, code, amount string) *coupon.Coupon {
	t.Helper()
	now := time.Now().UTC()
	c, err := coupon.NewCoupon(coupon.Params{
		Code:         code,
		DiscountType: coupon.DiscountTypeFixed,
		Value:        decimal.RequireFromString(amount),
		ValidFrom:    now.Add(-time.Hour),
		ValidUntil:   now.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, f.couponRepo.Create(context.Background(), c))
	return c
}

func TestUpgradeSubscription_CouponAppliesToProratedDelta(t *testing.T) {
	f := newUpgradeFixture(t)
	c := f.addFixedCoupon(t, "UPGRADE50", "50")

	now := time.Now().UTC()
	remaining := f.sub.RemainingDays(now)
	delta := pricing.ProratedDelta(
		f.sub.TotalPrice(), f.sub.DurationDays(),
		decimal.RequireFromString("600"), 30,
		remaining,
	)
	require.True(t, delta.IsPositive())

	endBefore := f.sub.EndDate()
	code := "UPGRADE50"

	result, err := f.uc.Execute(context.Background(), UpgradeSubscriptionCommand{
		SubscriptionID: f.sub.ID(),
		PackageID:      3,
		CouponCode:     &code,
	})
	require.NoError(t, err)

	// The coupon comes off the prorated difference, not the new list price.
	want := delta.Sub(decimal.RequireFromString("50"))
	assert.True(t, result.DeltaAmount.Equal(want),
		"delta %s minus coupon should be %s, got %s", delta, want, result.DeltaAmount)

	assert.Equal(t, uint(1), c.CurrentUses(), "coupon redeemed inside the transaction")
	assert.Equal(t, uint(3), result.Subscription.PackageID())
	assert.True(t, result.Subscription.EndDate().Equal(endBefore), "upgrade never moves the end date")

	require.NotNil(t, result.Invoice)
	assert.True(t, result.Invoice.Total().Equal(want))
}

func TestUpgradeSubscription_UnknownCouponRejected(t *testing.T) {
	f := newUpgradeFixture(t)
	code := "NOPE"

	_, err := f.uc.Execute(context.Background(), UpgradeSubscriptionCommand{
		SubscriptionID: f.sub.ID(),
		PackageID:      3,
		CouponCode:     &code,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))

	assert.Empty(t, f.invoiceRepo.invoices, "no invoice on a failed upgrade")
}

func TestUpgradeSubscription_SamePackageRejected(t *testing.T) {
	f := newUpgradeFixture(t)

	_, err := f.uc.Execute(context.Background(), UpgradeSubscriptionCommand{
		SubscriptionID: f.sub.ID(),
		PackageID:      1,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}
