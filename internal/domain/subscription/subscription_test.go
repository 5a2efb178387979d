package subscription

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinetix-inc/kinetix/internal/domain/subscription/valueobjects"
	"github.com/kinetix-inc/kinetix/internal/shared/biztime"
)

func newActiveSubscription(t *testing.T) *Subscription {
	t.Helper()

	sub, err := NewSubscription(NewSubscriptionParams{
		MemberID:     1,
		PackageID:    2,
		PackageName:  "Monthly",
		DurationDays: 30,
		StartDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalPrice:   decimal.NewFromInt(300),
		FinalPrice:   decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	return sub
}

func TestNewSubscription(t *testing.T) {
	sub := newActiveSubscription(t)

	assert.Equal(t, valueobjects.StatusActive, sub.Status())
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), sub.EndDate())
	assert.Equal(t, sub.EndDate(), sub.OriginalEndDate())
	assert.Equal(t, 0, sub.FrozenDays())
}

func TestNewSubscription_InvoiceOnlyStartsPending(t *testing.T) {
	sub, err := NewSubscription(NewSubscriptionParams{
		MemberID:     1,
		PackageID:    2,
		PackageName:  "Monthly",
		DurationDays: 30,
		StartDate:    time.Now().UTC(),
		TotalPrice:   decimal.NewFromInt(300),
		FinalPrice:   decimal.NewFromInt(300),
		InvoiceOnly:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, valueobjects.StatusPending, sub.Status())
	require.NoError(t, sub.Activate())
	assert.Equal(t, valueobjects.StatusActive, sub.Status())
}

func TestFreeze_ExtendsEndDate(t *testing.T) {
	sub := newActiveSubscription(t)
	endBefore := sub.EndDate()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, sub.Freeze("travel", 10, now))

	assert.Equal(t, valueobjects.StatusFrozen, sub.Status())
	assert.Equal(t, biztime.AddDays(endBefore, 10), sub.EndDate())
	assert.Equal(t, endBefore, sub.OriginalEndDate(), "pre-freeze end date is preserved")
	assert.Equal(t, 10, sub.FrozenDays())
	assert.Equal(t, "travel", sub.FrozenReason())
	require.NotNil(t, sub.FrozenEndDate())
	assert.Equal(t, biztime.AddDays(now, 10), *sub.FrozenEndDate())
}

func TestUnfreeze_RestoresOriginalEndDate(t *testing.T) {
	sub := newActiveSubscription(t)
	endBefore := sub.EndDate()

	require.NoError(t, sub.Freeze("injury", 14, time.Now().UTC()))
	require.NoError(t, sub.Unfreeze())

	assert.Equal(t, valueobjects.StatusActive, sub.Status())
	assert.Equal(t, endBefore, sub.EndDate(), "unused frozen days are discarded")
	assert.Empty(t, sub.FrozenReason())
	assert.Nil(t, sub.FrozenStartDate())
	assert.Nil(t, sub.FrozenEndDate())
	assert.Equal(t, 0, sub.FrozenDays())
}

func TestFreeze_Legality(t *testing.T) {
	now := time.Now().UTC()

	sub := newActiveSubscription(t)
	require.NoError(t, sub.Freeze("travel", 5, now))
	assert.ErrorIs(t, sub.Freeze("again", 5, now), ErrAlreadyFrozen)

	sub = newActiveSubscription(t)
	assert.Error(t, sub.Freeze("travel", 0, now), "zero days rejected")
	assert.Error(t, sub.Freeze("travel", -3, now), "negative days rejected")
	assert.Error(t, sub.Freeze("  ", 5, now), "blank reason rejected")

	require.NoError(t, sub.Cancel())
	assert.ErrorIs(t, sub.Freeze("travel", 5, now), ErrNotActive)
}

func TestUnfreeze_RequiresFrozen(t *testing.T) {
	sub := newActiveSubscription(t)
	assert.ErrorIs(t, sub.Unfreeze(), ErrNotFrozen)
}

func TestApplyUpgrade_MutatesInPlace(t *testing.T) {
	sub := newActiveSubscription(t)
	endBefore := sub.EndDate()
	quota := 60

	err := sub.ApplyUpgrade(UpgradeParams{
		PackageID:     5,
		PackageName:   "VIP Monthly",
		DurationDays:  30,
		VisitQuota:    &quota,
		VIP:           true,
		DeltaTotal:    decimal.NewFromInt(200),
		DeltaDiscount: decimal.Zero,
		DeltaFinal:    decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	assert.Equal(t, uint(5), sub.PackageID())
	assert.Equal(t, "VIP Monthly", sub.PackageName())
	assert.True(t, sub.IsVIP())
	assert.True(t, sub.TotalPrice().Equal(decimal.NewFromInt(500)))
	assert.True(t, sub.FinalPrice().Equal(decimal.NewFromInt(500)))
	assert.Equal(t, endBefore, sub.EndDate(), "upgrade never moves the end date")
}

func TestApplyUpgrade_RequiresActive(t *testing.T) {
	sub := newActiveSubscription(t)
	require.NoError(t, sub.Freeze("travel", 5, time.Now().UTC()))

	err := sub.ApplyUpgrade(UpgradeParams{PackageID: 5, DeltaFinal: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestTerminalStatusesRejectTransitions(t *testing.T) {
	sub := newActiveSubscription(t)
	require.NoError(t, sub.MarkExpired())
	assert.ErrorIs(t, sub.Cancel(), ErrTerminalStatus)
	assert.ErrorIs(t, sub.Activate(), ErrTerminalStatus)

	sub = newActiveSubscription(t)
	require.NoError(t, sub.Cancel())
	assert.ErrorIs(t, sub.MarkExpired(), ErrTerminalStatus)
}

func TestIsOverdue(t *testing.T) {
	sub := newActiveSubscription(t)

	assert.False(t, sub.IsOverdue(sub.EndDate().Add(-time.Hour)))
	assert.True(t, sub.IsOverdue(sub.EndDate().Add(time.Hour)))

	require.NoError(t, sub.Cancel())
	assert.False(t, sub.IsOverdue(sub.EndDate().Add(time.Hour)), "only active rows expire")
}

func TestCanCheckIn(t *testing.T) {
	sub := newActiveSubscription(t)
	assert.NoError(t, sub.CanCheckIn(1000), "unlimited quota never rejects")

	quota := 2
	limited, err := NewSubscription(NewSubscriptionParams{
		MemberID:     1,
		PackageID:    2,
		PackageName:  "Punch Card",
		DurationDays: 90,
		VisitQuota:   &quota,
		StartDate:    time.Now().UTC(),
		TotalPrice:   decimal.NewFromInt(150),
		FinalPrice:   decimal.NewFromInt(150),
	})
	require.NoError(t, err)

	assert.NoError(t, limited.CanCheckIn(1))
	assert.ErrorIs(t, limited.CanCheckIn(2), ErrVisitsExhausted)

	require.NoError(t, limited.Freeze("travel", 3, time.Now().UTC()))
	assert.ErrorIs(t, limited.CanCheckIn(0), ErrNotActive)
}

func TestStatusTransitionTable(t *testing.T) {
	assert.True(t, valueobjects.StatusPending.CanTransitionTo(valueobjects.StatusActive))
	assert.True(t, valueobjects.StatusActive.CanTransitionTo(valueobjects.StatusFrozen))
	assert.True(t, valueobjects.StatusFrozen.CanTransitionTo(valueobjects.StatusActive))
	assert.False(t, valueobjects.StatusFrozen.CanTransitionTo(valueobjects.StatusExpired))
	assert.False(t, valueobjects.StatusExpired.CanTransitionTo(valueobjects.StatusActive))
	assert.False(t, valueobjects.StatusCancelled.CanTransitionTo(valueobjects.StatusActive))
	assert.True(t, valueobjects.StatusExpired.IsTerminal())
	assert.True(t, valueobjects.StatusCancelled.IsTerminal())
}
