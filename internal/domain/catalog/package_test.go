package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNewPackage(t *testing.T) {
	price := decimal.NewFromInt(300)

	pkg, err := NewPackage("Monthly", "30 day access", 30, price, nil, false)
	require.NoError(t, err)

	assert.Equal(t, "Monthly", pkg.Name())
	assert.Equal(t, 30, pkg.DurationDays())
	assert.True(t, pkg.Price().Equal(price))
	assert.Nil(t, pkg.VisitQuota())
	assert.True(t, pkg.IsActive())
	assert.False(t, pkg.IsVIP())
}

func TestNewPackage_Validation(t *testing.T) {
	price := decimal.NewFromInt(300)

	_, err := NewPackage("  ", "", 30, price, nil, false)
	assert.Error(t, err, "blank name rejected")

	_, err = NewPackage("Monthly", "", 0, price, nil, false)
	assert.Error(t, err, "zero duration rejected")

	_, err = NewPackage("Monthly", "", 30, decimal.NewFromInt(-1), nil, false)
	assert.Error(t, err, "negative price rejected")

	_, err = NewPackage("Monthly", "", 30, price, intPtr(0), false)
	assert.Error(t, err, "zero visit quota rejected")
}

func TestPackage_Snapshot_IsIndependentCopy(t *testing.T) {
	pkg, err := NewPackage("Quarterly", "", 90, decimal.NewFromInt(800), intPtr(36), true)
	require.NoError(t, err)
	require.NoError(t, pkg.SetID(7))

	terms := pkg.Snapshot()

	assert.Equal(t, uint(7), terms.PackageID)
	assert.Equal(t, "Quarterly", terms.Name)
	assert.Equal(t, 90, terms.DurationDays)
	assert.Equal(t, 36, *terms.VisitQuota)
	assert.True(t, terms.VIP)

	// Editing the package afterwards must not leak into the snapshot.
	require.NoError(t, pkg.Update("Quarterly Plus", "", 90, decimal.NewFromInt(900), intPtr(50), true))
	assert.Equal(t, 36, *terms.VisitQuota)
	assert.True(t, terms.Price.Equal(decimal.NewFromInt(800)))
}

func TestPackage_ActivateDeactivate(t *testing.T) {
	pkg, err := NewPackage("Monthly", "", 30, decimal.NewFromInt(300), nil, false)
	require.NoError(t, err)

	pkg.Deactivate()
	assert.False(t, pkg.IsActive())

	pkg.Activate()
	assert.True(t, pkg.IsActive())
}

func TestPackage_SetID(t *testing.T) {
	pkg, err := NewPackage("Monthly", "", 30, decimal.NewFromInt(300), nil, false)
	require.NoError(t, err)

	require.NoError(t, pkg.SetID(3))
	assert.Error(t, pkg.SetID(4), "ID cannot be reassigned")
}
