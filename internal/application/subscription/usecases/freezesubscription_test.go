package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFreezeDays(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	ten := 10

	days, err := resolveFreezeDays(&ten, nil, now)
	require.NoError(t, err)
	assert.Equal(t, 10, days)

	until := now.Add(7 * 24 * time.Hour)
	days, err = resolveFreezeDays(nil, &until, now)
	require.NoError(t, err)
	assert.Equal(t, 7, days)

	_, err = resolveFreezeDays(&ten, &until, now)
	assert.Error(t, err, "days and until are mutually exclusive")

	_, err = resolveFreezeDays(nil, nil, now)
	assert.Error(t, err, "one of days or until is required")

	past := now.Add(-24 * time.Hour)
	_, err = resolveFreezeDays(nil, &past, now)
	assert.Error(t, err, "until in the past rejected")
}
