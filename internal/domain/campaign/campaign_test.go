package campaign

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCampaign(t *testing.T) {
	c, err := NewCampaign("March promo", "Spring offer", "# Hello", AudienceActive)
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, c.Status())
	assert.Equal(t, AudienceActive, c.Audience())
	assert.Nil(t, c.StartedAt())
}

func TestNewCampaign_Validation(t *testing.T) {
	_, err := NewCampaign(" ", "s", "b", AudienceAll)
	assert.Error(t, err, "name required")

	_, err = NewCampaign("n", " ", "b", AudienceAll)
	assert.Error(t, err, "subject required")

	_, err = NewCampaign("n", "s", " ", AudienceAll)
	assert.Error(t, err, "body required")

	_, err = NewCampaign("n", "s", "b", "everyone")
	assert.Error(t, err, "unknown audience rejected")
}

func TestCampaign_Start(t *testing.T) {
	c, err := NewCampaign("n", "s", "b", AudienceAll)
	require.NoError(t, err)

	assert.ErrorIs(t, c.Start(0), ErrNoRecipients)

	require.NoError(t, c.Start(2))
	assert.Equal(t, StatusRunning, c.Status())
	assert.Equal(t, 2, c.TotalRecipients())
	require.NotNil(t, c.StartedAt())

	assert.ErrorIs(t, c.Start(2), ErrCampaignNotDraft)
}

func TestCampaign_Cancel(t *testing.T) {
	c, err := NewCampaign("n", "s", "b", AudienceAll)
	require.NoError(t, err)

	require.NoError(t, c.Cancel())
	assert.Equal(t, StatusCancelled, c.Status())
	assert.ErrorIs(t, c.Cancel(), ErrCampaignFinished)
}

func TestNewMessage(t *testing.T) {
	m, err := NewMessage(1, 2, "sara@example.com", "Sara")
	require.NoError(t, err)

	assert.Equal(t, MessageStatusQueued, m.Status())
	assert.Contains(t, m.MessageID(), "cm_")
	assert.Equal(t, 0, m.Attempts())
	assert.False(t, m.NextAttemptAt().IsZero())

	_, err = NewMessage(1, 2, "", "Sara")
	assert.Error(t, err, "email required")
}

func TestMessage_DeliveryLifecycle(t *testing.T) {
	m, err := NewMessage(1, 2, "sara@example.com", "Sara")
	require.NoError(t, err)

	require.NoError(t, m.MarkSending())
	assert.Equal(t, 1, m.Attempts())
	assert.Error(t, m.MarkSending(), "cannot claim twice")

	m.MarkSent()
	assert.Equal(t, MessageStatusSent, m.Status())
	require.NotNil(t, m.SentAt())
	assert.True(t, m.IsTerminal())
}

func TestMessage_RetryBackoff(t *testing.T) {
	m, err := NewMessage(1, 2, "sara@example.com", "Sara")
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	base := 30 * time.Second

	require.NoError(t, m.MarkSending())
	m.MarkFailed(errors.New("smtp timeout"), 3, base, now)
	assert.Equal(t, MessageStatusQueued, m.Status())
	assert.Equal(t, now.Add(30*time.Second), m.NextAttemptAt())
	assert.Equal(t, "smtp timeout", m.LastError())

	require.NoError(t, m.MarkSending())
	m.MarkFailed(errors.New("smtp timeout"), 3, base, now)
	assert.Equal(t, now.Add(60*time.Second), m.NextAttemptAt(), "backoff doubles")

	require.NoError(t, m.MarkSending())
	m.MarkFailed(errors.New("smtp timeout"), 3, base, now)
	assert.Equal(t, MessageStatusFailed, m.Status(), "permanent after max attempts")
	assert.True(t, m.IsTerminal())
}
