package member

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMember(t *testing.T) {
	m, err := NewMember("MBR-00042", "  Sara Al-Harbi ", "Sara@Example.COM", " 05001234 ")
	require.NoError(t, err)

	assert.Equal(t, "MBR-00042", m.MemberNumber())
	assert.Equal(t, "Sara Al-Harbi", m.Name())
	assert.Equal(t, "sara@example.com", m.Email(), "email is lowercased")
	assert.Equal(t, "05001234", m.Phone())
	assert.Equal(t, StatusActive, m.Status())
	assert.False(t, m.JoinedAt().IsZero())
}

func TestNewMember_Validation(t *testing.T) {
	_, err := NewMember("", "Sara", "", "")
	assert.Error(t, err, "member number required")

	_, err = NewMember("MBR-00001", "   ", "", "")
	assert.Error(t, err, "name required")
}

func TestMember_StatusTransitions(t *testing.T) {
	m, err := NewMember("MBR-00001", "Sara", "", "")
	require.NoError(t, err)

	m.Deactivate()
	assert.Equal(t, StatusInactive, m.Status())

	m.MarkActive()
	assert.Equal(t, StatusActive, m.Status())
}

func TestMember_UpdateContact(t *testing.T) {
	m, err := NewMember("MBR-00001", "Sara", "sara@example.com", "")
	require.NoError(t, err)

	require.NoError(t, m.UpdateContact("Sara H", "NEW@Example.com", "0555", "front desk note"))
	assert.Equal(t, "Sara H", m.Name())
	assert.Equal(t, "new@example.com", m.Email())
	assert.Equal(t, "front desk note", m.Notes())

	assert.Error(t, m.UpdateContact("  ", "", "", ""))
}

func TestReconstruct_RejectsBadStatus(t *testing.T) {
	now := time.Now().UTC()
	_, err := Reconstruct(1, "MBR-00001", "Sara", "", "", "suspended", "", now, now, now)
	assert.Error(t, err)
}
