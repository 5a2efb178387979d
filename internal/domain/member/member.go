package member

import (
	"fmt"
	"strings"
	"time"
)

// Status is the member account status.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Member is the club member aggregate root.
type Member struct {
	id           uint
	memberNumber string
	name         string
	email        string
	phone        string
	status       Status
	notes        string
	joinedAt     time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// NewMember registers a new member. The membership number comes from the
// shared atomic sequence, not from the caller's input.
func NewMember(memberNumber, name, email, phone string) (*Member, error) {
	if memberNumber == "" {
		return nil, fmt.Errorf("member number is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("member name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	now := time.Now().UTC()
	return &Member{
		memberNumber: memberNumber,
		name:         name,
		email:        email,
		phone:        strings.TrimSpace(phone),
		status:       StatusActive,
		joinedAt:     now,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a member from persistence.
func Reconstruct(id uint, memberNumber, name, email, phone string, status Status, notes string, joinedAt, createdAt, updatedAt time.Time) (*Member, error) {
	if id == 0 {
		return nil, fmt.Errorf("member ID cannot be zero")
	}
	if memberNumber == "" {
		return nil, fmt.Errorf("member number is required")
	}
	if status != StatusActive && status != StatusInactive {
		return nil, fmt.Errorf("invalid member status: %s", status)
	}

	return &Member{
		id:           id,
		memberNumber: memberNumber,
		name:         name,
		email:        email,
		phone:        phone,
		status:       status,
		notes:        notes,
		joinedAt:     joinedAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (m *Member) ID() uint             { return m.id }
func (m *Member) MemberNumber() string { return m.memberNumber }
func (m *Member) Name() string         { return m.name }
func (m *Member) Email() string        { return m.email }
func (m *Member) Phone() string        { return m.phone }
func (m *Member) Status() Status       { return m.status }
func (m *Member) Notes() string        { return m.notes }
func (m *Member) JoinedAt() time.Time  { return m.joinedAt }
func (m *Member) CreatedAt() time.Time { return m.createdAt }
func (m *Member) UpdatedAt() time.Time { return m.updatedAt }

// SetID sets the member ID (only for persistence layer use)
func (m *Member) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("member ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("member ID cannot be zero")
	}
	m.id = id
	return nil
}

// UpdateContact edits the member's contact details.
func (m *Member) UpdateContact(name, email, phone, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("member name is required")
	}

	m.name = name
	m.email = strings.ToLower(strings.TrimSpace(email))
	m.phone = strings.TrimSpace(phone)
	m.notes = notes
	m.updatedAt = time.Now().UTC()
	return nil
}

// MarkActive flags the member as having a current subscription.
func (m *Member) MarkActive() {
	if m.status == StatusActive {
		return
	}
	m.status = StatusActive
	m.updatedAt = time.Now().UTC()
}

// Deactivate flags the member as lapsed.
func (m *Member) Deactivate() {
	if m.status == StatusInactive {
		return
	}
	m.status = StatusInactive
	m.updatedAt = time.Now().UTC()
}
