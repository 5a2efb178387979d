package campaign

import (
	"fmt"
	"time"

	"github.com/kinetix-inc/kinetix/internal/shared/id"
)

// MessageStatus is the delivery state of one queued campaign email.
type MessageStatus string

const (
	MessageStatusQueued  MessageStatus = "queued"
	MessageStatusSending MessageStatus = "sending"
	MessageStatusSent    MessageStatus = "sent"
	MessageStatusFailed  MessageStatus = "failed"
)

// Message is a single durable outbound email belonging to a campaign. Rows
// survive process restarts; the dispatcher resumes from whatever is queued.
type Message struct {
	dbID       uint
	messageID  string
	campaignID uint
	memberID   uint
	email      string
	name       string

	status        MessageStatus
	attempts      int
	lastError     string
	nextAttemptAt time.Time
	sentAt        *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewMessage(campaignID, memberID uint, email, name string) (*Message, error) {
	if campaignID == 0 {
		return nil, fmt.Errorf("campaign ID is required")
	}
	if email == "" {
		return nil, fmt.Errorf("recipient email is required")
	}

	messageID, err := id.GenerateWithPrefix(id.PrefixCampaignMessage, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("generate message ID: %w", err)
	}

	now := time.Now().UTC()
	return &Message{
		messageID:     messageID,
		campaignID:    campaignID,
		memberID:      memberID,
		email:         email,
		name:          name,
		status:        MessageStatusQueued,
		nextAttemptAt: now,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructMessageParams carries the persisted state of a message.
type ReconstructMessageParams struct {
	DBID          uint
	MessageID     string
	CampaignID    uint
	MemberID      uint
	Email         string
	Name          string
	Status        MessageStatus
	Attempts      int
	LastError     string
	NextAttemptAt time.Time
	SentAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ReconstructMessage rebuilds a message from persistence.
func ReconstructMessage(p ReconstructMessageParams) (*Message, error) {
	if p.DBID == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	switch p.Status {
	case MessageStatusQueued, MessageStatusSending, MessageStatusSent, MessageStatusFailed:
	default:
		return nil, fmt.Errorf("invalid message status: %s", p.Status)
	}

	return &Message{
		dbID:          p.DBID,
		messageID:     p.MessageID,
		campaignID:    p.CampaignID,
		memberID:      p.MemberID,
		email:         p.Email,
		name:          p.Name,
		status:        p.Status,
		attempts:      p.Attempts,
		lastError:     p.LastError,
		nextAttemptAt: p.NextAttemptAt,
		sentAt:        p.SentAt,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}, nil
}

func (m *Message) ID() uint                 { return m.dbID }
func (m *Message) MessageID() string        { return m.messageID }
func (m *Message) CampaignID() uint         { return m.campaignID }
func (m *Message) MemberID() uint           { return m.memberID }
func (m *Message) Email() string            { return m.email }
func (m *Message) Name() string             { return m.name }
func (m *Message) Status() MessageStatus    { return m.status }
func (m *Message) Attempts() int            { return m.attempts }
func (m *Message) LastError() string        { return m.lastError }
func (m *Message) NextAttemptAt() time.Time { return m.nextAttemptAt }
func (m *Message) SentAt() *time.Time       { return m.sentAt }
func (m *Message) CreatedAt() time.Time     { return m.createdAt }
func (m *Message) UpdatedAt() time.Time     { return m.updatedAt }

// SetID sets the row ID (only for persistence layer use)
func (m *Message) SetID(id uint) error {
	if m.dbID != 0 {
		return fmt.Errorf("message ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("message ID cannot be zero")
	}
	m.dbID = id
	return nil
}

// MarkSending claims the message for a delivery attempt.
func (m *Message) MarkSending() error {
	if m.status != MessageStatusQueued {
		return fmt.Errorf("message %s is not queued, status is %s", m.messageID, m.status)
	}
	m.status = MessageStatusSending
	m.attempts++
	m.updatedAt = time.Now().UTC()
	return nil
}

// MarkSent records a successful delivery.
func (m *Message) MarkSent() {
	now := time.Now().UTC()
	m.status = MessageStatusSent
	m.sentAt = &now
	m.updatedAt = now
}

// MarkFailed records a delivery failure. Below maxAttempts the message goes
// back to queued with an exponentially backed-off next attempt time;
// otherwise it fails permanently.
func (m *Message) MarkFailed(cause error, maxAttempts int, baseBackoff time.Duration, now time.Time) {
	if cause != nil {
		m.lastError = cause.Error()
	}

	if m.attempts >= maxAttempts {
		m.status = MessageStatusFailed
	} else {
		m.status = MessageStatusQueued
		// 1x, 2x, 4x... of the base backoff per prior attempt
		backoff := baseBackoff << (m.attempts - 1)
		m.nextAttemptAt = now.Add(backoff)
	}
	m.updatedAt = time.Now().UTC()
}

// IsTerminal reports whether the message needs no further delivery work.
func (m *Message) IsTerminal() bool {
	return m.status == MessageStatusSent || m.status == MessageStatusFailed
}
