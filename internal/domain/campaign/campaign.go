package campaign

import (
	"fmt"
	"strings"
	"time"
)

// Status is the campaign lifecycle status.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Audience selects which members receive a campaign.
type Audience string

const (
	// AudienceAll targets every member with an email address.
	AudienceAll Audience = "all"
	// AudienceActive targets only members flagged active.
	AudienceActive Audience = "active"
)

// ParseAudience validates and converts a string to an Audience.
func ParseAudience(s string) (Audience, error) {
	switch Audience(s) {
	case AudienceAll, AudienceActive:
		return Audience(s), nil
	default:
		return "", fmt.Errorf("invalid campaign audience: %s", s)
	}
}

// Campaign is an email marketing campaign aggregate root. The body is
// markdown; rendering to HTML happens at send time.
type Campaign struct {
	id       uint
	name     string
	subject  string
	body     string
	audience Audience
	status   Status

	totalRecipients int
	sentCount       int
	failedCount     int

	startedAt   *time.Time
	completedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func NewCampaign(name, subject, body string, audience Audience) (*Campaign, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("campaign name is required")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fmt.Errorf("campaign subject is required")
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("campaign body is required")
	}
	if _, err := ParseAudience(string(audience)); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Campaign{
		name:      name,
		subject:   subject,
		body:      body,
		audience:  audience,
		status:    StatusDraft,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructCampaignParams carries the persisted state of a campaign.
type ReconstructCampaignParams struct {
	ID              uint
	Name            string
	Subject         string
	Body            string
	Audience        Audience
	Status          Status
	TotalRecipients int
	SentCount       int
	FailedCount     int
	StartedAt       *time.Time
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReconstructCampaign rebuilds a campaign from persistence.
func ReconstructCampaign(p ReconstructCampaignParams) (*Campaign, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("campaign ID cannot be zero")
	}
	switch p.Status {
	case StatusDraft, StatusRunning, StatusCompleted, StatusCancelled:
	default:
		return nil, fmt.Errorf("invalid campaign status: %s", p.Status)
	}

	return &Campaign{
		id:              p.ID,
		name:            p.Name,
		subject:         p.Subject,
		body:            p.Body,
		audience:        p.Audience,
		status:          p.Status,
		totalRecipients: p.TotalRecipients,
		sentCount:       p.SentCount,
		failedCount:     p.FailedCount,
		startedAt:       p.StartedAt,
		completedAt:     p.CompletedAt,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
	}, nil
}

func (c *Campaign) ID() uint                { return c.id }
func (c *Campaign) Name() string            { return c.name }
func (c *Campaign) Subject() string         { return c.subject }
func (c *Campaign) Body() string            { return c.body }
func (c *Campaign) Audience() Audience      { return c.audience }
func (c *Campaign) Status() Status          { return c.status }
func (c *Campaign) TotalRecipients() int    { return c.totalRecipients }
func (c *Campaign) SentCount() int          { return c.sentCount }
func (c *Campaign) FailedCount() int        { return c.failedCount }
func (c *Campaign) StartedAt() *time.Time   { return c.startedAt }
func (c *Campaign) CompletedAt() *time.Time { return c.completedAt }
func (c *Campaign) CreatedAt() time.Time    { return c.createdAt }
func (c *Campaign) UpdatedAt() time.Time    { return c.updatedAt }

// SetID sets the campaign ID (only for persistence layer use)
func (c *Campaign) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("campaign ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("campaign ID cannot be zero")
	}
	c.id = id
	return nil
}

// Start moves a draft campaign to running with the resolved recipient count.
func (c *Campaign) Start(totalRecipients int) error {
	if c.status != StatusDraft {
		return fmt.Errorf("%w: status is %s", ErrCampaignNotDraft, c.status)
	}
	if totalRecipients <= 0 {
		return ErrNoRecipients
	}

	now := time.Now().UTC()
	c.status = StatusRunning
	c.totalRecipients = totalRecipients
	c.startedAt = &now
	c.updatedAt = now
	return nil
}

// Cancel stops a draft or running campaign. Messages already sent stay sent;
// queued ones are discarded by the caller.
func (c *Campaign) Cancel() error {
	if c.status != StatusDraft && c.status != StatusRunning {
		return fmt.Errorf("%w: status is %s", ErrCampaignFinished, c.status)
	}
	c.status = StatusCancelled
	c.updatedAt = time.Now().UTC()
	return nil
}
