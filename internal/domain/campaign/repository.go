package campaign

import (
	"context"
	"time"
)

// Repository persists campaigns.
type Repository interface {
	Create(ctx context.Context, campaign *Campaign) error
	Update(ctx context.Context, campaign *Campaign) error
	GetByID(ctx context.Context, id uint) (*Campaign, error)
	List(ctx context.Context, offset, limit int) ([]*Campaign, int64, error)
	// IncrementOutcome bumps the sent or failed counter of a running
	// campaign with an atomic column update, so concurrent dispatch
	// workers never lose increments.
	IncrementOutcome(ctx context.Context, campaignID uint, delivered bool) error
	// Complete marks a running campaign completed. A no-op when another
	// worker already flipped the status.
	Complete(ctx context.Context, campaignID uint, completedAt time.Time) error
}

// MessageRepository persists the durable campaign email queue.
type MessageRepository interface {
	// CreateBatch inserts the queued messages for a campaign start. Runs
	// inside the starting transaction.
	CreateBatch(ctx context.Context, messages []*Message) error
	Update(ctx context.Context, message *Message) error
	// ClaimDue atomically claims up to limit queued messages whose next
	// attempt time has passed and returns them in sending state. Two
	// dispatchers never claim the same row.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*Message, error)
	// CountUndelivered returns queued + sending messages for a campaign.
	CountUndelivered(ctx context.Context, campaignID uint) (int64, error)
	// DiscardQueued drops undelivered messages of a cancelled campaign.
	DiscardQueued(ctx context.Context, campaignID uint) error
}
