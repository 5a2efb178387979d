package subscription

import (
	"context"
	"time"

	"github.com/kinetix-inc/kinetix/internal/domain/subscription/valueobjects"
)

// ListFilter narrows subscription listings.
type ListFilter struct {
	MemberID *uint
	Status   *valueobjects.Status
}

// Repository persists subscriptions.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Update(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	List(ctx context.Context, offset, limit int, filter ListFilter) ([]*Subscription, int64, error)
	// GetActiveByMember returns the member's current active subscription,
	// or a not-found error when there is none.
	GetActiveByMember(ctx context.Context, memberID uint) (*Subscription, error)
	// ListOverdue returns active subscriptions whose end date is before
	// now, up to limit rows. Used by the expiry sweep.
	ListOverdue(ctx context.Context, now time.Time, limit int) ([]*Subscription, error)
	Delete(ctx context.Context, id uint) error
}

// VisitRepository persists member check-ins.
type VisitRepository interface {
	Create(ctx context.Context, visit *Visit) error
	CountBySubscription(ctx context.Context, subscriptionID uint) (int64, error)
	ListByMember(ctx context.Context, memberID uint, offset, limit int) ([]*Visit, int64, error)
}
