package subscription

import (
	"fmt"
	"time"
)

// Visit is a single member check-in recorded against a subscription.
type Visit struct {
	id             uint
	memberID       uint
	subscriptionID uint
	checkedInAt    time.Time
	createdAt      time.Time
}

func NewVisit(memberID, subscriptionID uint, checkedInAt time.Time) (*Visit, error) {
	if memberID == 0 {
		return nil, fmt.Errorf("member ID is required")
	}
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if checkedInAt.IsZero() {
		checkedInAt = time.Now().UTC()
	}
	return &Visit{
		memberID:       memberID,
		subscriptionID: subscriptionID,
		checkedInAt:    checkedInAt,
		createdAt:      time.Now().UTC(),
	}, nil
}

// ReconstructVisit rebuilds a visit from persistence.
func ReconstructVisit(id, memberID, subscriptionID uint, checkedInAt, createdAt time.Time) *Visit {
	return &Visit{
		id:             id,
		memberID:       memberID,
		subscriptionID: subscriptionID,
		checkedInAt:    checkedInAt,
		createdAt:      createdAt,
	}
}

func (v *Visit) ID() uint               { return v.id }
func (v *Visit) MemberID() uint         { return v.memberID }
func (v *Visit) SubscriptionID() uint   { return v.subscriptionID }
func (v *Visit) CheckedInAt() time.Time { return v.checkedInAt }
func (v *Visit) CreatedAt() time.Time   { return v.createdAt }

// SetID sets the visit ID (only for persistence layer use)
func (v *Visit) SetID(id uint) error {
	if v.id != 0 {
		return fmt.Errorf("visit ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("visit ID cannot be zero")
	}
	v.id = id
	return nil
}
