package valueobjects

// Status is the subscription lifecycle status.
type Status string

const (
	// StatusPending is an invoice-only subscription awaiting payment.
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusFrozen  Status = "frozen"
	StatusExpired Status = "expired"
	// StatusCancelled is terminal. Renewal creates a new row instead of
	// resurrecting a cancelled one.
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

// CanUseService reports whether a member can check in on this subscription.
func (s Status) CanUseService() bool {
	return s == StatusActive
}

// IsTerminal reports whether the row can never change status again.
func (s Status) IsTerminal() bool {
	return s == StatusExpired || s == StatusCancelled
}

func (s Status) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusPending:   {StatusActive, StatusCancelled, StatusExpired},
		StatusActive:    {StatusFrozen, StatusExpired, StatusCancelled},
		StatusFrozen:    {StatusActive, StatusCancelled},
		StatusExpired:   {},
		StatusCancelled: {},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}

	for _, allowedStatus := range allowed {
		if allowedStatus == target {
			return true
		}
	}
	return false
}

var ValidStatuses = map[Status]bool{
	StatusPending:   true,
	StatusActive:    true,
	StatusFrozen:    true,
	StatusExpired:   true,
	StatusCancelled: true,
}
