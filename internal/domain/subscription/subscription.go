package subscription

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/domain/subscription/valueobjects"
	"github.com/kinetix-inc/kinetix/internal/shared/biztime"
)

// Subscription is the membership subscription aggregate root. Package terms
// are snapshotted at purchase time so later catalog edits never change what
// a member already paid for.
type Subscription struct {
	id       uint
	memberID uint

	// package snapshot
	packageID    uint
	packageName  string
	durationDays int
	visitQuota   *int
	vip          bool

	startDate       time.Time
	endDate         time.Time
	originalEndDate time.Time

	// freeze metadata, only set while status is frozen
	frozenReason    string
	frozenStartDate *time.Time
	frozenEndDate   *time.Time
	frozenDays      int

	totalPrice     decimal.Decimal
	discountAmount decimal.Decimal
	finalPrice     decimal.Decimal
	couponCode     *string

	autoRenew bool
	status    valueobjects.Status
	createdAt time.Time
	updatedAt time.Time
}

// NewSubscriptionParams carries everything needed to open a subscription.
// Price fields come from the pricing quote, terms from the package snapshot.
type NewSubscriptionParams struct {
	MemberID     uint
	PackageID    uint
	PackageName  string
	DurationDays int
	VisitQuota   *int
	VIP          bool

	StartDate time.Time

	TotalPrice     decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalPrice     decimal.Decimal
	CouponCode     *string

	AutoRenew bool
	// InvoiceOnly opens the subscription as pending until payment lands.
	InvoiceOnly bool
}

func NewSubscription(p NewSubscriptionParams) (*Subscription, error) {
	if p.MemberID == 0 {
		return nil, fmt.Errorf("member ID is required")
	}
	if p.PackageID == 0 {
		return nil, fmt.Errorf("package ID is required")
	}
	if p.DurationDays <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d", p.DurationDays)
	}
	if p.VisitQuota != nil && *p.VisitQuota <= 0 {
		return nil, fmt.Errorf("visit quota must be positive when set")
	}
	if p.FinalPrice.IsNegative() {
		return nil, fmt.Errorf("final price cannot be negative")
	}
	if p.StartDate.IsZero() {
		return nil, fmt.Errorf("start date is required")
	}

	status := valueobjects.StatusActive
	if p.InvoiceOnly {
		status = valueobjects.StatusPending
	}

	endDate := biztime.AddDays(p.StartDate, p.DurationDays)

	var quota *int
	if p.VisitQuota != nil {
		v := *p.VisitQuota
		quota = &v
	}

	now := time.Now().UTC()
	return &Subscription{
		memberID:        p.MemberID,
		packageID:       p.PackageID,
		packageName:     p.PackageName,
		durationDays:    p.DurationDays,
		visitQuota:      quota,
		vip:             p.VIP,
		startDate:       p.StartDate,
		endDate:         endDate,
		originalEndDate: endDate,
		totalPrice:      p.TotalPrice,
		discountAmount:  p.DiscountAmount,
		finalPrice:      p.FinalPrice,
		couponCode:      p.CouponCode,
		autoRenew:       p.AutoRenew,
		status:          status,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructParams carries the full persisted state of a subscription.
type ReconstructParams struct {
	ID       uint
	MemberID uint

	PackageID    uint
	PackageName  string
	DurationDays int
	VisitQuota   *int
	VIP          bool

	StartDate       time.Time
	EndDate         time.Time
	OriginalEndDate time.Time

	FrozenReason    string
	FrozenStartDate *time.Time
	FrozenEndDate   *time.Time
	FrozenDays      int

	TotalPrice     decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalPrice     decimal.Decimal
	CouponCode     *string

	AutoRenew bool
	Status    valueobjects.Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Reconstruct rebuilds a subscription from persistence.
func Reconstruct(p ReconstructParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if !valueobjects.ValidStatuses[p.Status] {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}

	return &Subscription{
		id:              p.ID,
		memberID:        p.MemberID,
		packageID:       p.PackageID,
		packageName:     p.PackageName,
		durationDays:    p.DurationDays,
		visitQuota:      p.VisitQuota,
		vip:             p.VIP,
		startDate:       p.StartDate,
		endDate:         p.EndDate,
		originalEndDate: p.OriginalEndDate,
		frozenReason:    p.FrozenReason,
		frozenStartDate: p.FrozenStartDate,
		frozenEndDate:   p.FrozenEndDate,
		frozenDays:      p.FrozenDays,
		totalPrice:      p.TotalPrice,
		discountAmount:  p.DiscountAmount,
		finalPrice:      p.FinalPrice,
		couponCode:      p.CouponCode,
		autoRenew:       p.AutoRenew,
		status:          p.Status,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
	}, nil
}

func (s *Subscription) ID() uint                    { return s.id }
func (s *Subscription) MemberID() uint              { return s.memberID }
func (s *Subscription) PackageID() uint             { return s.packageID }
func (s *Subscription) PackageName() string         { return s.packageName }
func (s *Subscription) DurationDays() int           { return s.durationDays }
func (s *Subscription) VisitQuota() *int            { return s.visitQuota }
func (s *Subscription) IsVIP() bool                 { return s.vip }
func (s *Subscription) StartDate() time.Time        { return s.startDate }
func (s *Subscription) EndDate() time.Time          { return s.endDate }
func (s *Subscription) OriginalEndDate() time.Time  { return s.originalEndDate }
func (s *Subscription) FrozenReason() string        { return s.frozenReason }
func (s *Subscription) FrozenStartDate() *time.Time { return s.frozenStartDate }
func (s *Subscription) FrozenEndDate() *time.Time   { return s.frozenEndDate }
func (s *Subscription) FrozenDays() int             { return s.frozenDays }
func (s *Subscription) TotalPrice() decimal.Decimal { return s.totalPrice }
func (s *Subscription) DiscountAmount() decimal.Decimal {
	return s.discountAmount
}
func (s *Subscription) FinalPrice() decimal.Decimal { return s.finalPrice }
func (s *Subscription) CouponCode() *string         { return s.couponCode }
func (s *Subscription) AutoRenew() bool             { return s.autoRenew }
func (s *Subscription) Status() valueobjects.Status { return s.status }
func (s *Subscription) CreatedAt() time.Time        { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time        { return s.updatedAt }

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// Activate moves a pending subscription to active, typically after its
// opening invoice is paid.
func (s *Subscription) Activate() error {
	if !s.status.CanTransitionTo(valueobjects.StatusActive) {
		return fmt.Errorf("%w: cannot activate from %s", ErrTerminalStatus, s.status)
	}
	s.status = valueobjects.StatusActive
	s.updatedAt = time.Now().UTC()
	return nil
}

// Freeze pauses an active subscription for the given number of days. The
// end date is pushed out by the same amount; the pre-freeze end date stays
// in originalEndDate so an early unfreeze can restore it.
func (s *Subscription) Freeze(reason string, days int, now time.Time) error {
	if s.status == valueobjects.StatusFrozen {
		return ErrAlreadyFrozen
	}
	if s.status != valueobjects.StatusActive {
		return fmt.Errorf("%w: status is %s", ErrNotActive, s.status)
	}
	if days <= 0 {
		return fmt.Errorf("freeze days must be positive, got %d", days)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("freeze reason is required")
	}

	frozenEnd := biztime.AddDays(now, days)

	s.frozenReason = reason
	s.frozenStartDate = &now
	s.frozenEndDate = &frozenEnd
	s.frozenDays = days
	s.endDate = biztime.AddDays(s.endDate, days)
	s.status = valueobjects.StatusFrozen
	s.updatedAt = time.Now().UTC()
	return nil
}

// Unfreeze resumes a frozen subscription. The end date snaps back to the
// pre-freeze value, so unused frozen days are discarded rather than banked.
func (s *Subscription) Unfreeze() error {
	if s.status != valueobjects.StatusFrozen {
		return ErrNotFrozen
	}

	s.endDate = s.originalEndDate
	s.frozenReason = ""
	s.frozenStartDate = nil
	s.frozenEndDate = nil
	s.frozenDays = 0
	s.status = valueobjects.StatusActive
	s.updatedAt = time.Now().UTC()
	return nil
}

// UpgradeParams describes the in-place package change applied by an upgrade.
// Delta amounts come from the prorated pricing quote.
type UpgradeParams struct {
	PackageID    uint
	PackageName  string
	DurationDays int
	VisitQuota   *int
	VIP          bool

	DeltaTotal    decimal.Decimal
	DeltaDiscount decimal.Decimal
	DeltaFinal    decimal.Decimal
}

// ApplyUpgrade swaps the package snapshot and adds the prorated price delta
// to the existing row. The end date does not move; the member keeps the
// remaining days they already paid for.
func (s *Subscription) ApplyUpgrade(p UpgradeParams) error {
	if s.status != valueobjects.StatusActive {
		return fmt.Errorf("%w: status is %s", ErrNotActive, s.status)
	}
	if p.PackageID == 0 {
		return fmt.Errorf("package ID is required")
	}
	if p.DeltaFinal.IsNegative() {
		return fmt.Errorf("upgrade delta cannot be negative")
	}

	var quota *int
	if p.VisitQuota != nil {
		v := *p.VisitQuota
		quota = &v
	}

	s.packageID = p.PackageID
	s.packageName = p.PackageName
	s.durationDays = p.DurationDays
	s.visitQuota = quota
	s.vip = p.VIP
	s.totalPrice = s.totalPrice.Add(p.DeltaTotal)
	s.discountAmount = s.discountAmount.Add(p.DeltaDiscount)
	s.finalPrice = s.finalPrice.Add(p.DeltaFinal)
	s.updatedAt = time.Now().UTC()
	return nil
}

// MarkExpired flips the subscription to expired. Used by the daily sweep
// and by renewal when it retires the old row.
func (s *Subscription) MarkExpired() error {
	if !s.status.CanTransitionTo(valueobjects.StatusExpired) {
		return fmt.Errorf("%w: cannot expire from %s", ErrTerminalStatus, s.status)
	}
	s.status = valueobjects.StatusExpired
	s.updatedAt = time.Now().UTC()
	return nil
}

// Cancel terminates the subscription. Terminal; a new purchase is required
// to resume service.
func (s *Subscription) Cancel() error {
	if !s.status.CanTransitionTo(valueobjects.StatusCancelled) {
		return fmt.Errorf("%w: cannot cancel from %s", ErrTerminalStatus, s.status)
	}
	s.status = valueobjects.StatusCancelled
	s.updatedAt = time.Now().UTC()
	return nil
}

func (s *Subscription) SetAutoRenew(enabled bool) {
	if s.autoRenew == enabled {
		return
	}
	s.autoRenew = enabled
	s.updatedAt = time.Now().UTC()
}

// IsOverdue reports whether an active subscription has run past its end date.
func (s *Subscription) IsOverdue(now time.Time) bool {
	return s.status == valueobjects.StatusActive && now.After(s.endDate)
}

// RemainingDays returns the whole days left until the end date, never
// negative.
func (s *Subscription) RemainingDays(now time.Time) int {
	days := biztime.DaysBetween(now, s.endDate)
	if days < 0 {
		return 0
	}
	return days
}

// CanCheckIn validates a visit against status and quota. usedVisits is the
// count of visits already recorded on this subscription.
func (s *Subscription) CanCheckIn(usedVisits int) error {
	if !s.status.CanUseService() {
		return fmt.Errorf("%w: status is %s", ErrNotActive, s.status)
	}
	if s.visitQuota != nil && usedVisits >= *s.visitQuota {
		return ErrVisitsExhausted
	}
	return nil
}
