// Package catalog defines the purchasable membership packages.
package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Package is a purchasable plan template. Subscriptions copy its terms at
// purchase time, so editing a package never affects existing subscriptions.
type Package struct {
	id           uint
	name         string
	description  string
	durationDays int
	price        decimal.Decimal
	visitQuota   *int
	vip          bool
	active       bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewPackage creates a new package. The price is tax-inclusive.
func NewPackage(name, description string, durationDays int, price decimal.Decimal, visitQuota *int, vip bool) (*Package, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("package name is required")
	}
	if durationDays <= 0 {
		return nil, fmt.Errorf("package duration must be positive, got %d", durationDays)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("package price cannot be negative, got %s", price)
	}
	if visitQuota != nil && *visitQuota <= 0 {
		return nil, fmt.Errorf("visit quota must be positive when set, got %d", *visitQuota)
	}

	now := time.Now().UTC()
	return &Package{
		name:         name,
		description:  description,
		durationDays: durationDays,
		price:        price,
		visitQuota:   visitQuota,
		vip:          vip,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a package from persistence.
func Reconstruct(id uint, name, description string, durationDays int, price decimal.Decimal, visitQuota *int, vip, active bool, createdAt, updatedAt time.Time) (*Package, error) {
	if id == 0 {
		return nil, fmt.Errorf("package ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("package name is required")
	}
	if durationDays <= 0 {
		return nil, fmt.Errorf("package duration must be positive, got %d", durationDays)
	}

	return &Package{
		id:           id,
		name:         name,
		description:  description,
		durationDays: durationDays,
		price:        price,
		visitQuota:   visitQuota,
		vip:          vip,
		active:       active,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (p *Package) ID() uint               { return p.id }
func (p *Package) Name() string           { return p.name }
func (p *Package) Description() string    { return p.description }
func (p *Package) DurationDays() int      { return p.durationDays }
func (p *Package) Price() decimal.Decimal { return p.price }
func (p *Package) VisitQuota() *int       { return p.visitQuota }
func (p *Package) IsVIP() bool            { return p.vip }
func (p *Package) IsActive() bool         { return p.active }
func (p *Package) CreatedAt() time.Time   { return p.createdAt }
func (p *Package) UpdatedAt() time.Time   { return p.updatedAt }

// SetID sets the package ID (only for persistence layer use)
func (p *Package) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("package ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("package ID cannot be zero")
	}
	p.id = id
	return nil
}

// Update edits the package terms for future purchases. Existing
// subscriptions hold a snapshot and are unaffected.
func (p *Package) Update(name, description string, durationDays int, price decimal.Decimal, visitQuota *int, vip bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("package name is required")
	}
	if durationDays <= 0 {
		return fmt.Errorf("package duration must be positive, got %d", durationDays)
	}
	if price.IsNegative() {
		return fmt.Errorf("package price cannot be negative, got %s", price)
	}
	if visitQuota != nil && *visitQuota <= 0 {
		return fmt.Errorf("visit quota must be positive when set, got %d", *visitQuota)
	}

	p.name = name
	p.description = description
	p.durationDays = durationDays
	p.price = price
	p.visitQuota = visitQuota
	p.vip = vip
	p.updatedAt = time.Now().UTC()
	return nil
}

// Deactivate hides the package from future purchases.
func (p *Package) Deactivate() {
	if !p.active {
		return
	}
	p.active = false
	p.updatedAt = time.Now().UTC()
}

// Activate makes the package purchasable again.
func (p *Package) Activate() {
	if p.active {
		return
	}
	p.active = true
	p.updatedAt = time.Now().UTC()
}

// Terms is the immutable copy of package terms a subscription takes at
// purchase time.
type Terms struct {
	PackageID    uint
	Name         string
	DurationDays int
	Price        decimal.Decimal
	VisitQuota   *int
	VIP          bool
}

// Snapshot returns the package terms to copy onto a new subscription.
func (p *Package) Snapshot() Terms {
	var quota *int
	if p.visitQuota != nil {
		q := *p.visitQuota
		quota = &q
	}
	return Terms{
		PackageID:    p.id,
		Name:         p.name,
		DurationDays: p.durationDays,
		Price:        p.price,
		VisitQuota:   quota,
		VIP:          p.vip,
	}
}
