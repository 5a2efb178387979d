package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/shared/constants"
)

// SubscriptionModel is the database persistence model for subscriptions.
// Package terms are denormalized on purpose: the row keeps what the member
// bought even after the catalog changes.
type SubscriptionModel struct {
	ID       uint `gorm:"primarykey"`
	MemberID uint `gorm:"not null;index"`

	PackageID    uint   `gorm:"not null;index"`
	PackageName  string `gorm:"not null;size:100"`
	DurationDays int    `gorm:"not null"`
	VisitQuota   *int
	VIP          bool `gorm:"not null;default:false"`

	StartDate       time.Time `gorm:"not null"`
	EndDate         time.Time `gorm:"not null;index"`
	OriginalEndDate time.Time `gorm:"not null"`

	FrozenReason    string `gorm:"size:255"`
	FrozenStartDate *time.Time
	FrozenEndDate   *time.Time
	FrozenDays      int `gorm:"not null;default:0"`

	TotalPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	FinalPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CouponCode     *string         `gorm:"size:32"`

	AutoRenew bool   `gorm:"not null;default:false"`
	Status    string `gorm:"not null;size:20;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
