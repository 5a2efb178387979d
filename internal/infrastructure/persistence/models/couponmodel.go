package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/shared/constants"
)

// CouponModel is the database persistence model for coupons.
type CouponModel struct {
	ID           uint             `gorm:"primarykey"`
	Code         string           `gorm:"uniqueIndex;not null;size:32"`
	DiscountType string           `gorm:"not null;size:20"`
	Value        decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	MaxDiscount  *decimal.Decimal `gorm:"type:decimal(10,2)"`
	MinPurchase  *decimal.Decimal `gorm:"type:decimal(10,2)"`
	ValidFrom    time.Time        `gorm:"not null"`
	ValidUntil   time.Time        `gorm:"not null;index"`
	MaxUses      *uint
	CurrentUses  uint `gorm:"not null;default:0"`
	Active       bool `gorm:"not null;default:true;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (CouponModel) TableName() string {
	return constants.TableCoupons
}
