package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/kinetix-inc/kinetix/internal/shared/constants"
)

// InvoiceModel is the database persistence model for invoices.
type InvoiceModel struct {
	ID             uint   `gorm:"primarykey"`
	InvoiceNumber  string `gorm:"uniqueIndex;not null;size:20"`
	MemberID       uint   `gorm:"not null;index"`
	SubscriptionID *uint  `gorm:"index"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Currency       string          `gorm:"not null;size:3"`
	CouponCode     *string         `gorm:"size:32"`

	Status    string    `gorm:"not null;size:20;index"`
	IssuedAt  time.Time `gorm:"not null"`
	DueDate   *datatypes.Date
	Notes     string `gorm:"size:1000"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (InvoiceModel) TableName() string {
	return constants.TableInvoices
}
