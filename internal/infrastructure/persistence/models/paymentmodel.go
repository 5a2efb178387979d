package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/shared/constants"
)

// PaymentModel is the database persistence model for payments.
type PaymentModel struct {
	ID        uint            `gorm:"primarykey"`
	InvoiceID uint            `gorm:"not null;index"`
	MemberID  uint            `gorm:"not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Method    string          `gorm:"not null;size:20"`
	Reference string          `gorm:"not null;size:64;index"`
	PaidAt    time.Time       `gorm:"not null"`
	Notes     string          `gorm:"size:500"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (PaymentModel) TableName() string {
	return constants.TablePayments
}
