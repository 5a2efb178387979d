package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/shared/constants"
)

// PackageModel is the database persistence model for catalog packages.
type PackageModel struct {
	ID           uint            `gorm:"primarykey"`
	Name         string          `gorm:"not null;size:100"`
	Description  string          `gorm:"size:500"`
	DurationDays int             `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	VisitQuota   *int
	VIP          bool `gorm:"not null;default:false"`
	Active       bool `gorm:"not null;default:true;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (PackageModel) TableName() string {
	return constants.TablePackages
}
