package models

import (
	"time"

	"github.com/kinetix-inc/kinetix/internal/shared/constants"
)

// VisitModel is the database persistence model for member check-ins.
type VisitModel struct {
	ID             uint      `gorm:"primarykey"`
	MemberID       uint      `gorm:"not null;index"`
	SubscriptionID uint      `gorm:"not null;index"`
	CheckedInAt    time.Time `gorm:"not null;index"`
	CreatedAt      time.Time
}

// TableName specifies the table name for GORM
func (VisitModel) TableName() string {
	return constants.TableVisits
}
