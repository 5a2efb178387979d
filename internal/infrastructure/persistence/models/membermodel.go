package models

import (
	"time"

	"github.com/kinetix-inc/kinetix/internal/shared/constants"
)

// MemberModel is the database persistence model for members. This is the
// anti-corruption layer between domain and database.
type MemberModel struct {
	ID           uint   `gorm:"primarykey"`
	MemberNumber string `gorm:"uniqueIndex;not null;size:20"`
	Name         string `gorm:"not null;size:100"`
	Email        string `gorm:"index;size:255"`
	Phone        string `gorm:"size:30"`
	Status       string `gorm:"not null;size:20;default:active"`
	Notes        string `gorm:"size:1000"`
	JoinedAt     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (MemberModel) TableName() string {
	return constants.TableMembers
}
