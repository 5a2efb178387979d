package models

import (
	"time"

	"github.com/kinetix-inc/kinetix/internal/shared/constants"
)

// CampaignMessageModel is the database persistence model for the durable
// campaign email queue.
type CampaignMessageModel struct {
	ID         uint   `gorm:"primarykey"`
	MessageID  string `gorm:"uniqueIndex;not null;size:32"`
	CampaignID uint   `gorm:"not null;index"`
	MemberID   uint   `gorm:"not null;index"`
	Email      string `gorm:"not null;size:255"`
	Name       string `gorm:"size:100"`

	Status        string    `gorm:"not null;size:20;index:idx_campaign_messages_due"`
	Attempts      int       `gorm:"not null;default:0"`
	LastError     string    `gorm:"size:1000"`
	NextAttemptAt time.Time `gorm:"not null;index:idx_campaign_messages_due"`
	SentAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (CampaignMessageModel) TableName() string {
	return constants.TableCampaignMessages
}
