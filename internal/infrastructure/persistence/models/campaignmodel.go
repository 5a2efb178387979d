package models

import (
	"time"

	"github.com/kinetix-inc/kinetix/internal/shared/constants"
)

// CampaignModel is the database persistence model for campaigns.
type CampaignModel struct {
	ID       uint   `gorm:"primarykey"`
	Name     string `gorm:"not null;size:100"`
	Subject  string `gorm:"not null;size:255"`
	Body     string `gorm:"type:text;not null"`
	Audience string `gorm:"not null;size:20"`
	Status   string `gorm:"not null;size:20;index"`

	TotalRecipients int `gorm:"not null;default:0"`
	SentCount       int `gorm:"not null;default:0"`
	FailedCount     int `gorm:"not null;default:0"`

	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (CampaignModel) TableName() string {
	return constants.TableCampaigns
}
