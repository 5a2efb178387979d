package models

import (
	"time"

	"github.com/kinetix-inc/kinetix/internal/shared/constants"
)

// SequenceModel backs the named atomic counters used for invoice and
// membership numbering.
type SequenceModel struct {
	Name      string `gorm:"primarykey;size:32"`
	Value     uint64 `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (SequenceModel) TableName() string {
	return constants.TableSequences
}
