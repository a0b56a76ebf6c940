package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportHistory is the append-only audit trail of report status transitions.
// Rows are write-once; nothing in the system mutates or deletes them.
type ReportHistory struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	ReportID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"report_id"`
	Action         string        `gorm:"type:varchar(50);not null" json:"action"`
	PreviousStatus *ReportStatus `gorm:"type:varchar(30)" json:"previous_status,omitempty"`
	NewStatus      ReportStatus  `gorm:"type:varchar(30);not null" json:"new_status"`
	Comments       *string       `gorm:"type:text" json:"comments,omitempty"`
	PerformedBy    uuid.UUID     `gorm:"type:uuid;not null" json:"performed_by"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (h *ReportHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
