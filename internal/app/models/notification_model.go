package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationReportApproved       NotificationType = "report_approved"
	NotificationReportRejected       NotificationType = "report_rejected"
	NotificationCommentAdded         NotificationType = "comment_added"
	NotificationPaymentProofApproved NotificationType = "payment_proof_approved"
	NotificationPaymentProofRejected NotificationType = "payment_proof_rejected"
)

// Notification is one entry of a user's inbox. Data carries identifiers the
// client needs for deep-linking (reportId, action, comment, ...).
type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(50);not null" json:"type"`
	Title     string           `gorm:"not null" json:"title"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Data      *string          `gorm:"type:jsonb" json:"data,omitempty"`
	Read      bool             `gorm:"not null;default:false;index" json:"read"`
	CreatedAt time.Time        `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

type NotificationIDRequest struct {
	NotificationID string `json:"notificationId" validate:"required,uuid"`
}
