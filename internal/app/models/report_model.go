package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportStatus string

const (
	ReportStatusPending         ReportStatus = "pending"
	ReportStatusPendingApproval ReportStatus = "pending_approval"
	ReportStatusProcessing      ReportStatus = "processing"
	ReportStatusApproved        ReportStatus = "approved"
	ReportStatusRejected        ReportStatus = "rejected"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRejected  PaymentStatus = "rejected"
)

// Report is a user-submitted expense report subject to manager review.
// ProcessingDetails is a free-form jsonb blob; the review workflow merges a
// managerAction object into it on approve/reject.
type Report struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Filename           string          `gorm:"not null" json:"filename"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_amount"`
	Status             ReportStatus    `gorm:"type:varchar(30);not null;default:pending;index" json:"status"`
	PaymentStatus      *PaymentStatus  `gorm:"type:varchar(30)" json:"payment_status,omitempty"`
	PaymentProofStatus *ProofStatus    `gorm:"type:varchar(30)" json:"payment_proof_status,omitempty"`
	ManagerComments    *string         `gorm:"type:text" json:"manager_comments,omitempty"`
	RejectionReason    *string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	ProcessingDetails  *string         `gorm:"type:jsonb" json:"processing_details,omitempty"`
	ApprovedBy         *uuid.UUID      `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt         *time.Time      `json:"approved_at,omitempty"`
	CreatedAt          time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type ReviewAction string

const (
	ReviewActionApprove ReviewAction = "approve"
	ReviewActionReject  ReviewAction = "reject"
)

type ReportActionRequest struct {
	ReportID string       `json:"reportId" validate:"required,uuid"`
	Action   ReviewAction `json:"action" validate:"required,oneof=approve reject"`
	Comments string       `json:"comments" validate:"omitempty,max=2000"`
}

type QuickActionRequest struct {
	ReportID string       `json:"reportId" validate:"required,uuid"`
	Action   ReviewAction `json:"action" validate:"required,oneof=approve reject"`
}

type AddCommentRequest struct {
	ReportID string       `json:"reportId" validate:"required,uuid"`
	Comment  string       `json:"comment" validate:"required,max=2000"`
	Action   ReviewAction `json:"action" validate:"omitempty,oneof=approve reject"`
}
