package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProofStatus string

const (
	ProofStatusPendingApproval ProofStatus = "pending_approval"
	ProofStatusApproved        ProofStatus = "approved"
	ProofStatusRejected        ProofStatus = "rejected"
)

// PaymentProof is an uploaded artifact evidencing payment against a report.
type PaymentProof struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ReportID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"report_id"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	FileType        string          `gorm:"type:varchar(50)" json:"file_type"`
	Notes           *string         `gorm:"type:text" json:"notes,omitempty"`
	Status          ProofStatus     `gorm:"type:varchar(30);not null;default:pending_approval;index" json:"status"`
	ManagerComments *string         `gorm:"type:text" json:"manager_comments,omitempty"`
	ApprovedBy      *uuid.UUID      `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	UploadedAt      time.Time       `gorm:"autoCreateTime" json:"uploaded_at"`

	Report *Report `gorm:"foreignKey:ReportID" json:"report,omitempty"`
}

func (p *PaymentProof) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type PaymentProofActionRequest struct {
	PaymentProofID string       `json:"paymentProofId" validate:"required,uuid"`
	Action         ReviewAction `json:"action" validate:"required,oneof=approve reject"`
	Comments       string       `json:"comments" validate:"omitempty,max=2000"`
}
