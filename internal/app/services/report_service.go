package services

import (
	"github.com/google/uuid"
	"github.com/reportdesk/reportdesk-core/internal/app/errors"
	"github.com/reportdesk/reportdesk-core/internal/app/models"
	"gorm.io/gorm"
)

// ReportService covers the read side of reports and payment proofs.
// Submission and proof upload happen outside this service.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{
		db: db,
	}
}

func (s *ReportService) GetReport(id string) (*models.Report, error) {
	reportID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid report ID format")
	}

	var report models.Report
	err = s.db.Preload("User").Where("id = ?", reportID).First(&report).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Report not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get report")
	}
	return &report, nil
}

func (s *ReportService) GetPaymentProof(id string) (*models.PaymentProof, error) {
	proofID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid payment proof ID format")
	}

	var proof models.PaymentProof
	err = s.db.Preload("Report").Where("id = ?", proofID).First(&proof).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Payment proof not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get payment proof")
	}
	return &proof, nil
}

// PendingReports returns every report awaiting manager review, newest first,
// with the owner preloaded.
func (s *ReportService) PendingReports() ([]models.Report, error) {
	var reports []models.Report
	if err := s.db.Preload("User").
		Where("status = ?", models.ReportStatusPendingApproval).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to fetch pending reports")
	}
	return reports, nil
}

// RecentPendingReports returns the newest reports in pending state, capped at
// limit, for the recent-activity feed.
func (s *ReportService) RecentPendingReports(limit int) ([]models.Report, error) {
	var reports []models.Report
	if err := s.db.Preload("User").
		Where("status = ?", models.ReportStatusPending).
		Order("created_at DESC").
		Limit(limit).
		Find(&reports).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to fetch pending reports")
	}
	return reports, nil
}

// RecentPendingProofs returns the newest proofs awaiting approval, capped at
// limit.
func (s *ReportService) RecentPendingProofs(limit int) ([]models.PaymentProof, error) {
	var proofs []models.PaymentProof
	if err := s.db.
		Where("status = ?", models.ProofStatusPendingApproval).
		Order("uploaded_at DESC").
		Limit(limit).
		Find(&proofs).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to fetch pending payment proofs")
	}
	return proofs, nil
}
