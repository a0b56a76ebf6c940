package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/reportdesk/reportdesk-core/internal/app/errors"
	"github.com/reportdesk/reportdesk-core/internal/app/models"
	"gorm.io/gorm"
)

// AuditService writes the two append-only trails: report_history (the system
// of record for status transitions) and activity_logs (dashboard feed).
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{
		db: db,
	}
}

// LogReportHistory appends one transition entry for a report.
func (s *AuditService) LogReportHistory(reportID uuid.UUID, action string, previousStatus *models.ReportStatus, newStatus models.ReportStatus, comments string, performedBy uuid.UUID) error {
	entry := &models.ReportHistory{
		ReportID:       reportID,
		Action:         action,
		PreviousStatus: previousStatus,
		NewStatus:      newStatus,
		PerformedBy:    performedBy,
	}
	if comments != "" {
		entry.Comments = &comments
	}

	if err := s.db.Create(entry).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to create report history entry")
	}
	return nil
}

// LogActivity appends one activity log row with a jsonb details blob.
func (s *AuditService) LogActivity(userID uuid.UUID, action string, entityType string, entityID *uuid.UUID, details map[string]interface{}) error {
	var detailsJSON *string
	if details != nil {
		jsonBytes, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("failed to marshal activity details: %w", err)
		}
		strJSON := string(jsonBytes)
		detailsJSON = &strJSON
	}

	entry := &models.ActivityLog{
		UserID:   userID,
		Action:   action,
		EntityID: entityID,
		Details:  detailsJSON,
	}
	if entityType != "" {
		entry.EntityType = &entityType
	}

	if err := s.db.Create(entry).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to create activity log entry")
	}
	return nil
}

// GetReportHistory returns the transition trail of one report, newest first.
func (s *AuditService) GetReportHistory(reportID uuid.UUID) ([]models.ReportHistory, error) {
	var history []models.ReportHistory
	if err := s.db.Where("report_id = ?", reportID).
		Order("created_at DESC").
		Find(&history).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get report history")
	}
	return history, nil
}

// GetRecentReviewerActions returns the latest approve/reject/comment entries
// from the activity log.
func (s *AuditService) GetRecentReviewerActions(limit int) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	if err := s.db.
		Where("LOWER(action) LIKE ? OR LOWER(action) LIKE ? OR LOWER(action) LIKE ?", "%approved%", "%rejected%", "%comment%").
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get recent actions")
	}
	return logs, nil
}
