package services

import (
	"testing"

	"github.com/reportdesk/reportdesk-core/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReportHistory_ReturnsTrailForReport(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, models.RoleManager, true)
	owner := seedUser(t, db, models.RoleUser, true)
	report := seedReport(t, db, owner, models.ReportStatusPending, "100")
	other := seedReport(t, db, owner, models.ReportStatusPending, "200")

	service := NewAuditService(db)
	pending := models.ReportStatusPending
	require.NoError(t, service.LogReportHistory(report.ID, "report_approved", &pending, models.ReportStatusApproved, "ok", manager.ID))
	require.NoError(t, service.LogReportHistory(report.ID, "comment_added", nil, models.ReportStatusApproved, "follow-up", manager.ID))
	require.NoError(t, service.LogReportHistory(other.ID, "report_rejected", &pending, models.ReportStatusRejected, "", manager.ID))

	history, err := service.GetReportHistory(report.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, entry := range history {
		assert.Equal(t, report.ID, entry.ReportID)
	}

	// Empty comments are stored as NULL, not "".
	rejected, err := service.GetReportHistory(other.ID)
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Nil(t, rejected[0].Comments)
}

func TestGetRecentReviewerActions_FiltersAndCaps(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, models.RoleManager, true)

	service := NewAuditService(db)
	require.NoError(t, service.LogActivity(manager.ID, "Report approved: a.xlsx", "report", nil, nil))
	require.NoError(t, service.LogActivity(manager.ID, "Report rejected: b.xlsx", "report", nil, nil))
	require.NoError(t, service.LogActivity(manager.ID, "Comment added to report", "report", nil, nil))
	require.NoError(t, service.LogActivity(manager.ID, "User signed in", "user", nil, nil))

	actions, err := service.GetRecentReviewerActions(10)
	require.NoError(t, err)
	assert.Len(t, actions, 3)

	capped, err := service.GetRecentReviewerActions(2)
	require.NoError(t, err)
	assert.Len(t, capped, 2)
}
