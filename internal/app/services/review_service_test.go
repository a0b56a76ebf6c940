package services

import (
	"errors"
	"net/http"
	"testing"

	apperrors "github.com/reportdesk/reportdesk-core/internal/app/errors"
	"github.com/reportdesk/reportdesk-core/internal/app/models"
	"github.com/reportdesk/reportdesk-core/internal/infrastructures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReviewService(db *gorm.DB) *ReviewService {
	reportService := NewReportService(db)
	auditService := NewAuditService(db)
	notificationService := NewNotificationService(db)
	return NewReviewService(db, infrastructures.NewValidator(), reportService, auditService, notificationService)
}

func statusCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.StatusCode
}

func TestApproveReport_Approve(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, models.RoleManager, true)
	owner := seedUser(t, db, models.RoleUser, true)
	report := seedReport(t, db, owner, models.ReportStatusPending, "1250.50")

	service := newReviewService(db)
	result, err := service.ApproveReport(manager, &models.ReportActionRequest{
		ReportID: report.ID.String(),
		Action:   models.ReviewActionApprove,
		Comments: "Looks good",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusApproved, result.NewStatus)

	var updated models.Report
	require.NoError(t, db.First(&updated, "id = ?", report.ID).Error)
	assert.Equal(t, models.ReportStatusApproved, updated.Status)
	require.NotNil(t, updated.ProcessingDetails)
	assert.Contains(t, *updated.ProcessingDetails, "managerAction")

	var history []models.ReportHistory
	require.NoError(t, db.Where("report_id = ?", report.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, "report_approved", history[0].Action)
	require.NotNil(t, history[0].PreviousStatus)
	assert.Equal(t, models.ReportStatusPending, *history[0].PreviousStatus)
	assert.Equal(t, models.ReportStatusApproved, history[0].NewStatus)
	assert.Equal(t, manager.ID, history[0].PerformedBy)

	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", owner.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationReportApproved, notifications[0].Type)

	var activity []models.ActivityLog
	require.NoError(t, db.Where("user_id = ?", manager.ID).Find(&activity).Error)
	require.Len(t, activity, 1)
	assert.Contains(t, activity[0].Action, "approved")
}

func TestApproveReport_RejectStoresReason(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, models.RoleManager, true)
	owner := seedUser(t, db, models.RoleUser, true)
	report := seedReport(t, db, owner, models.ReportStatusPending, "800")

	service := newReviewService(db)
	result, err := service.ApproveReport(manager, &models.ReportActionRequest{
		ReportID: report.ID.String(),
		Action:   models.ReviewActionReject,
		Comments: "Missing receipts",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusRejected, result.NewStatus)

	var updated models.Report
	require.NoError(t, db.First(&updated, "id = ?", report.ID).Error)
	assert.Equal(t, models.ReportStatusRejected, updated.Status)
	require.NotNil(t, updated.RejectionReason)
	assert.Equal(t, "Missing receipts", *updated.RejectionReason)

	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", owner.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationReportRejected, notifications[0].Type)
}

func TestApproveReport_NotFound(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, models.RoleManager, true)

	service := newReviewService(db)
	_, err := service.ApproveReport(manager, &models.ReportActionRequest{
		ReportID: "3f2a4c4e-9c43-4b0e-8f8e-1f0f8b9a0001",
		Action:   models.ReviewActionApprove,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusCode(t, err))
}

func TestApproveReport_InvalidAction(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, models.RoleManager, true)
	owner := seedUser(t, db, models.RoleUser, true)
	report := seedReport(t, db, owner, models.ReportStatusPending, "100")

	service := newReviewService(db)
	_, err := service.ApproveReport(manager, &models.ReportActionRequest{
		ReportID: report.ID.String(),
		Action:   "escalate",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusCode(t, err))
}

func TestQuickAction_ApproveSetsApprover(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, models.RoleManager, true)
	owner := seedUser(t, db, models.RoleUser, true)
	report := seedReport(t, db, owner, models.ReportStatusPending, "420")

	service := newReviewService(db)
	result, err := service.QuickAction(manager, &models.QuickActionRequest{
		ReportID: report.ID.String(),
		Action:   models.ReviewActionApprove,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusApproved, result.NewStatus)

	var updated models.Report
	require.NoError(t, db.First(&updated, "id = ?", report.ID).Error)
	require.NotNil(t, updated.ApprovedBy)
	assert.Equal(t, manager.ID, *updated.ApprovedBy)
	assert.NotNil(t, updated.ApprovedAt)
}

func TestQuickAction_RejectStoresDefaultReason(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, models.RoleManager, true)
	owner := seedUser(t, db, models.RoleUser, true)
	report := seedReport(t, db, owner, models.ReportStatusPending, "420")

	service := newReviewService(db)
	_, err := service.QuickAction(manager, &models.QuickActionRequest{
		ReportID: report.ID.String(),
		Action:   models.ReviewActionReject,
	})
	require.NoError(t, err)

	var updated models.Report
	require.NoError(t, db.First(&updated, "id = ?", report.ID).Error)
	require.NotNil(t, updated.RejectionReason)
	assert.Equal(t, "Quick rejection from dashboard", *updated.RejectionReason)
}

func TestQuickAction_NonPendingIsRejectedWithoutWrites(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, models.RoleManager, true)
	owner := seedUser(t, db, models.RoleUser, true)
	report := seedReport(t, db, owner, models.ReportStatusApproved, "420")

	service := newReviewService(db)
	_, err := service.QuickAction(manager, &models.QuickActionRequest{
		ReportID: report.ID.String(),
		Action:   models.ReviewActionReject,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusCode(t, err))

	var updated models.Report
	require.NoError(t, db.First(&updated, "id = ?", report.ID).Error)
	assert.Equal(t, models.ReportStatusApproved, updated.Status)

	var historyCount, notificationCount int64
	require.NoError(t, db.Model(&models.ReportHistory{}).Count(&historyCount).Error)
	require.NoError(t, db.Model(&models.Notification{}).Count(&notificationCount).Error)
	assert.Zero(t, historyCount)
	assert.Zero(t, notificationCount)
}

func TestAddComment_WithoutActionKeepsStatus(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, models.RoleManager, true)
	owner := seedUser(t, db, models.RoleUser, true)
	report := seedReport(t, db, owner, models.ReportStatusProcessing, "90")

	service := newReviewService(db)
	result, err := service.AddComment(manager, &models.AddCommentRequest{
		ReportID: report.ID.String(),
		Comment:  "Please split travel and lodging",
	})
	require.NoError(t, err)
	assert.Equal(t, "comment", result.Action)
	assert.Equal(t, models.ReportStatusProcessing, result.Status)

	var updated models.Report
	require.NoError(t, db.First(&updated, "id = ?", report.ID).Error)
	assert.Equal(t, models.ReportStatusProcessing, updated.Status)
	require.NotNil(t, updated.ManagerComments)
	assert.Equal(t, "Please split travel and lodging", *updated.ManagerComments)

	var history []models.ReportHistory
	require.NoError(t, db.Where("report_id = ?", report.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, "comment_added", history[0].Action)

	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", owner.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationCommentAdded, notifications[0].Type)
}

func TestAddComment_RejectTransitionsAndStoresReason(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, models.RoleManager, true)
	owner := seedUser(t, db, models.RoleUser, true)
	report := seedReport(t, db, owner, models.ReportStatusPending, "90")

	service := newReviewService(db)
	result, err := service.AddComment(manager, &models.AddCommentRequest{
		ReportID: report.ID.String(),
		Comment:  "Amounts do not match the receipts",
		Action:   models.ReviewActionReject,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusRejected, result.Status)

	var updated models.Report
	require.NoError(t, db.First(&updated, "id = ?", report.ID).Error)
	assert.Equal(t, models.ReportStatusRejected, updated.Status)
	require.NotNil(t, updated.RejectionReason)
	assert.Equal(t, "Amounts do not match the receipts", *updated.RejectionReason)

	var history []models.ReportHistory
	require.NoError(t, db.Where("report_id = ?", report.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, "manager_rejected", history[0].Action)
}

func TestApprovePaymentProof_ApprovePropagatesToReport(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, models.RoleManager, true)
	owner := seedUser(t, db, models.RoleUser, true)
	report := seedReport(t, db, owner, models.ReportStatusApproved, "5000")
	proof := seedProof(t, db, report, models.ProofStatusPendingApproval, "5000")

	service := newReviewService(db)
	result, err := service.ApprovePaymentProof(manager, &models.PaymentProofActionRequest{
		PaymentProofID: proof.ID.String(),
		Action:         models.ReviewActionApprove,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProofStatusApproved, result.Status)
	assert.Equal(t, models.PaymentStatusCompleted, result.PaymentStatus)

	var updatedProof models.PaymentProof
	require.NoError(t, db.First(&updatedProof, "id = ?", proof.ID).Error)
	assert.Equal(t, models.ProofStatusApproved, updatedProof.Status)
	require.NotNil(t, updatedProof.ApprovedBy)
	assert.Equal(t, manager.ID, *updatedProof.ApprovedBy)
	assert.NotNil(t, updatedProof.ApprovedAt)

	var updatedReport models.Report
	require.NoError(t, db.First(&updatedReport, "id = ?", report.ID).Error)
	require.NotNil(t, updatedReport.PaymentStatus)
	assert.Equal(t, models.PaymentStatusCompleted, *updatedReport.PaymentStatus)
	require.NotNil(t, updatedReport.PaymentProofStatus)
	assert.Equal(t, models.ProofStatusApproved, *updatedReport.PaymentProofStatus)

	var history []models.ReportHistory
	require.NoError(t, db.Where("report_id = ?", report.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, "payment_proof_approved", history[0].Action)

	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", owner.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationPaymentProofApproved, notifications[0].Type)
}

func TestApprovePaymentProof_RejectPropagatesToReport(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, models.RoleManager, true)
	owner := seedUser(t, db, models.RoleUser, true)
	report := seedReport(t, db, owner, models.ReportStatusApproved, "5000")
	proof := seedProof(t, db, report, models.ProofStatusPendingApproval, "5000")

	service := newReviewService(db)
	result, err := service.ApprovePaymentProof(manager, &models.PaymentProofActionRequest{
		PaymentProofID: proof.ID.String(),
		Action:         models.ReviewActionReject,
		Comments:       "Transfer reference does not match",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProofStatusRejected, result.Status)
	assert.Equal(t, models.PaymentStatusRejected, result.PaymentStatus)

	var updatedProof models.PaymentProof
	require.NoError(t, db.First(&updatedProof, "id = ?", proof.ID).Error)
	assert.Nil(t, updatedProof.ApprovedAt)
	require.NotNil(t, updatedProof.ManagerComments)
	assert.Equal(t, "Transfer reference does not match", *updatedProof.ManagerComments)

	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", owner.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationPaymentProofRejected, notifications[0].Type)
	assert.Contains(t, notifications[0].Message, "Transfer reference does not match")
}
