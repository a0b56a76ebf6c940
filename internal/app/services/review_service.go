package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/reportdesk/reportdesk-core/internal/app/errors"
	"github.com/reportdesk/reportdesk-core/internal/app/models"
	"github.com/reportdesk/reportdesk-core/internal/infrastructures"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReviewService implements the approve/reject/comment workflow. Every primary
// status mutation is followed by best-effort history, activity and
// notification writes: a failure there is logged and does not roll back or
// fail the request once the status change has been persisted.
type ReviewService struct {
	db                  *gorm.DB
	validator           *infrastructures.Validator
	reportService       *ReportService
	auditService        *AuditService
	notificationService *NotificationService
}

func NewReviewService(
	db *gorm.DB,
	validator *infrastructures.Validator,
	reportService *ReportService,
	auditService *AuditService,
	notificationService *NotificationService,
) *ReviewService {
	return &ReviewService{
		db:                  db,
		validator:           validator,
		reportService:       reportService,
		auditService:        auditService,
		notificationService: notificationService,
	}
}

func statusForAction(action models.ReviewAction) models.ReportStatus {
	if action == models.ReviewActionApprove {
		return models.ReportStatusApproved
	}
	return models.ReportStatusRejected
}

func pastTense(action models.ReviewAction) string {
	if action == models.ReviewActionApprove {
		return "approved"
	}
	return "rejected"
}

// mergeManagerAction folds a managerAction object into the report's free-form
// processing_details blob, preserving whatever is already there.
func mergeManagerAction(existing *string, action models.ReviewAction, comments string, actor *models.User) *string {
	details := map[string]interface{}{}
	if existing != nil && *existing != "" {
		if err := json.Unmarshal([]byte(*existing), &details); err != nil {
			logrus.Warnf("unparseable processing_details, overwriting: %v", err)
			details = map[string]interface{}{}
		}
	}

	details["managerAction"] = map[string]interface{}{
		"action":      string(action),
		"comments":    comments,
		"managerId":   actor.ID.String(),
		"managerName": actor.FullName,
		"actionDate":  time.Now().UTC().Format(time.RFC3339),
	}

	jsonBytes, err := json.Marshal(details)
	if err != nil {
		logrus.Warnf("failed to marshal processing_details: %v", err)
		return existing
	}
	merged := string(jsonBytes)
	return &merged
}

// ApproveReport applies an approve/reject action to a report. The transition
// is applied regardless of the report's current status; quick-action is the
// strict variant.
func (s *ReviewService) ApproveReport(actor *models.User, req *models.ReportActionRequest) (*models.ReportActionResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	report, err := s.reportService.GetReport(req.ReportID)
	if err != nil {
		return nil, err
	}

	previousStatus := report.Status
	newStatus := statusForAction(req.Action)

	report.Status = newStatus
	report.ProcessingDetails = mergeManagerAction(report.ProcessingDetails, req.Action, req.Comments, actor)
	if req.Action == models.ReviewActionReject && req.Comments != "" {
		reason := req.Comments
		report.RejectionReason = &reason
	}

	if err := s.db.Save(report).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update report status")
	}

	s.recordReportOutcome(actor, report, previousStatus, req.Action, req.Comments, false)

	return &models.ReportActionResult{
		ReportID:  report.ID.String(),
		NewStatus: newStatus,
		Action:    req.Action,
	}, nil
}

// QuickAction is the strict dashboard variant: it only acts on reports that
// are still pending and refuses everything else with a 400.
func (s *ReviewService) QuickAction(actor *models.User, req *models.QuickActionRequest) (*models.ReportActionResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	report, err := s.reportService.GetReport(req.ReportID)
	if err != nil {
		return nil, err
	}

	if report.Status != models.ReportStatusPending {
		return nil, errors.NewBadRequestError("Report is not pending approval")
	}

	previousStatus := report.Status
	newStatus := statusForAction(req.Action)

	report.Status = newStatus
	if req.Action == models.ReviewActionApprove {
		now := time.Now()
		report.ApprovedBy = &actor.ID
		report.ApprovedAt = &now
	} else {
		reason := "Quick rejection from dashboard"
		report.RejectionReason = &reason
	}

	if err := s.db.Save(report).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update report status")
	}

	s.recordReportOutcome(actor, report, previousStatus, req.Action, fmt.Sprintf("Quick %s from manager dashboard", req.Action), true)

	return &models.ReportActionResult{
		ReportID:  report.ID.String(),
		NewStatus: newStatus,
		Action:    req.Action,
	}, nil
}

// AddComment attaches a manager comment to a report and, when an action is
// given, transitions its status as well.
func (s *ReviewService) AddComment(actor *models.User, req *models.AddCommentRequest) (*models.AddCommentResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	report, err := s.reportService.GetReport(req.ReportID)
	if err != nil {
		return nil, err
	}

	previousStatus := report.Status
	comment := req.Comment
	report.ManagerComments = &comment

	if req.Action != "" {
		report.Status = statusForAction(req.Action)
		if req.Action == models.ReviewActionReject {
			report.RejectionReason = &comment
		}
	}

	if err := s.db.Save(report).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to add comment")
	}

	historyAction := "comment_added"
	if req.Action != "" {
		historyAction = "manager_" + pastTense(req.Action)
	}
	if err := s.auditService.LogReportHistory(report.ID, historyAction, &previousStatus, report.Status, comment, actor.ID); err != nil {
		logrus.Warnf("report history write failed for %s: %v", report.ID, err)
	}

	var notificationType models.NotificationType
	var title, message string
	if req.Action != "" {
		notificationType = models.NotificationType("report_" + pastTense(req.Action))
		if req.Action == models.ReviewActionApprove {
			title = "Report Approved"
		} else {
			title = "Report Rejected"
		}
		message = fmt.Sprintf("Your report %q has been %s. %s", report.Filename, pastTense(req.Action), comment)
	} else {
		notificationType = models.NotificationCommentAdded
		title = "Manager Comment Added"
		message = fmt.Sprintf("A manager has added a comment to your report %q. %s", report.Filename, comment)
	}

	resultAction := "comment"
	if req.Action != "" {
		resultAction = string(req.Action)
	}

	if err := s.notificationService.Notify(report.UserID, notificationType, title, message, map[string]interface{}{
		"reportId": report.ID.String(),
		"action":   resultAction,
		"comment":  comment,
	}); err != nil {
		logrus.Warnf("notification write failed for report %s: %v", report.ID, err)
	}

	return &models.AddCommentResult{
		ReportID: report.ID.String(),
		Comment:  comment,
		Action:   resultAction,
		Status:   report.Status,
	}, nil
}

// ApprovePaymentProof transitions a payment proof and propagates the payment
// status onto its parent report. The two updates are independent writes, not
// one transaction; a failure between them leaves the proof updated and the
// report stale, matching the documented best-effort semantics.
func (s *ReviewService) ApprovePaymentProof(actor *models.User, req *models.PaymentProofActionRequest) (*models.PaymentProofActionResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	proof, err := s.reportService.GetPaymentProof(req.PaymentProofID)
	if err != nil {
		return nil, err
	}
	if proof.Report == nil {
		return nil, errors.NewNotFoundError("Payment proof has no parent report")
	}

	previousProofStatus := proof.Status
	var newStatus models.ProofStatus
	var paymentStatus models.PaymentStatus
	if req.Action == models.ReviewActionApprove {
		newStatus = models.ProofStatusApproved
		paymentStatus = models.PaymentStatusCompleted
	} else {
		newStatus = models.ProofStatusRejected
		paymentStatus = models.PaymentStatusRejected
	}

	proof.Status = newStatus
	proof.ApprovedBy = &actor.ID
	if req.Action == models.ReviewActionApprove {
		now := time.Now()
		proof.ApprovedAt = &now
	} else {
		proof.ApprovedAt = nil
	}
	if req.Comments != "" {
		comments := req.Comments
		proof.ManagerComments = &comments
	} else {
		proof.ManagerComments = nil
	}

	report := proof.Report
	proof.Report = nil
	if err := s.db.Save(proof).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update payment proof")
	}

	report.PaymentStatus = &paymentStatus
	report.PaymentProofStatus = &newStatus
	report.ManagerComments = proof.ManagerComments
	if err := s.db.Save(report).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update report")
	}

	historyComments := req.Comments
	if historyComments == "" {
		historyComments = fmt.Sprintf("Payment proof %s by manager", pastTense(req.Action))
	}
	if err := s.auditService.LogReportHistory(report.ID, "payment_proof_"+pastTense(req.Action),
		(*models.ReportStatus)(&previousProofStatus), models.ReportStatus(newStatus), historyComments, actor.ID); err != nil {
		logrus.Warnf("report history write failed for %s: %v", report.ID, err)
	}

	var title, message string
	if req.Action == models.ReviewActionApprove {
		title = "Payment Proof Approved"
		message = "Your payment proof has been approved and payment is now completed."
	} else {
		title = "Payment Proof Rejected"
		if req.Comments != "" {
			message = fmt.Sprintf("Your payment proof has been rejected. Reason: %s", req.Comments)
		} else {
			message = "Your payment proof has been rejected. Please resubmit with correct documentation."
		}
	}

	if err := s.notificationService.Notify(report.UserID,
		models.NotificationType("payment_proof_"+pastTense(req.Action)),
		title, message, map[string]interface{}{
			"reportId":       report.ID.String(),
			"paymentProofId": proof.ID.String(),
			"action":         string(req.Action),
			"comments":       req.Comments,
		}); err != nil {
		logrus.Warnf("notification write failed for report %s: %v", report.ID, err)
	}

	return &models.PaymentProofActionResult{
		PaymentProofID: proof.ID.String(),
		ReportID:       report.ID.String(),
		Status:         newStatus,
		PaymentStatus:  paymentStatus,
		Comments:       req.Comments,
	}, nil
}

// recordReportOutcome performs the shared best-effort side writes after a
// report transition: history entry, activity log row, owner notification.
func (s *ReviewService) recordReportOutcome(actor *models.User, report *models.Report, previousStatus models.ReportStatus, action models.ReviewAction, comments string, quick bool) {
	historyAction := "report_" + pastTense(action)
	if err := s.auditService.LogReportHistory(report.ID, historyAction, &previousStatus, report.Status, comments, actor.ID); err != nil {
		logrus.Warnf("report history write failed for %s: %v", report.ID, err)
	}

	activityAction := fmt.Sprintf("Report %s: %s", pastTense(action), report.Filename)
	if err := s.auditService.LogActivity(actor.ID, activityAction, "report", &report.ID, map[string]interface{}{
		"reportId":    report.ID.String(),
		"userId":      report.UserID.String(),
		"action":      string(action),
		"filename":    report.Filename,
		"comments":    comments,
		"totalAmount": report.TotalAmount,
		"quickAction": quick,
	}); err != nil {
		logrus.Warnf("activity log write failed for %s: %v", report.ID, err)
	}

	var notificationType models.NotificationType
	var title, message string
	if action == models.ReviewActionApprove {
		notificationType = models.NotificationReportApproved
		title = "Report Approved"
		message = fmt.Sprintf("Your report %q has been approved by %s", report.Filename, actor.FullName)
	} else {
		notificationType = models.NotificationReportRejected
		title = "Report Rejected"
		message = fmt.Sprintf("Your report %q has been rejected. Please review and resubmit if needed.", report.Filename)
	}

	if err := s.notificationService.Notify(report.UserID, notificationType, title, message, map[string]interface{}{
		"reportId":    report.ID.String(),
		"action":      string(action),
		"comments":    comments,
		"managerId":   actor.ID.String(),
		"managerName": actor.FullName,
	}); err != nil {
		logrus.Warnf("notification write failed for report %s: %v", report.ID, err)
	}
}
