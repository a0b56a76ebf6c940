package deliveries

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/reportdesk/reportdesk-core/internal/app/errors"
	"github.com/reportdesk/reportdesk-core/internal/app/middlewares"
	"github.com/reportdesk/reportdesk-core/internal/app/models"
	"github.com/reportdesk/reportdesk-core/internal/app/pkg"
	"github.com/reportdesk/reportdesk-core/internal/app/services"
	"github.com/reportdesk/reportdesk-core/internal/infrastructures"
)

// ManagerHandler exposes the review workflow and the reviewer's read views.
// Every route requires an authenticated manager or admin.
type ManagerHandler struct {
	reviewService    *services.ReviewService
	reportService    *services.ReportService
	dashboardService *services.DashboardService
	auditService     *services.AuditService
	authMiddleware   *middlewares.AuthMiddleware
}

func NewManagerHandler(
	reviewService *services.ReviewService,
	reportService *services.ReportService,
	dashboardService *services.DashboardService,
	auditService *services.AuditService,
	authMiddleware *middlewares.AuthMiddleware,
) *ManagerHandler {
	return &ManagerHandler{
		reviewService:    reviewService,
		reportService:    reportService,
		dashboardService: dashboardService,
		auditService:     auditService,
		authMiddleware:   authMiddleware,
	}
}

func (h *ManagerHandler) RegisterRoutes(router fiber.Router) {
	managerGroup := router.Group("/manager",
		h.authMiddleware.Authenticate,
		h.authMiddleware.RequireRoles(models.RoleManager, models.RoleAdmin))

	managerGroup.Post("/approve-report", h.ApproveReport)
	managerGroup.Post("/approve-payment-proof", h.ApprovePaymentProof)
	managerGroup.Post("/quick-action", h.QuickAction)
	managerGroup.Post("/add-comment", h.AddComment)
	managerGroup.Get("/pending-reports", h.PendingReports)
	managerGroup.Get("/report-history/:id", h.ReportHistory)
	managerGroup.Get("/recent-activity", h.RecentActivity)
	managerGroup.Get("/dashboard-stats", h.DashboardStats)
}

func actionPastTense(action models.ReviewAction) string {
	if action == models.ReviewActionApprove {
		return "approved"
	}
	return "rejected"
}

func (h *ManagerHandler) ApproveReport(c *fiber.Ctx) error {
	var req models.ReportActionRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	result, err := h.reviewService.ApproveReport(middlewares.CurrentUser(c), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return c.JSON(struct {
		models.WebResponse
		Data *models.ReportActionResult `json:"data"`
	}{
		WebResponse: models.WebResponse{Success: true, Message: fmt.Sprintf("Report %s successfully", actionPastTense(req.Action))},
		Data:        result,
	})
}

func (h *ManagerHandler) ApprovePaymentProof(c *fiber.Ctx) error {
	var req models.PaymentProofActionRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	result, err := h.reviewService.ApprovePaymentProof(middlewares.CurrentUser(c), &req)
	if err != nil {
		// Raw detail is surfaced in development mode only.
		if infrastructures.Config != nil && infrastructures.Config.IsDevelopment() {
			return c.Status(fiber.StatusInternalServerError).JSON(struct {
				models.WebResponse
				Error string `json:"error"`
			}{
				WebResponse: models.WebResponse{Success: false, Message: "Payment proof approval failed"},
				Error:       err.Error(),
			})
		}
		return pkg.ErrorResponse(c, err)
	}

	return c.JSON(struct {
		models.WebResponse
		Data *models.PaymentProofActionResult `json:"data"`
	}{
		WebResponse: models.WebResponse{Success: true, Message: fmt.Sprintf("Payment proof %s successfully", actionPastTense(req.Action))},
		Data:        result,
	})
}

func (h *ManagerHandler) QuickAction(c *fiber.Ctx) error {
	var req models.QuickActionRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	result, err := h.reviewService.QuickAction(middlewares.CurrentUser(c), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return c.JSON(struct {
		models.WebResponse
		Data *models.ReportActionResult `json:"data"`
	}{
		WebResponse: models.WebResponse{Success: true, Message: fmt.Sprintf("Report %s successfully", actionPastTense(req.Action))},
		Data:        result,
	})
}

func (h *ManagerHandler) AddComment(c *fiber.Ctx) error {
	var req models.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	result, err := h.reviewService.AddComment(middlewares.CurrentUser(c), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	message := "Comment added successfully"
	if req.Action != "" {
		message = fmt.Sprintf("Comment and %s action added successfully", req.Action)
	}

	return c.JSON(struct {
		models.WebResponse
		Data *models.AddCommentResult `json:"data"`
	}{
		WebResponse: models.WebResponse{Success: true, Message: message},
		Data:        result,
	})
}

func (h *ManagerHandler) PendingReports(c *fiber.Ctx) error {
	reports, err := h.reportService.PendingReports()
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return c.JSON(struct {
		models.WebResponse
		Reports []models.Report `json:"reports"`
	}{
		WebResponse: models.WebResponse{Success: true},
		Reports:     reports,
	})
}

func (h *ManagerHandler) ReportHistory(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid report ID format"))
	}

	history, err := h.auditService.GetReportHistory(reportID)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return c.JSON(struct {
		models.WebResponse
		History []models.ReportHistory `json:"history"`
	}{
		WebResponse: models.WebResponse{Success: true},
		History:     history,
	})
}

func (h *ManagerHandler) RecentActivity(c *fiber.Ctx) error {
	activity := h.dashboardService.RecentActivity()

	return c.JSON(struct {
		models.WebResponse
		Activity *models.RecentActivity `json:"activity"`
	}{
		WebResponse: models.WebResponse{Success: true},
		Activity:    activity,
	})
}

func (h *ManagerHandler) DashboardStats(c *fiber.Ctx) error {
	stats := h.dashboardService.Stats(time.Now())

	return c.JSON(struct {
		models.WebResponse
		Stats *models.DashboardStats `json:"stats"`
	}{
		WebResponse: models.WebResponse{Success: true},
		Stats:       stats,
	})
}
