package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reportdesk/reportdesk-core/internal/app/errors"
	"github.com/reportdesk/reportdesk-core/internal/app/middlewares"
	"github.com/reportdesk/reportdesk-core/internal/app/models"
	"github.com/reportdesk/reportdesk-core/internal/app/pkg"
	"github.com/reportdesk/reportdesk-core/internal/app/services"
)

// NotificationHandler exposes the caller's own inbox. Ownership scoping lives
// in the service predicates, so no route here can touch another user's rows.
type NotificationHandler struct {
	notificationService *services.NotificationService
	authMiddleware      *middlewares.AuthMiddleware
}

func NewNotificationHandler(notificationService *services.NotificationService, authMiddleware *middlewares.AuthMiddleware) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		authMiddleware:      authMiddleware,
	}
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notificationGroup := router.Group("/notifications", h.authMiddleware.Authenticate)

	notificationGroup.Get("/list", h.List)
	notificationGroup.Get("/latest", h.Latest)
	notificationGroup.Get("/unread-count", h.UnreadCount)
	notificationGroup.Post("/mark-read", h.MarkRead)
	notificationGroup.Delete("/delete", h.Delete)
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	user := middlewares.CurrentUser(c)

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	notifications, pagination, err := h.notificationService.List(user.ID, page, limit)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return c.JSON(struct {
		models.WebResponse
		Notifications []models.Notification `json:"notifications"`
		Pagination    *models.Pagination    `json:"pagination"`
	}{
		WebResponse:   models.WebResponse{Success: true},
		Notifications: notifications,
		Pagination:    pagination,
	})
}

func (h *NotificationHandler) Latest(c *fiber.Ctx) error {
	user := middlewares.CurrentUser(c)
	limit := c.QueryInt("limit", 5)

	notifications := h.notificationService.Latest(user.ID, limit)

	return c.JSON(struct {
		models.WebResponse
		Notifications []models.Notification `json:"notifications"`
	}{
		WebResponse:   models.WebResponse{Success: true},
		Notifications: notifications,
	})
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	user := middlewares.CurrentUser(c)

	count := h.notificationService.UnreadCount(user.ID)

	return c.JSON(struct {
		models.WebResponse
		Count int64 `json:"count"`
	}{
		WebResponse: models.WebResponse{Success: true},
		Count:       count,
	})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	user := middlewares.CurrentUser(c)

	var req models.NotificationIDRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	if req.NotificationID == "" {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Notification ID is required"))
	}

	if err := h.notificationService.MarkRead(user.ID, req.NotificationID); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, "Notification marked as read")
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	user := middlewares.CurrentUser(c)

	var req models.NotificationIDRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	if req.NotificationID == "" {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Notification ID is required"))
	}

	if err := h.notificationService.Delete(user.ID, req.NotificationID); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, "Notification deleted")
}
