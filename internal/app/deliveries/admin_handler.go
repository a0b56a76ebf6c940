package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reportdesk/reportdesk-core/internal/app/middlewares"
	"github.com/reportdesk/reportdesk-core/internal/app/models"
	"github.com/reportdesk/reportdesk-core/internal/app/pkg"
	"github.com/reportdesk/reportdesk-core/internal/app/services"
)

// AdminHandler covers user provisioning and the user listing. The listing is
// the one legacy endpoint that accepts only a bearer token, never the cookie.
type AdminHandler struct {
	userService    *services.UserService
	authMiddleware *middlewares.AuthMiddleware
}

func NewAdminHandler(userService *services.UserService, authMiddleware *middlewares.AuthMiddleware) *AdminHandler {
	return &AdminHandler{
		userService:    userService,
		authMiddleware: authMiddleware,
	}
}

func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminGroup := router.Group("/admin")

	adminGroup.Get("/users",
		h.authMiddleware.AuthenticateBearer,
		h.authMiddleware.RequireRoles(models.RoleAdmin),
		h.ListUsers)
	adminGroup.Post("/users/create",
		h.authMiddleware.Authenticate,
		h.authMiddleware.RequireRoles(models.RoleAdmin),
		h.CreateUser)
	adminGroup.Post("/users/:id/deactivate",
		h.authMiddleware.Authenticate,
		h.authMiddleware.RequireRoles(models.RoleAdmin),
		h.DeactivateUser)
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	filter := models.UserListFilter{
		Role:   c.Query("role"),
		Status: c.Query("status"),
	}

	users, err := h.userService.ListUsers(&filter)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return c.JSON(struct {
		models.WebResponse
		Users []models.User `json:"users"`
	}{
		WebResponse: models.WebResponse{Success: true},
		Users:       users,
	})
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req models.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	admin := middlewares.CurrentUser(c)
	user, err := h.userService.ProvisionUser(&req, admin.ID)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(struct {
		models.WebResponse
		UserID string `json:"userId"`
	}{
		WebResponse: models.WebResponse{Success: true, Message: "User created successfully. An invitation email has been sent."},
		UserID:      user.ID.String(),
	})
}

func (h *AdminHandler) DeactivateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	parsed, err := parseUserID(id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	user, err := h.userService.DeactivateUser(parsed)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return c.JSON(struct {
		models.WebResponse
		User *models.User `json:"user"`
	}{
		WebResponse: models.WebResponse{Success: true, Message: "User deactivated"},
		User:        user,
	})
}
