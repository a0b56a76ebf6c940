package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/reportdesk/reportdesk-core/internal/app/errors"
	"github.com/reportdesk/reportdesk-core/internal/app/middlewares"
	"github.com/reportdesk/reportdesk-core/internal/app/models"
	"github.com/reportdesk/reportdesk-core/internal/app/pkg"
	"github.com/reportdesk/reportdesk-core/internal/app/services"
)

// AuthHandler proxies session management to the identity provider and keeps
// the profile's last_login current.
type AuthHandler struct {
	identityService *services.IdentityService
	userService     *services.UserService
	authMiddleware  *middlewares.AuthMiddleware
}

func NewAuthHandler(identityService *services.IdentityService, userService *services.UserService, authMiddleware *middlewares.AuthMiddleware) *AuthHandler {
	return &AuthHandler{
		identityService: identityService,
		userService:     userService,
		authMiddleware:  authMiddleware,
	}
}

func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authGroup := router.Group("/auth")

	authGroup.Post("/login", h.Login)
	authGroup.Post("/logout", h.authMiddleware.Authenticate, h.Logout)
	authGroup.Get("/me", h.authMiddleware.Authenticate, h.Me)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	if req.Email == "" || req.Password == "" {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Email and password are required"))
	}

	session, err := h.identityService.SignInWithPassword(req.Email, req.Password)
	if err != nil {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("Invalid credentials"))
	}

	user, err := h.userService.GetActiveProfile(session.User.ID)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	h.userService.TouchLastLogin(user.ID)

	c.Cookie(&fiber.Cookie{
		Name:     middlewares.SessionCookie,
		Value:    session.AccessToken,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   session.ExpiresIn,
	})

	return c.JSON(struct {
		models.WebResponse
		User    *models.User            `json:"user"`
		Session *models.IdentitySession `json:"session"`
	}{
		WebResponse: models.WebResponse{Success: true},
		User:        user,
		Session:     session,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.identityService.SignOut(middlewares.CurrentToken(c)); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	c.ClearCookie(middlewares.SessionCookie)
	return pkg.SuccessResponse(c, "Signed out")
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middlewares.CurrentUser(c)

	return c.JSON(struct {
		models.WebResponse
		User *models.User `json:"user"`
	}{
		WebResponse: models.WebResponse{Success: true},
		User:        user,
	})
}

// parseUserID is shared by handlers taking a user ID path parameter.
func parseUserID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, errors.NewBadRequestError("Invalid user ID format")
	}
	return parsed, nil
}
