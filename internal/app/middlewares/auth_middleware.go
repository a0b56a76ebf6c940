package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/reportdesk/reportdesk-core/internal/app/errors"
	"github.com/reportdesk/reportdesk-core/internal/app/models"
	"github.com/reportdesk/reportdesk-core/internal/app/pkg"
	"github.com/reportdesk/reportdesk-core/internal/app/services"
)

// SessionCookie is the cookie the web client stores its access token in.
const SessionCookie = "access_token"

type AuthMiddleware struct {
	identityService *services.IdentityService
	userService     *services.UserService
}

func NewAuthMiddleware(identityService *services.IdentityService, userService *services.UserService) *AuthMiddleware {
	return &AuthMiddleware{identityService: identityService, userService: userService}
}

func (m *AuthMiddleware) resolve(c *fiber.Ctx, token string) error {
	identityUser, err := m.identityService.GetUser(token)
	if err != nil {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("Authentication required"))
	}

	// Role and active flag are re-read on every request; both can change
	// between requests and sessions outlive either.
	user, err := m.userService.GetActiveProfile(identityUser.ID)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	c.Locals("user", user)
	c.Locals("access_token", token)

	return c.Next()
}

// Authenticate resolves the caller from the Authorization header or the
// session cookie and loads the active profile row into c.Locals("user").
func (m *AuthMiddleware) Authenticate(c *fiber.Ctx) error {
	token := c.Get("Authorization")
	if token != "" {
		token = strings.Replace(token, "Bearer ", "", 1)
	} else {
		token = c.Cookies(SessionCookie)
	}

	if token == "" {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("Authentication required"))
	}

	return m.resolve(c, token)
}

// AuthenticateBearer is the legacy variant: it accepts only a bearer token,
// never the session cookie.
func (m *AuthMiddleware) AuthenticateBearer(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("No token provided"))
	}

	return m.resolve(c, strings.TrimPrefix(header, "Bearer "))
}

// RequireRoles gates an operation to the given roles. Runs after Authenticate.
func (m *AuthMiddleware) RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok || user == nil {
			return pkg.ErrorResponse(c, errors.NewUnauthorizedError("Authentication required"))
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return pkg.ErrorResponse(c, errors.NewForbiddenError())
	}
}

// CurrentUser returns the profile resolved by Authenticate.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

// CurrentToken returns the access token resolved by Authenticate.
func CurrentToken(c *fiber.Ctx) string {
	token, _ := c.Locals("access_token").(string)
	return token
}
