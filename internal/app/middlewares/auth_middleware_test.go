package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/reportdesk/reportdesk-core/internal/app/models"
	"github.com/reportdesk/reportdesk-core/internal/app/services"
	"github.com/reportdesk/reportdesk-core/internal/infrastructures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type authFixture struct {
	app    *fiber.App
	tokens map[string]uuid.UUID
}

// newAuthFixture wires the middleware against an in-memory profile store and a
// stubbed identity provider that resolves tokens from the fixture map.
func newAuthFixture(t *testing.T) (*authFixture, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	fixture := &authFixture{tokens: map[string]uuid.UUID{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if len(token) > 7 {
			token = token[7:] // strip "Bearer "
		}
		id, ok := fixture.tokens[token]
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid JWT"})
			return
		}
		json.NewEncoder(w).Encode(models.IdentityUser{ID: id})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	previous := infrastructures.Config
	infrastructures.Config = &infrastructures.AppConfig{IDENTITY_BASE_URL: server.URL}
	t.Cleanup(func() { infrastructures.Config = previous })

	identityService := services.NewIdentityService()
	userService := services.NewUserService(db, infrastructures.NewValidator(), identityService)
	middleware := NewAuthMiddleware(identityService, userService)

	app := fiber.New()
	app.Get("/manager/ping", middleware.Authenticate, middleware.RequireRoles(models.RoleManager, models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "userId": CurrentUser(c).ID})
	})
	app.Get("/admin/ping", middleware.AuthenticateBearer, middleware.RequireRoles(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	fixture.app = app
	return fixture, db
}

func (f *authFixture) seed(t *testing.T, db *gorm.DB, role models.Role, active bool) string {
	t.Helper()

	user := &models.User{
		ID:       uuid.New(),
		Email:    uuid.NewString() + "@example.com",
		Role:     role,
		IsActive: active,
	}
	require.NoError(t, db.Create(user).Error)
	if !active {
		// GORM replaces a zero-valued IsActive with the column default (true)
		// during Create, so deactivation must be persisted separately.
		require.NoError(t, db.Model(user).Update("is_active", false).Error)
		user.IsActive = false
	}

	token := "token-" + uuid.NewString()
	f.tokens[token] = user.ID
	return token
}

func (f *authFixture) request(t *testing.T, path string, configure func(*http.Request)) *http.Response {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if configure != nil {
		configure(req)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthenticate_MissingTokenIsUnauthorized(t *testing.T) {
	fixture, _ := newAuthFixture(t)

	resp := fixture.request(t, "/manager/ping", nil)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthenticate_UnknownTokenIsUnauthorized(t *testing.T) {
	fixture, _ := newAuthFixture(t)

	resp := fixture.request(t, "/manager/ping", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer bogus")
	})
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthenticate_RegularUserIsForbidden(t *testing.T) {
	fixture, db := newAuthFixture(t)
	token := fixture.seed(t, db, models.RoleUser, true)

	resp := fixture.request(t, "/manager/ping", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, 403, resp.StatusCode)
}

func TestAuthenticate_ManagerPassesViaHeader(t *testing.T) {
	fixture, db := newAuthFixture(t)
	token := fixture.seed(t, db, models.RoleManager, true)

	resp := fixture.request(t, "/manager/ping", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, 200, resp.StatusCode)
}

func TestAuthenticate_ManagerPassesViaSessionCookie(t *testing.T) {
	fixture, db := newAuthFixture(t)
	token := fixture.seed(t, db, models.RoleManager, true)

	resp := fixture.request(t, "/manager/ping", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	})
	assert.Equal(t, 200, resp.StatusCode)
}

func TestAuthenticate_DeactivatedProfileIsUnauthorized(t *testing.T) {
	fixture, db := newAuthFixture(t)
	token := fixture.seed(t, db, models.RoleManager, false)

	resp := fixture.request(t, "/manager/ping", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthenticateBearer_IgnoresSessionCookie(t *testing.T) {
	fixture, db := newAuthFixture(t)
	token := fixture.seed(t, db, models.RoleAdmin, true)

	resp := fixture.request(t, "/admin/ping", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	})
	assert.Equal(t, 401, resp.StatusCode)

	resp = fixture.request(t, "/admin/ping", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, 200, resp.StatusCode)
}

func TestAuthenticateBearer_AdminRoleRequired(t *testing.T) {
	fixture, db := newAuthFixture(t)
	token := fixture.seed(t, db, models.RoleManager, true)

	resp := fixture.request(t, "/admin/ping", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, 403, resp.StatusCode)
}
