package services

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/reportdesk/reportdesk-core/internal/app/errors"
	"github.com/reportdesk/reportdesk-core/internal/app/models"
	"github.com/reportdesk/reportdesk-core/internal/infrastructures"
)

// IdentityService talks to the hosted identity provider over HTTP. Session
// lookups use the caller's access token; admin operations authenticate with
// the service-role key and bypass the provider's row-level policies.
type IdentityService struct {
}

func NewIdentityService() *IdentityService {
	return &IdentityService{}
}

type identityErrorBody struct {
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func identityError(statusCode int, body []byte) error {
	var parsed identityErrorBody
	_ = json.Unmarshal(body, &parsed)

	message := parsed.Message
	if message == "" {
		message = parsed.ErrorDescription
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return errors.NewAppError(statusCode, message)
}

func (s *IdentityService) do(req *http.Request, out interface{}) error {
	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return errors.NewInternalServerError(err, "Identity provider unreachable")
	}
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return errors.NewInternalServerError(err, "Failed to read identity provider response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return identityError(resp.StatusCode, buf.Bytes())
	}

	if out != nil {
		if err := json.Unmarshal(buf.Bytes(), out); err != nil {
			return errors.NewInternalServerError(err, "Failed to decode identity provider response")
		}
	}
	return nil
}

// GetUser resolves an access token to the identity account it belongs to.
func (s *IdentityService) GetUser(accessToken string) (*models.IdentityUser, error) {
	if accessToken == "" {
		return nil, errors.NewUnauthorizedError("Authentication required")
	}

	req, err := http.NewRequest(http.MethodGet, infrastructures.Config.IDENTITY_BASE_URL+"/user", nil)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(accessToken, "Bearer ") {
		req.Header.Set("Authorization", accessToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	var user models.IdentityUser
	if err := s.do(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignInWithPassword exchanges email/password credentials for a session.
func (s *IdentityService) SignInWithPassword(email, password string) (*models.IdentitySession, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost,
		infrastructures.Config.IDENTITY_BASE_URL+"/token?grant_type=password",
		bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var session models.IdentitySession
	if err := s.do(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SignOut revokes the session behind the given access token.
func (s *IdentityService) SignOut(accessToken string) error {
	req, err := http.NewRequest(http.MethodPost, infrastructures.Config.IDENTITY_BASE_URL+"/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimPrefix(accessToken, "Bearer "))

	return s.do(req, nil)
}

// AdminCreateUser provisions a provider account without a password; the user
// confirms via the invite email and sets their own.
func (s *IdentityService) AdminCreateUser(email string, role models.Role) (*models.IdentityUser, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"email":         email,
		"email_confirm": false,
		"user_metadata": map[string]string{"role": string(role)},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost,
		infrastructures.Config.IDENTITY_BASE_URL+"/admin/users",
		bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+infrastructures.Config.IDENTITY_SERVICE_KEY)

	var user models.IdentityUser
	if err := s.do(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// InviteUserByEmail sends the provider's invitation email.
func (s *IdentityService) InviteUserByEmail(email string) error {
	payload, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost,
		infrastructures.Config.IDENTITY_BASE_URL+"/invite",
		bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+infrastructures.Config.IDENTITY_SERVICE_KEY)

	return s.do(req, nil)
}

// AdminDeleteUser removes a provider account. The profile row is kept and
// soft-deactivated separately.
func (s *IdentityService) AdminDeleteUser(id uuid.UUID) error {
	req, err := http.NewRequest(http.MethodDelete,
		infrastructures.Config.IDENTITY_BASE_URL+"/admin/users/"+id.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+infrastructures.Config.IDENTITY_SERVICE_KEY)

	return s.do(req, nil)
}
