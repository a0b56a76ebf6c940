package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/reportdesk/reportdesk-core/internal/app/errors"
	"github.com/reportdesk/reportdesk-core/internal/app/models"
	"github.com/reportdesk/reportdesk-core/internal/infrastructures"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserService struct {
	db              *gorm.DB
	validator       *infrastructures.Validator
	identityService *IdentityService
}

func NewUserService(db *gorm.DB, validator *infrastructures.Validator, identityService *IdentityService) *UserService {
	return &UserService{
		db:              db,
		validator:       validator,
		identityService: identityService,
	}
}

// GetActiveProfile loads the profile row for an authenticated identity.
// A missing or deactivated profile is an authentication failure, not a 404:
// the caller holds a valid session but has no standing in this system.
func (s *UserService) GetActiveProfile(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ? AND is_active = ?", id, true).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewUnauthorizedError("User not found or inactive")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get user profile")
	}
	return &user, nil
}

func (s *UserService) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("User not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get user")
	}
	return &user, nil
}

// ListUsers returns all profiles, optionally filtered by role and
// active/inactive status, newest first.
func (s *UserService) ListUsers(filter *models.UserListFilter) ([]models.User, error) {
	if err := s.validator.Validate(filter); err != nil {
		return nil, err
	}

	query := s.db.Model(&models.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	switch filter.Status {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}

	var users []models.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to fetch users")
	}
	return users, nil
}

// ProvisionUser creates the identity-provider account, inserts the matching
// profile row, and sends the invite email. The invite is best-effort: the
// account exists either way and the provider can resend it.
func (s *UserService) ProvisionUser(req *models.UserCreateRequest, createdBy uuid.UUID) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	identityUser, err := s.identityService.AdminCreateUser(req.Email, req.Role)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        identityUser.ID,
		Email:     req.Email,
		FullName:  req.FullName,
		Phone:     req.Phone,
		Role:      req.Role,
		IsActive:  true,
		CreatedBy: &createdBy,
	}

	if err := s.db.Create(user).Error; err != nil {
		// Roll the provider account back so the email can be retried.
		if delErr := s.identityService.AdminDeleteUser(identityUser.ID); delErr != nil {
			logrus.Warnf("failed to delete orphaned identity account %s: %v", identityUser.ID, delErr)
		}
		return nil, errors.NewInternalServerError(err, "Failed to create user profile")
	}

	if err := s.identityService.InviteUserByEmail(req.Email); err != nil {
		logrus.Warnf("failed to send invite email to %s: %v", req.Email, err)
	}

	return user, nil
}

// DeactivateUser soft-deactivates a profile. Profiles are never hard-deleted.
func (s *UserService) DeactivateUser(id uuid.UUID) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	user.IsActive = false
	if err := s.db.Save(user).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to deactivate user")
	}
	return user, nil
}

// TouchLastLogin stamps the profile's last_login. Best-effort.
func (s *UserService) TouchLastLogin(id uuid.UUID) {
	now := time.Now()
	if err := s.db.Model(&models.User{}).Where("id = ?", id).Update("last_login", now).Error; err != nil {
		logrus.Warnf("failed to update last_login for %s: %v", id, err)
	}
}
