package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// User is the profile row backing an identity-provider account. Users are
// never hard-deleted; deactivation flips IsActive.
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	FullName  string     `json:"full_name"`
	Phone     *string    `json:"phone,omitempty"`
	Role      Role       `gorm:"type:varchar(20);not null;default:user" json:"role"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsReviewer reports whether the user may act on reports and payment proofs.
func (u *User) IsReviewer() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

type UserCreateRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Role     Role    `json:"role" validate:"required,oneof=admin manager user"`
	FullName string  `json:"full_name" validate:"omitempty,max=255"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

type UserListFilter struct {
	Role   string `query:"role" validate:"omitempty,oneof=admin manager user"`
	Status string `query:"status" validate:"omitempty,oneof=active inactive"`
}
