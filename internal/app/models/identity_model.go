package models

import (
	"github.com/google/uuid"
)

// IdentityUser is the account record held by the hosted identity provider.
// The profile row in the users table shares its ID.
type IdentityUser struct {
	ID           uuid.UUID         `json:"id"`
	Email        string            `json:"email"`
	UserMetadata map[string]string `json:"user_metadata,omitempty"`
}

// IdentitySession is the token bundle the provider returns on password sign-in.
type IdentitySession struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	User         IdentityUser `json:"user"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
