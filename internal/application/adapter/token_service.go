package adapter

import (
	"time"

	"github.com/google/uuid"
)

// AccessToken is a signed token together with its expiry.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenClaims represents the claims contained in an access token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService defines the interface for JWT token operations.
type TokenService interface {
	// GenerateAccessToken issues a signed access token for a user.
	GenerateAccessToken(userID uuid.UUID, email string) (*AccessToken, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(token string) (*TokenClaims, error)
}
