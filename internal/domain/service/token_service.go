package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService defines the interface for issuing and validating the access
// tokens the delivery layer authenticates requests with. The self-service
// usecases never touch tokens; they receive the caller's ID as a parameter.
type TokenService interface {
	// GenerateAccessToken creates a signed access token for the given user.
	GenerateAccessToken(userID uuid.UUID, role string) (string, error)

	// ValidateToken checks the validity of a token string and returns the parsed token.
	ValidateToken(tokenString string) (*jwt.Token, error)

	// AccessTokenTTL returns the configured access token lifetime.
	AccessTokenTTL() time.Duration
}
