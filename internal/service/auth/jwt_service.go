package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Identity is the set of user fields embedded in issued tokens.
type Identity struct {
	ID       uuid.UUID
	Email    string
	Username string
}

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT carrying the user's identity,
	// valid for the configured lifetime (24 hours by default).
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, identity Identity) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns the claims if the token is valid, or an error if
	// validation fails (expired, tampered, malformed). Verification
	// fails closed: there is no partial-trust mode.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the custom claims structure for issued tokens.
// It extends standard JWT registered claims with the user's identity.
type Claims struct {
	UserID   uuid.UUID `json:"uid"`
	Email    string    `json:"email"`
	Username string    `json:"username"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// Identity returns the user identity carried by the claims.
func (c *Claims) Identity() Identity {
	return Identity{ID: c.UserID, Email: c.Email, Username: c.Username}
}
