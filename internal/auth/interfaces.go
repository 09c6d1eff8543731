package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ofir-cohen/fitlife-api/internal/user"
)

// TokenClaims represents the claims carried by an access token
type TokenClaims struct {
	Subject   string    `json:"sub"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// TokenService defines the interface for access token creation and validation.
// Implementations include JWTService (HS256) and PasetoService (PASETO v4.local).
type TokenService interface {
	CreateToken(subject string, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserStore defines the user persistence surface the auth service needs
type UserStore interface {
	Create(ctx context.Context, params user.CreateParams) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// ResetTokenStore defines the interface for password reset token storage
type ResetTokenStore interface {
	Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*ResetToken, error)
	GetByToken(ctx context.Context, token string) (*ResetToken, error)
	// ConsumeAndSetPassword marks the token used and overwrites the user's
	// password hash in a single transaction.
	ConsumeAndSetPassword(ctx context.Context, tokenID, userID uuid.UUID, passwordHash string) error
}

// EmailService defines the interface for email delivery
type EmailService interface {
	SendPasswordResetEmail(ctx context.Context, toEmail, token string) error
}
