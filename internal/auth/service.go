package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ofir-cohen/fitlife-api/internal/logging"
	"github.com/ofir-cohen/fitlife-api/internal/user"
)

// AccessToken is the login response payload
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Service handles authentication business logic
type Service struct {
	users          UserStore
	resets         ResetTokenStore
	tokenService   TokenService
	emailService   EmailService
	logger         *logging.Logger
	accessTokenTTL time.Duration
	resetTokenTTL  time.Duration
}

func NewService(
	users UserStore,
	resets ResetTokenStore,
	tokenService TokenService,
	emailService EmailService,
	logger *logging.Logger,
	accessTokenTTL time.Duration,
	resetTokenTTL time.Duration,
) *Service {
	return &Service{
		users:          users,
		resets:         resets,
		tokenService:   tokenService,
		emailService:   emailService,
		logger:         logger,
		accessTokenTTL: accessTokenTTL,
		resetTokenTTL:  resetTokenTTL,
	}
}

// RegisterParams carries the registration fields
type RegisterParams struct {
	Username string
	Password string
	Name     string
	Age      int
	Gender   *string
	Height   *float64
	Weight   *float64
	Email    *string
}

// Register creates a new user account. The stored password is a bcrypt hash,
// never the plaintext. Duplicate usernames surface as user.ErrDuplicateUsername
// regardless of whether the conflict was seen here or at the unique constraint.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*user.User, error) {
	if params.Username == "" {
		return nil, ErrUsernameRequired
	}
	if params.Password == "" {
		return nil, ErrPasswordRequired
	}
	if len(params.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	passwordHash, err := HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.users.Create(ctx, user.CreateParams{
		Username:     params.Username,
		PasswordHash: passwordHash,
		Name:         params.Name,
		Age:          params.Age,
		Gender:       params.Gender,
		Height:       params.Height,
		Weight:       params.Weight,
		Email:        params.Email,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateUsername) || errors.Is(err, user.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// Login authenticates a user and returns a signed access token. Unknown
// username and wrong password produce the same error so callers cannot
// enumerate accounts.
func (s *Service) Login(ctx context.Context, username, password string) (*AccessToken, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !CheckPassword(password, existing.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(existing.Username, s.accessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	return &AccessToken{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.accessTokenTTL.Seconds()),
	}, nil
}

// CurrentUser verifies an access token and returns the user it was issued to.
// Token errors pass through so callers can log expired vs invalid; the HTTP
// response must not distinguish them.
func (s *Service) CurrentUser(ctx context.Context, tokenStr string) (*user.User, error) {
	claims, err := s.tokenService.VerifyToken(tokenStr)
	if err != nil {
		return nil, err
	}

	return s.UserBySubject(ctx, claims.Subject)
}

// UserBySubject resolves a verified token subject to its user record
func (s *Service) UserBySubject(ctx context.Context, subject string) (*user.User, error) {
	u, err := s.users.GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// RequestPasswordReset creates a single-use reset token for the user and
// emails it when the account has an address on file. The token is returned
// so the dev-mode handler can expose it without a mail server.
func (s *Service) RequestPasswordReset(ctx context.Context, username string) (*ResetToken, error) {
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	token, err := generateRandomToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}

	resetToken, err := s.resets.Create(ctx, existing.ID, token, time.Now().Add(s.resetTokenTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to store reset token: %w", err)
	}

	if s.emailService != nil && existing.Email != nil {
		email := *existing.Email
		// Send in a goroutine with a fresh context so the response is not
		// blocked on SMTP and the send survives request cancellation.
		go func() {
			if err := s.emailService.SendPasswordResetEmail(context.Background(), email, token); err != nil {
				s.logger.Warn("failed to send password reset email", "username", username, "error", err)
			}
		}()
	}

	return resetToken, nil
}

// ConfirmPasswordReset consumes a reset token and overwrites the user's
// password hash. The consume and the hash update happen in one transaction;
// a used or expired token never authorizes a reset.
func (s *Service) ConfirmPasswordReset(ctx context.Context, username, token, newPassword string) error {
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if newPassword == "" {
		return ErrPasswordRequired
	}
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	resetToken, err := s.resets.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrResetTokenInvalid) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("failed to get reset token: %w", err)
	}

	// A token only authorizes a reset for the account it was issued to
	if resetToken.UserID != existing.ID {
		return ErrResetTokenInvalid
	}
	if resetToken.IsUsed {
		return ErrResetTokenUsed
	}
	if resetToken.IsExpired() {
		return ErrResetTokenExpired
	}

	passwordHash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.resets.ConsumeAndSetPassword(ctx, resetToken.ID, existing.ID, passwordHash); err != nil {
		if errors.Is(err, ErrResetTokenUsed) {
			return ErrResetTokenUsed
		}
		return fmt.Errorf("failed to reset password: %w", err)
	}

	return nil
}
