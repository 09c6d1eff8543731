package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/ofir-cohen/fitlife-api/internal/database"
	"github.com/ofir-cohen/fitlife-api/internal/user"
)

// ResetToken is a single-use, time-limited credential authorizing one
// password change for its owning user.
type ResetToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
	IsUsed    bool
}

// IsExpired reports whether the token's validity window has passed
func (t *ResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// ResetRepository handles password reset token persistence
type ResetRepository struct {
	db *bun.DB
}

func NewResetRepository(db *bun.DB) *ResetRepository {
	return &ResetRepository{db: db}
}

// Create inserts a new reset token row for the user
func (r *ResetRepository) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*ResetToken, error) {
	dbToken := &database.PasswordResetToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}

	_, err := r.db.NewInsert().
		Model(dbToken).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reset token: %w", err)
	}

	return mapDBResetTokenToModel(dbToken), nil
}

// GetByToken retrieves a reset token by its token string
func (r *ResetRepository) GetByToken(ctx context.Context, token string) (*ResetToken, error) {
	dbToken := new(database.PasswordResetToken)
	err := r.db.NewSelect().
		Model(dbToken).
		Where("token = ?", token).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}

	return mapDBResetTokenToModel(dbToken), nil
}

// ConsumeAndSetPassword marks the token used and overwrites the user's
// password hash in one transaction, so there is no window where the password
// changed but the token remains usable, or the reverse. The is_used guard in
// the UPDATE makes concurrent confirms resolve to a single winner.
func (r *ResetRepository) ConsumeAndSetPassword(ctx context.Context, tokenID, userID uuid.UUID, passwordHash string) error {
	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewUpdate().
			Model((*database.PasswordResetToken)(nil)).
			Set("is_used = ?", true).
			Where("id = ?", tokenID).
			Where("is_used = ?", false).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to consume reset token: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return ErrResetTokenUsed
		}

		result, err = tx.NewUpdate().
			Model((*database.User)(nil)).
			Set("password_hash = ?", passwordHash).
			Set("updated_at = NOW()").
			Where("id = ?", userID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}

		rowsAffected, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return user.ErrNotFound
		}

		return nil
	})
}

// mapDBResetTokenToModel converts database model to domain model
func mapDBResetTokenToModel(dbt *database.PasswordResetToken) *ResetToken {
	return &ResetToken{
		ID:        dbt.ID,
		UserID:    dbt.UserID,
		Token:     dbt.Token,
		CreatedAt: dbt.CreatedAt,
		ExpiresAt: dbt.ExpiresAt,
		IsUsed:    dbt.IsUsed,
	}
}
