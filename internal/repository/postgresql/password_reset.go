package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// ErrResetTokenNotFound is returned when a reset token is unknown, used or expired.
var ErrResetTokenNotFound = errors.New("password reset token not found")

type PasswordResetRepository interface {
	Create(ctx context.Context, userID, token string, expiresAt time.Time) error
	// Consume marks the token used and returns its user; it works once per token.
	Consume(ctx context.Context, token string) (string, error)
}

type passwordResetRepositoryImpl struct {
	db *database.DB
}

func NewPasswordResetRepository(db *database.DB) PasswordResetRepository {
	return &passwordResetRepositoryImpl{db: db}
}

func (p *passwordResetRepositoryImpl) Create(ctx context.Context, userID, token string, expiresAt time.Time) error {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO password_reset_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`
	if _, err := q.Exec(ctx, query, userID, HashToken(token), expiresAt.UTC()); err != nil {
		return fmt.Errorf("failed to store password reset token: %w", err)
	}
	return nil
}

func (p *passwordResetRepositoryImpl) Consume(ctx context.Context, token string) (string, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE password_reset_tokens
		SET used_at = NOW()
		WHERE token_hash = $1 AND used_at IS NULL AND expires_at > NOW()
		RETURNING user_id
	`
	var userID string
	if err := q.QueryRow(ctx, query, HashToken(token)).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrResetTokenNotFound
		}
		return "", fmt.Errorf("failed to consume password reset token: %w", err)
	}
	return userID, nil
}
