package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/pkg/database"
)

// tokenRepository implements TokenRepository interface
type tokenRepository struct {
	db *database.Postgres
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *database.Postgres) TokenRepository {
	return &tokenRepository{db: db}
}

// Upsert stores tokenHash as the user's only refresh session
func (r *tokenRepository) Upsert(ctx context.Context, userID, tokenHash string, at time.Time) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET token_hash = EXCLUDED.token_hash, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.DB.ExecContext(ctx, query, userID, tokenHash, at)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("token with hash already exists: %w", ErrDuplicateToken)
		}
		return fmt.Errorf("failed to save refresh token: %w", err)
	}

	return nil
}

// GetByTokenHash retrieves a refresh session by its token digest
func (r *tokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshSession, error) {
	query := `
		SELECT user_id, token_hash, created_at, updated_at
		FROM refresh_tokens
		WHERE token_hash = $1
	`

	session := &domain.RefreshSession{}
	err := r.db.DB.QueryRowContext(ctx, query, tokenHash).Scan(
		&session.UserID,
		&session.TokenHash,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("token with hash not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get token by hash: %w", err)
	}

	return session, nil
}

func (r *tokenRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) (int64, error) {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return 0, fmt.Errorf("failed to delete token: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

// DeleteExpired removes sessions not refreshed since before
func (r *tokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE updated_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}
