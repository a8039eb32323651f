package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/pkg/database"
)

type failedAttemptRepository struct {
	db *database.Postgres
}

// NewFailedAttemptRepository creates a new failed login attempt repository
func NewFailedAttemptRepository(db *database.Postgres) FailedAttemptRepository {
	return &failedAttemptRepository{db: db}
}

// Increment records one more wrong password for userID. Concurrent calls never lose an update.
func (r *failedAttemptRepository) Increment(ctx context.Context, userID string, at time.Time) (*domain.FailedAttempt, error) {
	query := `
		INSERT INTO failed_login_attempts (user_id, attempts, created_at, updated_at)
		VALUES ($1, 1, $2, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET attempts = failed_login_attempts.attempts + 1, updated_at = EXCLUDED.updated_at
		RETURNING user_id, attempts, created_at, updated_at
	`

	record := &domain.FailedAttempt{}
	err := r.db.DB.QueryRowContext(ctx, query, userID, at).Scan(
		&record.UserID,
		&record.Attempts,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record failed attempt: %w", err)
	}

	return record, nil
}

func (r *failedAttemptRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.DB.ExecContext(ctx, `DELETE FROM failed_login_attempts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete failed attempts: %w", err)
	}
	return nil
}
