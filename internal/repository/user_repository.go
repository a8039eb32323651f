package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/pkg/database"
)

const userColumns = `u.id, u.email, u.password_hash, u.full_name, u.is_activated, u.activation_link, u.created_at, u.updated_at`

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, extra ...any) (*domain.User, error) {
	user := &domain.User{}
	var fullName sql.NullString

	dest := append([]any{
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&fullName,
		&user.IsActivated,
		&user.ActivationLink,
		&user.CreatedAt,
		&user.UpdatedAt,
	}, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if fullName.Valid {
		user.FullName = &fullName.String
	}

	return user, nil
}

// Create creates a new user in the database
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, full_name, is_activated, activation_link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.IsActivated,
		user.ActivationLink,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user with email %s already exists: %w", user.Email, ErrDuplicateEmail)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE ` + where

	user, err := scanUser(r.db.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `u.email = $1`, email)
}

// GetByActivationLink retrieves a user by the activation identifier mailed at registration
func (r *userRepository) GetByActivationLink(ctx context.Context, link string) (*domain.User, error) {
	return r.getOne(ctx, `u.activation_link = $1`, link)
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `u.id = $1`, id)
}

func (r *userRepository) GetByEmailWithFailedAttempt(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `, f.attempts, f.created_at, f.updated_at
		FROM users u
		LEFT JOIN failed_login_attempts f ON f.user_id = u.id
		WHERE u.email = $1
	`

	var (
		attempts  sql.NullInt64
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	user, err := scanUser(r.db.DB.QueryRowContext(ctx, query, email), &attempts, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s not found: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if attempts.Valid {
		user.FailedAttempt = &domain.FailedAttempt{
			UserID:    user.ID,
			Attempts:  int(attempts.Int64),
			CreatedAt: createdAt.Time,
			UpdatedAt: updatedAt.Time,
		}
	}

	return user, nil
}

// Update updates an existing user
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET email = $2, password_hash = $3, full_name = $4, is_activated = $5, updated_at = $6
		WHERE id = $1
	`

	user.UpdatedAt = time.Now()

	result, err := r.db.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.IsActivated,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user with email %s already exists: %w", user.Email, ErrDuplicateEmail)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with id %s not found: %w", user.ID, ErrNotFound)
	}

	return nil
}

// Touch sets the user's updated_at timestamp
func (r *userRepository) Touch(ctx context.Context, userID string, at time.Time) error {
	result, err := r.db.DB.ExecContext(ctx, `UPDATE users SET updated_at = $1 WHERE id = $2`, at, userID)
	if err != nil {
		return fmt.Errorf("failed to touch user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with id %s not found: %w", userID, ErrNotFound)
	}

	return nil
}
