package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when no row matches, or the row belongs to another user
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when the normalized email is already registered
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrDuplicateToken is returned when a refresh token digest is already held by another user
	ErrDuplicateToken = errors.New("token with this hash already exists")
)

// Postgres SQLSTATE codes mapped to sentinel errors above
const (
	uniqueViolation     pq.ErrorCode = "23505"
	foreignKeyViolation pq.ErrorCode = "23503"
)

func pgErrorCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == uniqueViolation
}

// isForeignKeyViolation reports a write that referenced a missing parent row
func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == foreignKeyViolation
}
