package domain

import "time"

// User represents a registered account
type User struct {
	ID             string         `json:"id" db:"id"`
	Email          string         `json:"email" db:"email"`
	PasswordHash   string         `json:"-" db:"password_hash"`
	FullName       *string        `json:"fullName,omitempty" db:"full_name"`
	IsActivated    bool           `json:"isActivated" db:"is_activated"`
	ActivationLink string         `json:"-" db:"activation_link"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
	FailedAttempt  *FailedAttempt `json:"-" db:"-"`
}

// FailedAttempt counts consecutive wrong-password submissions for one user.
// At most one exists per user; Attempts is always at least 1.
type FailedAttempt struct {
	UserID    string    `json:"userId" db:"user_id"`
	Attempts  int       `json:"attempts" db:"attempts"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// RefreshSession is the persisted anchor of a user's current refresh token.
// Only the SHA-256 digest of the token is stored.
type RefreshSession struct {
	UserID    string    `json:"userId" db:"user_id"`
	TokenHash string    `json:"-" db:"token_hash"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
