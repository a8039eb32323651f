package dto

import (
	"time"

	"github.com/prperemyshlev/task-manager/internal/domain"
)

// AuthResponse is returned by login
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterResponse is returned by registration
type RegisterResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// RefreshResponse is returned by refresh: a new token pair plus the caller's identity
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ID           string `json:"id"`
	Email        string `json:"email"`
	IsActivated  bool   `json:"isActivated"`
}

// UserResponse represents a user response
type UserResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FullName    *string `json:"fullName,omitempty"`
	IsActivated bool    `json:"isActivated"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// NewUserResponse converts a user to its public representation
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		IsActivated: u.IsActivated,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.Format(time.RFC3339),
	}
}

// DeleteResponse reports how many records a delete operation removed
type DeleteResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// UpdateResponse reports how many records a partial update matched
type UpdateResponse struct {
	MatchedCount int64 `json:"matchedCount"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
