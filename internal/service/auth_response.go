package service

import "github.com/prperemyshlev/task-manager/internal/domain"

// AuthResult is produced by login and registration
type AuthResult struct {
	Tokens domain.TokenPair
	User   *domain.User
}

// RefreshResult is produced by refresh
type RefreshResult struct {
	Tokens   domain.TokenPair
	Identity domain.Identity
	// SessionToken is the refresh token that anchors the session after the call:
	// the new one when rotation is enabled, the presented one otherwise.
	SessionToken string
}
