package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prperemyshlev/task-manager/internal/domain"
)

// ErrInvalidToken is returned for tokens with a bad signature, an expired
// lifetime, or a malformed body.
var ErrInvalidToken = errors.New("invalid token")

// sessionClaims is the JWT body of both halves of a token pair
type sessionClaims struct {
	UserID      string           `json:"id"`
	Email       string           `json:"email"`
	IsActivated bool             `json:"isActivated"`
	Type        domain.TokenType `json:"type"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 session tokens against one secret
type JWTManager struct {
	secret             []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
	now                func() time.Time
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, accessTokenExpiry, refreshTokenExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:             []byte(secret),
		accessTokenExpiry:  accessTokenExpiry,
		refreshTokenExpiry: refreshTokenExpiry,
		now:                time.Now,
	}
}

// WithClock returns a copy of the manager that reads time from now
func (j *JWTManager) WithClock(now func() time.Time) *JWTManager {
	clone := *j
	clone.now = now
	return &clone
}

// IssuePair signs a fresh access and refresh token for identity
func (j *JWTManager) IssuePair(identity domain.Identity) (domain.TokenPair, error) {
	access, err := j.sign(identity, domain.TokenTypeAccess, j.accessTokenExpiry)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := j.sign(identity, domain.TokenTypeRefresh, j.refreshTokenExpiry)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (j *JWTManager) sign(identity domain.Identity, tokenType domain.TokenType, ttl time.Duration) (string, error) {
	now := j.now()
	claims := sessionClaims{
		UserID:      identity.ID,
		Email:       identity.Email,
		IsActivated: identity.IsActivated,
		Type:        tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks the signature and expiry of tokenString and returns its claims.
// The token type is reported but not enforced.
func (j *JWTManager) Verify(tokenString string) (*domain.TokenClaims, error) {
	claims := &sessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return &domain.TokenClaims{
		Identity: domain.Identity{
			ID:          claims.UserID,
			Email:       claims.Email,
			IsActivated: claims.IsActivated,
		},
		Type:    claims.Type,
		TokenID: claims.ID,
	}, nil
}

// RefreshTokenExpiry is the lifetime of issued refresh tokens
func (j *JWTManager) RefreshTokenExpiry() time.Duration {
	return j.refreshTokenExpiry
}

// AccessTokenExpiry is the lifetime of issued access tokens
func (j *JWTManager) AccessTokenExpiry() time.Duration {
	return j.accessTokenExpiry
}
