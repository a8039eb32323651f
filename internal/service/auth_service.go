package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/internal/dto"
	"github.com/prperemyshlev/task-manager/internal/email"
	"github.com/prperemyshlev/task-manager/internal/repository"
	"github.com/prperemyshlev/task-manager/internal/utils"
	"go.uber.org/zap"
)

const (
	bearerPrefix        = "Bearer "
	activationMailLimit = 10 * time.Second
)

// AuthOptions tunes the authentication flow
type AuthOptions struct {
	BCryptCost int
	Lockout    LockoutPolicy
	// RotateRefreshTokens makes refresh persist the newly issued refresh token
	RotateRefreshTokens bool
	// APIURL is the public base URL activation links point at
	APIURL string
	Now    func() time.Time
}

// authService implements AuthService interface
type authService struct {
	userRepo    repository.UserRepository
	attemptRepo repository.FailedAttemptRepository
	tokenRepo   repository.TokenRepository
	jwtManager  *utils.JWTManager
	mailer      email.Sender
	denylist    TokenDenylist
	logger      *zap.Logger
	metrics     *authMetrics
	opts        AuthOptions
}

// NewAuthService creates a new auth service. denylist may be nil.
func NewAuthService(
	userRepo repository.UserRepository,
	attemptRepo repository.FailedAttemptRepository,
	tokenRepo repository.TokenRepository,
	jwtManager *utils.JWTManager,
	mailer email.Sender,
	denylist TokenDenylist,
	logger *zap.Logger,
	opts AuthOptions,
) AuthService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Lockout.Threshold == 0 {
		opts.Lockout = DefaultLockoutPolicy
	}

	return &authService{
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
		tokenRepo:   tokenRepo,
		jwtManager:  jwtManager,
		mailer:      mailer,
		denylist:    denylist,
		logger:      logger,
		metrics:     newAuthMetrics(logger),
		opts:        opts,
	}
}

// Register creates an inactive account, mails its activation link and opens a session
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*AuthResult, error) {
	emailAddr := utils.SanitizeEmail(req.Email)

	_, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err == nil {
		return nil, newError(KindConflict, MsgEmailTaken, fmt.Sprintf("user with email %s already exists", emailAddr))
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.opts.BCryptCost)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now()
	user := &domain.User{
		Email:          emailAddr,
		PasswordHash:   passwordHash,
		FullName:       req.FullName,
		IsActivated:    false,
		ActivationLink: uuid.NewString(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, wrapError(KindConflict, MsgEmailTaken, fmt.Sprintf("user with email %s already exists", emailAddr), err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.sendActivation(ctx, user)

	tokens, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.metrics.registered(ctx)

	return &AuthResult{Tokens: tokens, User: user}, nil
}

// sendActivation mails the activation link. Delivery failures are logged and dropped.
func (s *authService) sendActivation(ctx context.Context, user *domain.User) {
	subject, body, err := email.ActivationMessage(s.opts.APIURL, user.ActivationLink)
	if err != nil {
		s.logger.Warn("Failed to render activation email", zap.String("user_id", user.ID), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), activationMailLimit)
	defer cancel()

	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		s.logger.Warn("Failed to send activation email", zap.String("user_id", user.ID), zap.Error(err))
	}
}

// Login verifies credentials under the lockout policy and opens a session
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error) {
	emailAddr := utils.SanitizeEmail(req.Email)

	user, err := s.userRepo.GetByEmailWithFailedAttempt(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.login(ctx, "unknown_user")
			return nil, wrapError(KindNotFound, MsgUserNotFound, "user not found", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	now := s.opts.Now()
	decision := s.opts.Lockout.Check(user.FailedAttempt, now)
	switch decision.State {
	case LockActive:
		s.metrics.login(ctx, "locked")
		until := decision.Until
		return nil, &Error{
			Kind:        KindUnauthorized,
			Key:         MsgAccountLocked,
			Message:     fmt.Sprintf("too many failed attempts, account is locked until %s", until.UTC().Format(time.RFC3339)),
			LockedUntil: &until,
		}
	case LockExpired:
		if err := s.attemptRepo.Delete(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to reset failed attempts: %w", err)
		}
		user.FailedAttempt = nil
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		if _, err := s.attemptRepo.Increment(ctx, user.ID, now); err != nil {
			return nil, err
		}
		s.metrics.login(ctx, "wrong_password")
		return nil, newError(KindUnauthorized, MsgWrongPassword, "wrong password")
	}

	tokens, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Touch(ctx, user.ID, now); err != nil {
		s.logger.Warn("Failed to update user timestamp", zap.String("user_id", user.ID), zap.Error(err))
	}

	s.metrics.login(ctx, "success")

	tokens.AccessToken = bearerPrefix + tokens.AccessToken
	return &AuthResult{Tokens: tokens, User: user}, nil
}

// openSession issues a token pair for user and stores its refresh half as the user's only session
func (s *authService) openSession(ctx context.Context, user *domain.User) (domain.TokenPair, error) {
	tokens, err := s.jwtManager.IssuePair(domain.IdentityOf(user))
	if err != nil {
		return domain.TokenPair{}, err
	}

	if err := s.tokenRepo.Upsert(ctx, user.ID, hashToken(tokens.RefreshToken), s.opts.Now()); err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return tokens, nil
}

// Activate marks the account owning link as activated. Repeated calls succeed.
func (s *authService) Activate(ctx context.Context, link string) error {
	user, err := s.userRepo.GetByActivationLink(ctx, link)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return wrapError(KindNotFound, MsgActivationNotFound, "activation link not found", err)
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsActivated {
		return nil
	}

	user.IsActivated = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}

	return nil
}

// Logout drops the session anchored by refreshToken and reports how many records were deleted.
// A valid access token, if given, is revoked for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, refreshToken, accessToken string) (int64, error) {
	var deleted int64
	if refreshToken != "" {
		n, err := s.tokenRepo.DeleteByTokenHash(ctx, hashToken(refreshToken))
		if err != nil {
			return 0, err
		}
		deleted = n
	}

	if accessToken != "" && s.denylist != nil {
		claims, err := s.jwtManager.Verify(accessToken)
		if err == nil && claims.Type == domain.TokenTypeAccess {
			if err := s.denylist.Revoke(ctx, claims.TokenID, s.jwtManager.AccessTokenExpiry()); err != nil {
				s.logger.Warn("Failed to revoke access token", zap.String("user_id", claims.ID), zap.Error(err))
			}
		}
	}

	return deleted, nil
}

// Refresh exchanges a stored, valid refresh token for a fresh token pair built from current user state
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	if refreshToken == "" {
		s.metrics.refresh(ctx, "missing")
		return nil, newError(KindUnauthorized, MsgSessionInvalid, "refresh token is required")
	}

	tokenHash := hashToken(refreshToken)

	session, err := s.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	claims, verifyErr := s.jwtManager.Verify(refreshToken)
	if session == nil || verifyErr != nil || claims.ID == "" {
		s.metrics.refresh(ctx, "invalid")
		return nil, wrapError(KindUnauthorized, MsgSessionInvalid, "invalid refresh token", verifyErr)
	}

	if claims.Type != domain.TokenTypeRefresh {
		s.metrics.refresh(ctx, "wrong_type")
		return nil, newError(KindUnauthorized, MsgSessionInvalid, "token is not a refresh token")
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.refresh(ctx, "invalid")
			return nil, wrapError(KindUnauthorized, MsgSessionInvalid, "user no longer exists", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	identity := domain.IdentityOf(user)
	tokens, err := s.jwtManager.IssuePair(identity)
	if err != nil {
		return nil, err
	}

	sessionToken := refreshToken
	if s.opts.RotateRefreshTokens {
		if err := s.tokenRepo.Upsert(ctx, user.ID, hashToken(tokens.RefreshToken), s.opts.Now()); err != nil {
			return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
		}
		sessionToken = tokens.RefreshToken
	}

	s.metrics.refresh(ctx, "success")

	return &RefreshResult{
		Tokens:       tokens,
		Identity:     identity,
		SessionToken: sessionToken,
	}, nil
}

// GetUser returns the profile of userID
func (s *authService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, wrapError(KindNotFound, MsgUserNotFound, "user not found", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ValidateAccessToken verifies token and requires it to be an unrevoked access token
func (s *authService) ValidateAccessToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	claims, err := s.jwtManager.Verify(token)
	if err != nil {
		return nil, wrapError(KindUnauthorized, MsgAccessTokenRequired, "invalid or expired token", err)
	}

	if claims.Type != domain.TokenTypeAccess {
		return nil, newError(KindUnauthorized, MsgAccessTokenRequired, "token is not an access token")
	}

	if s.denylist != nil {
		revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, newError(KindUnauthorized, MsgAccessTokenRequired, "token has been revoked")
		}
	}

	return claims, nil
}

// hashToken hashes a token using SHA256
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
