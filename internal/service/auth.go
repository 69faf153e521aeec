package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gatherly/gatherly-server/internal/auth"
	"github.com/gatherly/gatherly-server/internal/domain"
	apperrors "github.com/gatherly/gatherly-server/internal/errors"
	"github.com/gatherly/gatherly-server/internal/id"
	"github.com/gatherly/gatherly-server/internal/store"
)

// TokenPair is what a successful register, login, or refresh hands back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// AuthResult bundles the authenticated user with their tokens.
type AuthResult struct {
	User   *domain.User
	Tokens TokenPair
}

// AuthService handles registration, login, and refresh-token rotation.
//
// Access tokens are PASETO v4.local and self-contained; refresh tokens are
// opaque random strings stored hashed in the sessions table, rotated on
// every use.
type AuthService struct {
	store  store.Store
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(store store.Store, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:  store,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new account and logs it in.
func (s *AuthService) Register(ctx context.Context, email, password, displayName, userAgent string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, apperrors.Validation("display name is required")
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	userID, err := id.Generate("usr")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           userID,
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, apperrors.AlreadyExists("an account with this email already exists")
		}
		return nil, fmt.Errorf("%w: create user: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return s.issueTokens(ctx, user, userAgent)
}

// Login verifies credentials and opens a new session.
func (s *AuthService) Login(ctx context.Context, email, password, userAgent string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("%w: lookup user: %v", ErrStoreUnavailable, err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil || !ok {
		return nil, apperrors.InvalidCredentials("invalid email or password")
	}

	user.LastLoginAt = time.Now()
	user.Touch()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		// Login still succeeds; the timestamp is informational.
		s.logger.Warn("last login not recorded", "user_id", user.ID, "error", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return s.issueTokens(ctx, user, userAgent)
}

// Refresh rotates a refresh token: the presented session is revoked and a
// new one is opened. A revoked or expired session is rejected outright.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, userAgent string) (*AuthResult, error) {
	session, err := s.store.GetSessionByTokenHash(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.Unauthorized("unknown refresh token")
		}
		return nil, fmt.Errorf("%w: lookup session: %v", ErrStoreUnavailable, err)
	}

	if !session.IsValid() {
		if session.IsExpired() {
			return nil, apperrors.TokenExpired("refresh token expired")
		}
		return nil, apperrors.Unauthorized("refresh token revoked")
	}

	user, err := s.store.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.Unauthorized("account no longer exists")
		}
		return nil, fmt.Errorf("%w: lookup user: %v", ErrStoreUnavailable, err)
	}

	if err := s.store.RevokeSession(ctx, session.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: revoke session: %v", ErrStoreUnavailable, err)
	}

	return s.issueTokens(ctx, user, userAgent)
}

// Logout revokes the session behind the presented refresh token.
// Unknown tokens are treated as already logged out.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.store.GetSessionByTokenHash(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("%w: lookup session: %v", ErrStoreUnavailable, err)
	}

	if err := s.store.RevokeSession(ctx, session.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: revoke session: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("user logged out", "user_id", session.UserID)
	return nil
}

// LogoutAll revokes every session the user has, on all devices.
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	if err := s.store.DeleteUserSessions(ctx, userID); err != nil {
		return fmt.Errorf("%w: delete sessions: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// VerifyAccessToken validates a bearer token and returns its claims.
func (s *AuthService) VerifyAccessToken(tokenString string) (*auth.AccessClaims, error) {
	claims, err := s.tokens.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired access token")
	}
	return claims, nil
}

// GetUser returns a user's profile.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundf("user %s not found", userID)
		}
		return nil, fmt.Errorf("%w: lookup user: %v", ErrStoreUnavailable, err)
	}
	return user, nil
}

// CleanupExpiredSessions purges sessions past their expiry. Meant to be
// called periodically from the server's background loop.
func (s *AuthService) CleanupExpiredSessions(ctx context.Context) (int, error) {
	n, err := s.store.DeleteExpiredSessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: cleanup sessions: %v", ErrStoreUnavailable, err)
	}
	if n > 0 {
		s.logger.Info("expired sessions purged", "count", n)
	}
	return n, nil
}

// issueTokens mints an access token and opens a refresh session.
func (s *AuthService) issueTokens(ctx context.Context, user *domain.User, userAgent string) (*AuthResult, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	sessionID, err := id.Generate("ses")
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	now := time.Now()
	session := &domain.Session{
		ID:               sessionID,
		UserID:           user.ID,
		RefreshTokenHash: auth.HashRefreshToken(refreshToken),
		UserAgent:        userAgent,
		CreatedAt:        now,
		ExpiresAt:        now.Add(s.tokens.RefreshTokenDuration()),
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: create session: %v", ErrStoreUnavailable, err)
	}

	return &AuthResult{
		User: user,
		Tokens: TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    now.Add(s.tokens.AccessTokenDuration()),
		},
	}, nil
}
