// Copyright (c) 2026 Patriarchia. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/copticarchive/patriarchia/internal/platform/apperr"
	"github.com/copticarchive/patriarchia/internal/platform/sec"
)

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given account.
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements the admin authentication use cases.
type Service struct {
	credentials CredentialStore
	sessions    SessionStore
	tokens      TokenProvider
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(credentials CredentialStore, sessions SessionStore, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		credentials: credentials,
		sessions:    sessions,
		tokens:      tokens,
		logger:      logger,
	}
}

// Session represents a successfully established console session.
type Session struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	Admin                 *Admin
}

// # Authentication Flow

// Login verifies credentials and issues a fresh token pair.
//
// Lookup failure and password mismatch return the same generic message to
// prevent account enumeration.
func (service *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	admin, err := service.credentials.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(password, admin.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	session, err := service.issueSession(ctx, admin)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "admin_logged_in", slog.String("username", admin.Username))
	return session, nil
}

// RefreshSession rotates a refresh token.
//
// The presented token's session is deleted before a new one is issued, so a
// replayed token fails on its second use.
func (service *Service) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	tokenHash := sec.HashToken(refreshToken)

	adminID, err := service.sessions.Find(ctx, tokenHash)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	if err := service.sessions.Delete(ctx, tokenHash); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	admin, err := service.credentials.FindByID(ctx, adminID)
	if err != nil {
		return nil, apperr.Unauthorized("Account not found or suspended")
	}

	return service.issueSession(ctx, admin)
}

// Logout revokes the session for the given refresh token. Logging out an
// unknown token succeeds; the operation is idempotent.
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return service.sessions.Delete(ctx, sec.HashToken(refreshToken))
}

// issueSession mints a token pair and records the refresh session.
func (service *Service) issueSession(ctx context.Context, admin *Admin) (*Session, error) {
	accessToken, err := service.tokens.GenerateAccessToken(
		strconv.Itoa(admin.ID), admin.Username, string(admin.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	if err := service.sessions.Create(ctx, sec.HashToken(refreshToken), admin.ID, RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &Session{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: time.Now().Add(RefreshTokenTTL),
		Admin:                 admin,
	}, nil
}
