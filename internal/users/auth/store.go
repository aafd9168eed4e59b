// Copyright (c) 2026 Patriarchia. All rights reserved.

package auth

import (
	"context"
	"time"
)

// CredentialStore abstracts persistence of admin accounts.
type CredentialStore interface {
	// FindByUsername returns the account or apperr.NotFound.
	FindByUsername(ctx context.Context, username string) (*Admin, error)

	// FindByID returns the account or apperr.NotFound.
	FindByID(ctx context.Context, id int) (*Admin, error)

	// Create persists a new account.
	Create(ctx context.Context, admin *Admin) error

	// Count returns the number of accounts, used by startup seeding.
	Count(ctx context.Context) (int, error)
}

// SessionStore abstracts refresh session state.
//
// Sessions are keyed by the SHA-256 digest of the refresh token, never the
// token itself, so a leaked session store cannot be replayed.
type SessionStore interface {
	// Create records a session for adminID under the token digest.
	Create(ctx context.Context, tokenHash string, adminID int, ttl time.Duration) error

	// Find resolves a token digest to an admin ID, or apperr.NotFound when
	// the session is absent or expired.
	Find(ctx context.Context, tokenHash string) (int, error)

	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, tokenHash string) error
}
