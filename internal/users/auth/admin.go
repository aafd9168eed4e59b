// Copyright (c) 2026 Patriarchia. All rights reserved.

/*
Package auth implements credential verification and session lifecycle for
the administrative console.

It handles password verification against bcrypt hashes, short-lived RSA-signed
access tokens, and refresh token rotation with the session state held in Redis.

Architecture:

  - Service: Orchestrates the login, refresh, and logout flows.
  - CredentialStore: Postgres-backed admin account lookup and seeding.
  - SessionStore: Redis-backed refresh sessions, keyed by token digest.

There is no self-service registration: accounts are seeded from configuration
at startup or inserted by an operator.
*/
package auth

import (
	"time"

	"github.com/copticarchive/patriarchia/internal/platform/sec"
)

// Admin is a console account able to manage the catalogue.
type Admin struct {
	ID           int          `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
