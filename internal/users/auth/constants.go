// Copyright (c) 2026 Patriarchia. All rights reserved.

package auth

import "time"

// # Session Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// Kept short (15m) to minimize the impact of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a refresh session remains valid.
	// Seven days: long enough for a working week of curation, short enough
	// that a forgotten console session expires on its own.
	RefreshTokenTTL = 7 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random secure token.
	RefreshTokenLength = 32
)
