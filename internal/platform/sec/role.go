// Copyright (c) 2026 Patriarchia. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Full catalogue administration: create/update/soft-delete records, export.
	RoleAdmin UserRole = "admin"

	// Read-only access to the administrative listing (includes inactive records).
	RoleCurator UserRole = "curator"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 20
	case RoleCurator:
		return 10
	}
	return 0
}
