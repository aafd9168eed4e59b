// Copyright (c) 2026 Patriarchia. All rights reserved.

package schema

// UsersAdminTable represents the 'users.admins' table
type UsersAdminTable struct {
	Table        string
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    string
	UpdatedAt    string
}

// UsersAdmin is the schema definition for users.admins
var UsersAdmin = UsersAdminTable{
	Table:        "users.admins",
	ID:           "id",
	Username:     "username",
	PasswordHash: "passwordhash",
	Role:         "role",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}
