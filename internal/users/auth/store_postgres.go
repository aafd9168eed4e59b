// Copyright (c) 2026 Patriarchia. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/copticarchive/patriarchia/internal/platform/database/schema"
	"github.com/copticarchive/patriarchia/internal/platform/dberr"
	"github.com/copticarchive/patriarchia/internal/platform/sec"
)

// PostgresCredentialStore implements [CredentialStore] using pgx.
type PostgresCredentialStore struct {
	db *pgxpool.Pool
}

// NewPostgresCredentialStore constructs a PostgreSQL backed credential store.
func NewPostgresCredentialStore(db *pgxpool.Pool) *PostgresCredentialStore {
	return &PostgresCredentialStore{db: db}
}

func adminColumns() string {
	t := schema.UsersAdmin
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		t.ID, t.Username, t.PasswordHash, t.Role, t.CreatedAt, t.UpdatedAt)
}

// FindByUsername retrieves an account by its unique username.
func (repository *PostgresCredentialStore) FindByUsername(ctx context.Context, username string) (*Admin, error) {
	t := schema.UsersAdmin
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, adminColumns(), t.Table, t.Username)

	admin := &Admin{}
	err := repository.db.QueryRow(ctx, query, username).Scan(
		&admin.ID, &admin.Username, &admin.PasswordHash, &admin.Role,
		&admin.CreatedAt, &admin.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_admin_by_username")
	}
	return admin, nil
}

// FindByID retrieves an account by primary key.
func (repository *PostgresCredentialStore) FindByID(ctx context.Context, id int) (*Admin, error) {
	t := schema.UsersAdmin
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, adminColumns(), t.Table, t.ID)

	admin := &Admin{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&admin.ID, &admin.Username, &admin.PasswordHash, &admin.Role,
		&admin.CreatedAt, &admin.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_admin_by_id")
	}
	return admin, nil
}

// Create inserts a new account, filling in the generated ID and timestamps.
func (repository *PostgresCredentialStore) Create(ctx context.Context, admin *Admin) error {
	t := schema.UsersAdmin
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s, %s`,
		t.Table, t.Username, t.PasswordHash, t.Role,
		t.ID, t.CreatedAt, t.UpdatedAt)

	err := repository.db.QueryRow(ctx, query, admin.Username, admin.PasswordHash, admin.Role).
		Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_admin")
	}
	return nil
}

// Count returns the total number of accounts.
func (repository *PostgresCredentialStore) Count(ctx context.Context) (int, error) {
	t := schema.UsersAdmin
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, t.Table)

	var total int
	if err := repository.db.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_admins")
	}
	return total, nil
}

// EnsureSeedAdmin creates the bootstrap admin account when the table is
// empty and seed credentials are configured. It is safe to call on every
// startup.
func EnsureSeedAdmin(ctx context.Context, store CredentialStore, username, password string, logger *slog.Logger) error {
	if username == "" || password == "" {
		return nil
	}

	total, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return fmt.Errorf("auth: hash seed password: %w", err)
	}

	admin := &Admin{
		Username:     username,
		PasswordHash: hash,
		Role:         sec.RoleAdmin,
	}
	if err := store.Create(ctx, admin); err != nil {
		return err
	}

	logger.InfoContext(ctx, "seed_admin_created", slog.String("username", username))
	return nil
}
