// Copyright (c) 2026 Patriarchia. All rights reserved.

package patriarch

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/copticarchive/patriarchia/internal/platform/database/schema"
	"github.com/copticarchive/patriarchia/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
//
// The heresies column is TEXT on purpose: historical rows carry several
// legacy encodings and are preserved byte-for-byte. Decoding happens on
// scan via [NormalizeHeresies]; newly written rows use [EncodeHeresies].
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed catalogue store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// columnList is the SELECT column set shared by every read query.
func columnList() string {
	t := schema.CatalogPatriarch
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.Slug, t.Name, t.CopticName, t.SequenceNumber,
		t.StartYear, t.EndYear, t.Era, t.Contributions, t.Biography,
		t.HeresiesFought, t.Active, t.CreatedAt, t.UpdatedAt)
}

// scanRecord hydrates one row into a domain entity, normalizing the raw
// heresy text through the shared decoder.
func scanRecord(row pgx.Row) (*Patriarch, error) {
	record := &Patriarch{}
	var copticName, biography *string
	var heresiesRaw *string

	err := row.Scan(
		&record.ID, &record.Slug, &record.Name, &copticName, &record.SequenceNumber,
		&record.StartYear, &record.EndYear, &record.Era, &record.Contributions, &biography,
		&heresiesRaw, &record.Active, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if copticName != nil {
		record.CopticName = *copticName
	}
	if biography != nil {
		record.Biography = *biography
	}
	record.HeresiesFought = NormalizeHeresies(heresiesRaw)

	return record, nil
}

func (repository *PostgresRepository) list(context context.Context, activeOnly bool) ([]*Patriarch, error) {
	t := schema.CatalogPatriarch

	query := fmt.Sprintf(`SELECT %s FROM %s`, columnList(), t.Table)
	if activeOnly {
		query += fmt.Sprintf(` WHERE %s = TRUE`, t.Active)
	}
	query += fmt.Sprintf(` ORDER BY %s ASC, %s ASC`, t.SequenceNumber, t.ID)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_patriarchs")
	}
	defer rows.Close()

	records := make([]*Patriarch, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_patriarch")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_patriarchs")
	}

	return records, nil
}

// ListActive returns every active record ordered by sequence number.
func (repository *PostgresRepository) ListActive(context context.Context) ([]*Patriarch, error) {
	return repository.list(context, true)
}

// ListAll returns every record including soft-deleted ones.
func (repository *PostgresRepository) ListAll(context context.Context) ([]*Patriarch, error) {
	return repository.list(context, false)
}

// FindByID returns the record with the given ID.
func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Patriarch, error) {
	t := schema.CatalogPatriarch
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, columnList(), t.Table, t.ID)

	record, err := scanRecord(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_patriarch_by_id")
	}
	return record, nil
}

// FindBySlug returns the record with the given slug.
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Patriarch, error) {
	t := schema.CatalogPatriarch
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, columnList(), t.Table, t.Slug)

	record, err := scanRecord(repository.db.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "get_patriarch_by_slug")
	}
	return record, nil
}

// Create persists a new record and fills in ID and timestamps.
func (repository *PostgresRepository) Create(context context.Context, record *Patriarch) error {
	t := schema.CatalogPatriarch
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s, %s, %s
	`,
		t.Table,
		t.Slug, t.Name, t.CopticName, t.SequenceNumber, t.StartYear,
		t.EndYear, t.Era, t.Contributions, t.Biography, t.HeresiesFought,
		t.ID, t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		record.Slug, record.Name, nullable(record.CopticName), record.SequenceNumber, record.StartYear,
		record.EndYear, record.Era, record.Contributions, nullable(record.Biography),
		EncodeHeresies(record.HeresiesFought),
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_patriarch")
	}

	record.Active = true
	return nil
}

// Update persists all mutable fields of the record.
func (repository *PostgresRepository) Update(context context.Context, record *Patriarch) error {
	t := schema.CatalogPatriarch
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5,
		    %s = $6, %s = $7, %s = $8, %s = $9, %s = NOW()
		WHERE %s = $10
		RETURNING %s
	`,
		t.Table,
		t.Name, t.CopticName, t.SequenceNumber, t.StartYear, t.EndYear,
		t.Era, t.Contributions, t.Biography, t.HeresiesFought, t.UpdatedAt,
		t.ID, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		record.Name, nullable(record.CopticName), record.SequenceNumber, record.StartYear, record.EndYear,
		record.Era, record.Contributions, nullable(record.Biography), EncodeHeresies(record.HeresiesFought),
		record.ID,
	).Scan(&record.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_patriarch")
	}

	return nil
}

// SetActive flips the soft-delete flag.
func (repository *PostgresRepository) SetActive(context context.Context, id int, active bool) error {
	t := schema.CatalogPatriarch
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
		t.Table, t.Active, t.UpdatedAt, t.ID)

	tag, err := repository.db.Exec(context, query, active, id)
	if err != nil {
		return dberr.Wrap(err, "set_patriarch_active")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
