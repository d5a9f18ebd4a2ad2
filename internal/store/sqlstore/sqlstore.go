// Package sqlstore keeps records in a single key/payload table on SQLite or Postgres.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/wealthwise/internal/database"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
)

type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Driver returns the database/sql driver name for the dialect.
func (d Dialect) Driver() string {
	if d == Postgres {
		return database.DriverPostgres
	}

	return database.DriverSQLite
}

type Backend struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

func New(db *sql.DB, dialect Dialect) *Backend {
	return &Backend{db: db, dialect: dialect, now: time.Now}
}

func (b *Backend) placeholders() (string, string, string) {
	if b.dialect == Postgres {
		return "$1", "$2", "$3"
	}

	return "?", "?", "?"
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	p1, _, _ := b.placeholders()
	query := `SELECT payload FROM records WHERE key = ` + p1

	var payload string

	err := b.db.QueryRowContext(ctx, query, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("querying record %s: %w", key, err)
	}

	return []byte(payload), nil
}

func (b *Backend) Put(ctx context.Context, key string, payload []byte) error {
	p1, p2, p3 := b.placeholders()
	query := `
		INSERT INTO records (key, payload, updated_at)
		VALUES (` + p1 + `, ` + p2 + `, ` + p3 + `)
		ON CONFLICT (key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`

	if _, err := b.db.ExecContext(ctx, query, key, string(payload), b.now().UTC()); err != nil {
		return fmt.Errorf("upserting record %s: %w", key, err)
	}

	return nil
}
