// Package storage opens the record backend selected by configuration.
package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/MrJamesThe3rd/wealthwise/internal/config"
	"github.com/MrJamesThe3rd/wealthwise/internal/database"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
	"github.com/MrJamesThe3rd/wealthwise/internal/store/file"
	"github.com/MrJamesThe3rd/wealthwise/internal/store/sqlstore"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendFile     = "file"
	BackendMemory   = "memory"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the configured backend and a closer releasing its resources.
func Open(cfg *config.Config) (store.Backend, io.Closer, error) {
	switch cfg.Storage.Backend {
	case BackendSQLite, "":
		if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating data directory: %w", err)
		}

		return openSQL(sqlstore.SQLite, cfg.SQLitePath())
	case BackendPostgres:
		return openSQL(sqlstore.Postgres, cfg.ConnectionString())
	case BackendFile:
		b, err := file.New(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}

		return b, nopCloser{}, nil
	case BackendMemory:
		slog.Warn("Using in-memory storage, data will not survive a restart")
		return store.NewMemoryBackend(), nopCloser{}, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

func openSQL(dialect sqlstore.Dialect, dsn string) (store.Backend, io.Closer, error) {
	if err := sqlstore.Migrate(dialect, dsn); err != nil {
		return nil, nil, fmt.Errorf("migrating %s: %w", dialect, err)
	}

	db, err := database.New(dialect.Driver(), dsn)
	if err != nil {
		return nil, nil, err
	}

	return sqlstore.New(db, dialect), db, nil
}
