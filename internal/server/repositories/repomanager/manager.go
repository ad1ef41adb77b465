// Package repomanager selects a storage backend from a DSN and vends
// repositories and schema migrations for it.
package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/usersvc/internal/dbx"
	"github.com/dmitrijs2005/usersvc/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

var ErrUnsupportedDSN = errors.New("unsupported database dsn")

type RepositoryManager interface {
	// DriverName is the database/sql driver the backend is opened with.
	DriverName() string
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// ForDSN picks the backend for dsn and returns it together with the DSN in
// the form its driver expects.
//
//	postgres://... | postgresql://...   PostgreSQL (pgx)
//	sqlite://path | file:... | :memory: SQLite (modernc)
//	memory://                           in-process store, nothing persisted
func ForDSN(dsn string) (RepositoryManager, string, error) {
	switch {
	case dsn == "memory://":
		return NewMemoryRepositoryManager(), "", nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewPostgresRepositoryManager(), dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		path := strings.TrimPrefix(dsn, "sqlite://")
		if path == "" {
			return nil, "", fmt.Errorf("%w: empty sqlite path", ErrUnsupportedDSN)
		}
		return NewSQLiteRepositoryManager(), path, nil
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return NewSQLiteRepositoryManager(), dsn, nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, redact(dsn))
	}
}

// Open resolves dsn, opens and pings the pool. The returned *sql.DB is nil
// for the in-memory backend.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {
	m, driverDSN, err := ForDSN(dsn)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := m.(*MemoryRepositoryManager); ok {
		return nil, m, nil
	}

	db, err := dbx.Open(ctx, m.DriverName(), driverDSN)
	if err != nil {
		return nil, nil, err
	}

	if _, ok := m.(*SQLiteRepositoryManager); ok {
		// one writer at a time; also keeps a :memory: database alive and shared
		db.SetMaxOpenConns(1)
	}

	return db, m, nil
}

// redact strips everything after the scheme so credentials never reach logs.
func redact(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i+3] + "..."
	}
	if len(dsn) > 8 {
		return dsn[:8] + "..."
	}
	return dsn
}
