package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNotFound is returned when a key is not present in the store.
	ErrNotFound = errors.New("not found")
)

// KV is a minimal string key-value store. Deleting a key that does not
// exist is not an error.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type Backend interface {
	KV
	io.Closer
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the backend for the given driver. The dsn is ignored for
// the memory driver.
func Open(driver, dsn string) (Backend, error) {
	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		return NewSQLite(dsn)
	case DriverPostgres:
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("unable to open postgres: %w", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("unable to connect to postgres: %w", err)
		}
		pg, err := NewPostgres(db)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("unable to migrate postgres: %w", err)
		}
		return pg, nil
	default:
		return nil, fmt.Errorf("unknown store driver: %q", driver)
	}
}
