package storage

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/lib/pq"
)

var pgMigration = []string{
	`CREATE TABLE kv (
    key VARCHAR(255) PRIMARY KEY,
    value TEXT NOT NULL
)`,
}

type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) (*Postgres, error) {
	p := &Postgres{db: db}
	if err := migrate(db, postgresDialect, pgMigration); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Postgres) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := p.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	return value, nil
}

func (p *Postgres) Put(ctx context.Context, key, value string) error {
	_, err := p.db.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, key, value)

	return err
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM kv WHERE key = $1`, key)

	return err
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
