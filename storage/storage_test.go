package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "nested", "ytwatch.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func testKV(t *testing.T, kv KV) {
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Put(ctx, "key", "one"))
	value, err := kv.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "one", value)

	require.NoError(t, kv.Put(ctx, "key", "two"))
	value, err = kv.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "two", value)

	require.NoError(t, kv.Delete(ctx, "key"))
	_, err = kv.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, kv.Delete(ctx, "key"))
}

func TestMemory(t *testing.T) {
	testKV(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	testKV(t, newTestSQLite(t))
}

func TestSQLiteReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytwatch.db")
	first, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(context.Background(), "key", "kept"))
	require.NoError(t, first.Close())

	second, err := NewSQLite(path)
	require.NoError(t, err)
	defer second.Close()
	value, err := second.Get(context.Background(), "key")
	require.NoError(t, err)
	assert.Equal(t, "kept", value)
}

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("env DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	if err := db.Ping(); err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	pg, err := NewPostgres(db)
	require.NoError(t, err)
	defer pg.Close()

	pg.db.Exec(`DELETE FROM kv`)
	testKV(t, pg)
}

func TestNewPostgresMigrationFailure(t *testing.T) {
	db, err := sql.Open("postgres", "postgres://localhost/ytwatch?sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	pg, err := NewPostgres(db)
	assert.Error(t, err)
	assert.Nil(t, pg)
}

func TestOpen(t *testing.T) {
	b, err := Open(DriverMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, b)

	b, err = Open(DriverSQLite, filepath.Join(t.TempDir(), "open.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, b)
	assert.NoError(t, b.Close())

	_, err = Open("redis", "")
	assert.Error(t, err)
}

func TestCompareMigrations(t *testing.T) {
	for _, tc := range []struct {
		name     string
		wanted   []string
		existing []string
		exp      []string
		expErr   string
	}{
		{
			name:   "fresh database",
			wanted: []string{"a", "b"},
			exp:    []string{"a", "b"},
		},
		{
			name:     "up to date",
			wanted:   []string{"a", "b"},
			existing: []string{"a", "b"},
			exp:      []string{},
		},
		{
			name:     "one missing",
			wanted:   []string{"a", "b", "c"},
			existing: []string{"a", "b"},
			exp:      []string{"c"},
		},
		{
			name:     "more existing than wanted",
			wanted:   []string{"a"},
			existing: []string{"a", "b"},
			expErr:   "database has 2 migrations, only 1 known",
		},
		{
			name:     "changed migration",
			wanted:   []string{"a", "x"},
			existing: []string{"a", "b"},
			expErr:   `migration 1 differs from registered query "b"`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			act, err := compareMigrations(tc.wanted, tc.existing)
			if tc.expErr != "" {
				assert.EqualError(t, err, tc.expErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.exp, act)
		})
	}
}
