package storage

import (
	"database/sql"
	"fmt"
)

type dialect struct {
	createMigrationTable string
	registerMigration    string
}

var (
	postgresDialect = dialect{
		createMigrationTable: `CREATE TABLE IF NOT EXISTS migration
("id" SERIAL PRIMARY KEY, "query" TEXT)`,
		registerMigration: `INSERT INTO migration (query) VALUES ($1)`,
	}
	sqliteDialect = dialect{
		createMigrationTable: `CREATE TABLE IF NOT EXISTS migration
("id" INTEGER PRIMARY KEY AUTOINCREMENT, "query" TEXT)`,
		registerMigration: `INSERT INTO migration (query) VALUES (?)`,
	}
)

// migrate executes and registers every wanted query that has not been run on
// db yet. Registered queries are never changed, only appended to.
func migrate(db *sql.DB, d dialect, wanted []string) error {
	if _, err := db.Exec(d.createMigrationTable); err != nil {
		return err
	}

	// find existing
	rows, err := db.Query(`SELECT query FROM migration ORDER BY id`)
	if err != nil {
		return err
	}

	existing := []string{}
	for rows.Next() {
		var query string
		if err := rows.Scan(&query); err != nil {
			rows.Close()
			return err
		}
		existing = append(existing, query)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	// compare
	missing, err := compareMigrations(wanted, existing)
	if err != nil {
		return err
	}

	// execute missing
	for _, query := range missing {
		if _, err := db.Exec(query); err != nil {
			return err
		}

		// register
		if _, err := db.Exec(d.registerMigration, query); err != nil {
			return err
		}
	}

	return nil
}

// compareMigrations returns the tail of wanted that is not yet in existing.
// The registered history must be a prefix of wanted.
func compareMigrations(wanted, existing []string) ([]string, error) {
	if len(existing) > len(wanted) {
		return nil, fmt.Errorf("database has %d migrations, only %d known", len(existing), len(wanted))
	}
	for i, query := range existing {
		if wanted[i] != query {
			return nil, fmt.Errorf("migration %d differs from registered query %q", i, query)
		}
	}

	return append([]string{}, wanted[len(existing):]...), nil
}
