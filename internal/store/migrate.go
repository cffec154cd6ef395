package store

import (
	"database/sql"
	"fmt"
)

// migrations[i] moves the schema from version i to i+1. Append only.
var migrations = []func(tx *sql.Tx) error{
	migrateJobsAndLogos,
	migrateApplyURLAndLogoSource,
}

var schemaVersion = len(migrations)

// Migrate brings db up to the latest schema version in one transaction.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v > schemaVersion {
		return fmt.Errorf("database schema v%d is newer than this binary (v%d)", v, schemaVersion)
	}
	if v == schemaVersion {
		return tx.Commit()
	}

	for i := v; i < schemaVersion; i++ {
		if err := migrations[i](tx); err != nil {
			return fmt.Errorf("schema v%d: %w", i+1, err)
		}
	}
	if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d;`, schemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}

func migrateJobsAndLogos(tx *sql.Tx) error {
	for _, stmt := range []string{`
CREATE TABLE IF NOT EXISTS jobs (
  id TEXT PRIMARY KEY,
  position INTEGER NOT NULL,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL,
  employment_type TEXT NOT NULL,
  skills TEXT NOT NULL DEFAULT '[]',
  salary TEXT NOT NULL DEFAULT '',
  tags TEXT NOT NULL DEFAULT '[]',
  description TEXT NOT NULL DEFAULT '',
  requirements TEXT NOT NULL DEFAULT '[]',
  logo_ref TEXT NOT NULL DEFAULT ''
);`, `
CREATE TABLE IF NOT EXISTS logos (
  key TEXT PRIMARY KEY,
  content_type TEXT NOT NULL,
  bytes BLOB NOT NULL,
  fetched_at TEXT NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_position ON jobs(position);`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func migrateApplyURLAndLogoSource(tx *sql.Tx) error {
	for _, c := range []struct{ table, col string }{
		{"jobs", "apply_url"},
		{"logos", "source_url"},
	} {
		if columnExists(tx, c.table, c.col) {
			continue
		}
		stmt := fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s TEXT NOT NULL DEFAULT '';`, c.table, c.col)
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func columnExists(tx *sql.Tx, table, col string) bool {
	var one int
	err := tx.QueryRow(
		fmt.Sprintf(`SELECT 1 FROM pragma_table_info('%s') WHERE name = ? LIMIT 1;`, table),
		col,
	).Scan(&one)
	return err == nil
}
