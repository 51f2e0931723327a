// Package sqlite provides SQLite-based storage for rendered pbidoc reports.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// The database file is the deliverable, so it must not depend on
	// -wal or -shm side files.
	if _, err := conn.Exec("PRAGMA journal_mode = DELETE"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set journal mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			package_name TEXT NOT NULL,
			checksum TEXT NOT NULL DEFAULT '',
			generated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS pages (
			report_id TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			page_name TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS visuals (
			report_id TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			page_name TEXT NOT NULL,
			x INTEGER NOT NULL DEFAULT 0,
			y INTEGER NOT NULL DEFAULT 0,
			height INTEGER NOT NULL DEFAULT 0,
			width INTEGER NOT NULL DEFAULT 0,
			visual_type TEXT NOT NULL DEFAULT '',
			measures_used TEXT NOT NULL DEFAULT '[]'
		);

		CREATE TABLE IF NOT EXISTS "columns" (
			report_id TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			table_name TEXT NOT NULL,
			column_name TEXT NOT NULL,
			data_type TEXT NOT NULL DEFAULT '',
			is_calculated INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_pages_report_id ON pages(report_id);
		CREATE INDEX IF NOT EXISTS idx_visuals_report_id ON visuals(report_id);
		CREATE INDEX IF NOT EXISTS idx_columns_report_id ON "columns"(report_id);
	`

	_, err := db.db.Exec(schema)
	return err
}
