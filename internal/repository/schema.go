package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Bootstrap creates the tables when they are missing and seeds the
// department set from the distinct labels already present on the roster.
// Safe to run on every startup.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS vehicles (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS employees (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			department TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'IN',
			comment TEXT NOT NULL DEFAULT '',
			estimated_return TEXT NOT NULL DEFAULT '',
			vehicle_id BIGINT REFERENCES vehicles(id),
			last_changed TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS departments (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`INSERT INTO departments (name)
		 SELECT DISTINCT department FROM employees
		 ON CONFLICT (name) DO NOTHING`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}
	return nil
}
