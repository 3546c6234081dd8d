package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the schema if it does not exist yet. The people table
// carries the denormalized totals the ledger maintains; total_paid is
// reserved and never written.
func Migrate(ctx context.Context, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			currency_symbol TEXT NOT NULL DEFAULT '€',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS people (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			total_owed NUMERIC(12, 2) NOT NULL DEFAULT 0,
			total_paid NUMERIC(12, 2) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS debts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			person_id UUID NOT NULL REFERENCES people(id) ON DELETE CASCADE,
			amount NUMERIC(12, 2) NOT NULL,
			description TEXT,
			paid BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_debts_user_created ON debts (user_id, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_debts_person_created ON debts (person_id, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_people_user_name ON people (user_id, name);
	`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	return nil
}
