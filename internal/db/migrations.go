package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'quote_status') THEN
			CREATE TYPE quote_status AS ENUM ('DRAFT', 'SUBMITTED', 'ACCEPTED', 'REJECTED');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS quotes (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		quote_number VARCHAR(64) NOT NULL,
		project_name TEXT NOT NULL DEFAULT '',
		rfp_number VARCHAR(64) NOT NULL DEFAULT '',
		customer_company TEXT NOT NULL,
		customer_contact TEXT NOT NULL DEFAULT '',
		customer_email TEXT NOT NULL DEFAULT '',
		customer_phone TEXT NOT NULL DEFAULT '',
		customer_address TEXT NOT NULL DEFAULT '',
		customer_city TEXT NOT NULL DEFAULT '',
		customer_state TEXT NOT NULL DEFAULT '',
		customer_zip TEXT NOT NULL DEFAULT '',
		start_date DATE NOT NULL,
		crew_size INT NOT NULL,
		hours_per_tech NUMERIC(6,2) NOT NULL,
		weather_profile VARCHAR(32) NOT NULL,
		annual_total NUMERIC(18,2) NOT NULL DEFAULT 0,
		status quote_status NOT NULL DEFAULT 'DRAFT',
		created_by_org_id UUID NOT NULL,
		created_by_user_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_quote_number ON quotes (quote_number);`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_status ON quotes (status);`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_created_by_org ON quotes (created_by_org_id);`,
	`CREATE TABLE IF NOT EXISTS quote_units (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		quote_id UUID NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
		asset_id TEXT NOT NULL DEFAULT '',
		manufacturer TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		serial_number TEXT NOT NULL DEFAULT '',
		building TEXT NOT NULL DEFAULT '',
		kw NUMERIC(10,1) NOT NULL,
		fuel_type VARCHAR(32) NOT NULL DEFAULT ''
	);`,
	`CREATE INDEX IF NOT EXISTS idx_quote_units_quote_id ON quote_units (quote_id);`,
	`CREATE TABLE IF NOT EXISTS quote_services (
		quote_id UUID NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
		unit_id UUID NOT NULL REFERENCES quote_units(id) ON DELETE CASCADE,
		code VARCHAR(16) NOT NULL,
		name TEXT NOT NULL,
		frequency INT NOT NULL,
		occurrence_cost NUMERIC(18,2) NOT NULL DEFAULT 0,
		PRIMARY KEY (quote_id, unit_id, code)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_quote_services_quote_id ON quote_services (quote_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
