package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createOccasionsArchiveTable,
		createSeatSalesTable,
		createWithdrawalsTable,
		createSeatSalesOccasionIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Archive tables mirror committed ledger transitions. The ledger itself is
// authoritative; these rows are write-behind copies for reporting.

const createOccasionsArchiveTable = `
CREATE TABLE IF NOT EXISTS occasions_archive (
    id BIGINT PRIMARY KEY,
    name VARCHAR(500) NOT NULL,
    cost BIGINT NOT NULL,
    max_tickets BIGINT NOT NULL,
    occasion_date VARCHAR(100) NOT NULL,
    occasion_time VARCHAR(100) NOT NULL,
    location VARCHAR(500) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createSeatSalesTable = `
CREATE TABLE IF NOT EXISTS seat_sales (
    ticket_serial BIGINT PRIMARY KEY,
    occasion_id BIGINT NOT NULL REFERENCES occasions_archive(id),
    seat_number BIGINT NOT NULL,
    buyer VARCHAR(255) NOT NULL,
    price BIGINT NOT NULL,
    sold_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (occasion_id, seat_number)
);`

const createWithdrawalsTable = `
CREATE TABLE IF NOT EXISTS withdrawals (
    id SERIAL PRIMARY KEY,
    recipient VARCHAR(255) NOT NULL,
    amount BIGINT NOT NULL,
    reference VARCHAR(64) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createSeatSalesOccasionIndex = `
CREATE INDEX IF NOT EXISTS idx_seat_sales_occasion ON seat_sales(occasion_id);`
