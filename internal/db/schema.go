package db

import (
	"context"
	"fmt"
)

// schema is portable between PostgreSQL and SQLite.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS address (
		practiceid TEXT PRIMARY KEY,
		name       TEXT,
		street     TEXT,
		area       TEXT,
		posttown   TEXT,
		county     TEXT,
		postcode   TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS address_postcode_idx ON address (postcode)`,
	`CREATE TABLE IF NOT EXISTS gp_data_up_to_2015 (
		practiceid TEXT NOT NULL,
		bnfcode    TEXT NOT NULL,
		bnfname    TEXT,
		items      INTEGER,
		nic        DOUBLE PRECISION,
		actcost    DOUBLE PRECISION,
		quantity   INTEGER,
		period     INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS gp_data_practice_idx ON gp_data_up_to_2015 (practiceid)`,
	`CREATE TABLE IF NOT EXISTS qof_achievement (
		orgcode     TEXT NOT NULL,
		indicator   TEXT NOT NULL,
		numerator   DOUBLE PRECISION,
		denominator DOUBLE PRECISION,
		ratio       DOUBLE PRECISION,
		centile     DOUBLE PRECISION
	)`,
	`CREATE INDEX IF NOT EXISTS qof_indicator_idx ON qof_achievement (indicator, orgcode)`,
}

// CreateSchema creates the dataset tables if they are missing.
func (c *Connection) CreateSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := c.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
