package db

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // sqlite driver
)

// Open returns a handle for driver "sqlite" or "postgres". It does not
// contact the database.
func Open(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case "sqlite", "postgres":
	default:
		return nil, errors.Errorf("unsupported sql driver %q", driver)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	if driver == "sqlite" {
		// SQLite allows a single writer
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}
	return db, nil
}

var createEventsTable = map[string][]string{
	"sqlite": {
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			location TEXT NOT NULL,
			start_date_and_time TIMESTAMP NOT NULL,
			end_date_and_time TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS events_start_idx ON events(start_date_and_time DESC)`,
	},
	"postgres": {
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			location TEXT NOT NULL,
			start_date_and_time TIMESTAMPTZ NOT NULL,
			end_date_and_time TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS events_start_idx ON events(start_date_and_time DESC)`,
	},
}

// CreateTables creates the events table and its index if they are missing.
func CreateTables(ctx context.Context, db *sqlx.DB) error {
	queries, ok := createEventsTable[db.DriverName()]
	if !ok {
		return errors.Errorf("no schema for driver %q", db.DriverName())
	}
	for _, q := range queries {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return errors.Wrap(err, "create events table")
		}
	}
	return nil
}
