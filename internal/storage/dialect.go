package storage

import (
	"fmt"
	"strconv"
)

type dialect struct {
	name string
	// param renders the n-th (1-based) placeholder.
	param func(n int) string
	// numeric renders a placeholder compared against numeric columns.
	numeric func(n int) string
	pragmas []string
	schema  []string
	// afterExplicitIDs realigns id generation after rows were written with explicit ids.
	afterExplicitIDs string
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case DriverSQLite:
		return sqliteDialect, nil
	case DriverPostgres:
		return postgresDialect, nil
	default:
		return dialect{}, fmt.Errorf("storage: unsupported driver %q", driver)
	}
}

var sqliteDialect = dialect{
	name:    DriverSQLite,
	param:   func(int) string { return "?" },
	numeric: func(int) string { return "?" },
	pragmas: []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	},
	schema: []string{
		`CREATE TABLE IF NOT EXISTS scholarships (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			amount BIGINT NOT NULL DEFAULT 0,
			location TEXT NOT NULL DEFAULT 'Any',
			type TEXT NOT NULL DEFAULT 'Any',
			religious TEXT NOT NULL DEFAULT 'Any',
			gender TEXT NOT NULL DEFAULT 'Any',
			min_age INTEGER NOT NULL DEFAULT 0,
			max_age INTEGER NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT 'Any',
			institution_name TEXT,
			deadline TIMESTAMP,
			income BIGINT,
			disability BOOLEAN,
			ex_service BOOLEAN,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scholarships_active_deadline ON scholarships (is_active, deadline)`,
	},
}

var postgresDialect = dialect{
	name:    DriverPostgres,
	param:   func(n int) string { return "$" + strconv.Itoa(n) },
	numeric: func(n int) string { return "$" + strconv.Itoa(n) + "::float8" },
	schema: []string{
		`CREATE TABLE IF NOT EXISTS scholarships (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			amount BIGINT NOT NULL DEFAULT 0,
			location TEXT NOT NULL DEFAULT 'Any',
			type TEXT NOT NULL DEFAULT 'Any',
			religious TEXT NOT NULL DEFAULT 'Any',
			gender TEXT NOT NULL DEFAULT 'Any',
			min_age INTEGER NOT NULL DEFAULT 0,
			max_age INTEGER NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT 'Any',
			institution_name TEXT,
			deadline TIMESTAMPTZ,
			income BIGINT,
			disability BOOLEAN,
			ex_service BOOLEAN,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scholarships_active_deadline ON scholarships (is_active, deadline)`,
	},
	afterExplicitIDs: `SELECT setval(pg_get_serial_sequence('scholarships', 'id'),
		GREATEST((SELECT COALESCE(MAX(id), 0) FROM scholarships), 1))`,
}
