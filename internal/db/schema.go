package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete modern schema for fresh homeseed databases.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Adapter tests
// load it through GetSchemaSQL() so a repository referencing a column that does
// not exist here fails immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Bump CurrentVersion
const SchemaSQL = `
-- Favorites (one row per placed home-screen item)
CREATE TABLE IF NOT EXISTS favorites (
	id INTEGER PRIMARY KEY,
	title TEXT,
	intent TEXT,
	container INTEGER NOT NULL,
	screen INTEGER,
	cell_x INTEGER,
	cell_y INTEGER,
	span_x INTEGER NOT NULL DEFAULT 1,
	span_y INTEGER NOT NULL DEFAULT 1,
	item_type INTEGER NOT NULL CHECK(item_type IN (0, 1, 2, 4)),
	appwidget_id INTEGER NOT NULL DEFAULT -1,
	appwidget_provider TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_favorites_container ON favorites(container);

-- Widget instance bindings (instance id -> provider component)
CREATE TABLE IF NOT EXISTS appwidgets (
	appwidget_id INTEGER PRIMARY KEY,
	package TEXT NOT NULL,
	class TEXT NOT NULL,
	bound_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- High-water marks for identities that must never be reused
CREATE TABLE IF NOT EXISTS sequences (
	name TEXT PRIMARY KEY,
	value INTEGER NOT NULL DEFAULT 0
);

INSERT OR IGNORE INTO sequences (name, value) VALUES ('favorites', 0);
INSERT OR IGNORE INTO sequences (name, value) VALUES ('appwidgets', 0);

-- Import runs (one row per ingestion pass)
CREATE TABLE IF NOT EXISTS import_runs (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	container INTEGER NOT NULL,
	loaded INTEGER NOT NULL DEFAULT 0,
	failed INTEGER NOT NULL DEFAULT 0,
	aborted TEXT,
	started_at DATETIME,
	finished_at DATETIME
);

-- Import log (audit of inserts and retractions per run)
CREATE TABLE IF NOT EXISTS import_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT,
	favorite_id INTEGER NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('insert', 'retract')),
	detail TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_import_log_run ON import_log(run_id);

-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// CurrentVersion is the schema version SchemaSQL corresponds to.
const CurrentVersion = 2

// InitSchema brings database up to the current schema. Fresh databases get
// SchemaSQL directly; databases created by an older release are migrated.
func InitSchema(database *sql.DB) error {
	var tableCount int
	err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		var favoritesCount int
		err = database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='favorites'").Scan(&favoritesCount)
		if err != nil {
			return err
		}

		if favoritesCount > 0 {
			// Pre-versioning database - run migrations to upgrade
			return RunMigrations(database)
		}

		if _, err := database.Exec(SchemaSQL); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", CurrentVersion); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
		return nil
	}

	return RunMigrations(database)
}

// GetSchemaSQL returns the authoritative schema for tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
