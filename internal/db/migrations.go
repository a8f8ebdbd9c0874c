package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_favorites_and_sequences",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_import_audit_tables",
		Up:      migrationV2,
	},
}

// RunMigrations applies every migration newer than the recorded version.
func RunMigrations(database *sql.DB) error {
	if _, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	current, err := currentVersion(database)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := m.Up(database); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}

	return nil
}

func currentVersion(database *sql.DB) (int, error) {
	var version int
	err := database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// ErrForeignFavorites is returned when an existing favorites table was not
// written by homeseed, such as a launcher's own database.
var ErrForeignFavorites = errors.New("favorites table has an unrecognized layout")

// legacyColumns are the favorites columns every homeseed database has carried.
var legacyColumns = []string{"id", "container", "item_type", "appwidget_id"}

// checkLegacyFavorites rejects a favorites table that lacks homeseed's
// columns. A missing table passes.
func checkLegacyFavorites(database *sql.DB) error {
	rows, err := database.Query("SELECT name FROM pragma_table_info('favorites')")
	if err != nil {
		return fmt.Errorf("failed to inspect favorites table: %w", err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to inspect favorites table: %w", err)
		}
		columns[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to inspect favorites table: %w", err)
	}
	if len(columns) == 0 {
		return nil
	}

	var missing []string
	for _, c := range legacyColumns {
		if !columns[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing column(s) %s", ErrForeignFavorites, strings.Join(missing, ", "))
	}
	return nil
}

// migrationV1 creates the favorites store. A favorites table left by a
// homeseed build from before schema versioning is kept and its rows seed the
// id sequence.
func migrationV1(database *sql.DB) error {
	if err := checkLegacyFavorites(database); err != nil {
		return err
	}
	_, err := database.Exec(`
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
		CREATE TABLE IF NOT EXISTS appwidgets (
			appwidget_id INTEGER PRIMARY KEY,
			package TEXT NOT NULL,
			class TEXT NOT NULL,
			bound_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS sequences (
			name TEXT PRIMARY KEY,
			value INTEGER NOT NULL DEFAULT 0
		);
		INSERT OR IGNORE INTO sequences (name, value)
			SELECT 'favorites', COALESCE(MAX(id), 0) FROM favorites;
		INSERT OR IGNORE INTO sequences (name, value)
			SELECT 'appwidgets', COALESCE(MAX(appwidget_id), 0) FROM appwidgets;
	`)
	return err
}

func migrationV2(database *sql.DB) error {
	_, err := database.Exec(`
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
		CREATE TABLE IF NOT EXISTS import_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			favorite_id INTEGER NOT NULL,
			action TEXT NOT NULL CHECK(action IN ('insert', 'retract')),
			detail TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_import_log_run ON import_log(run_id);
	`)
	return err
}
