// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/homeseed/internal/core/layout"
	"github.com/example/homeseed/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// each pooled connection to :memory: would see its own empty database
	testDB.SetMaxOpenConns(1)

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedFavorite inserts a bare desktop shortcut row and returns its ID.
func seedFavorite(t *testing.T, db *sql.DB, id int64, title string) int64 {
	t.Helper()
	if title == "" {
		title = "Test Favorite"
	}
	_, err := db.Exec(
		"INSERT INTO favorites (id, title, container, item_type) VALUES (?, ?, ?, ?)",
		id, title, int64(layout.ContainerDesktop), int(layout.KindApplication),
	)
	if err != nil {
		t.Fatalf("failed to seed favorite: %v", err)
	}
	return id
}

// countRows returns the number of rows in table.
func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}

func intp(n int) *int { return &n }
