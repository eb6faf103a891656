package sqlite

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/vintry/internal/db"
)

const testCellar = "test-cellar"

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// Every pooled connection to :memory: is a distinct database; keep one.
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func seedWine(t *testing.T, conn *sql.DB, id, name, color, zoneID string) {
	t.Helper()
	_, err := conn.Exec(
		"INSERT INTO wines (id, cellar_id, name, color, zone_id) VALUES (?, ?, ?, ?, ?)",
		id, testCellar, name, color, zoneID,
	)
	if err != nil {
		t.Fatalf("failed to seed wine %s: %v", id, err)
	}
}
