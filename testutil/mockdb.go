package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateInMemoryDB creates an in-memory SQLite database with an empty
// records table.
func CreateInMemoryDB(t *testing.T, table string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	createRecordsTable(t, db, table)
	return db
}

// InsertRecord inserts one scraped record. nil values are stored as NULL.
func InsertRecord(t *testing.T, db *sql.DB, table string, sender, body, timestamp any) {
	t.Helper()
	insertSQL := "INSERT INTO " + table + " (sender, body, timestamp) VALUES (?, ?, ?)"
	if _, err := db.Exec(insertSQL, sender, body, timestamp); err != nil {
		t.Fatalf("Failed to insert record: %v", err)
	}
}

func createRecordsTable(t *testing.T, db *sql.DB, table string) {
	t.Helper()
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS ` + table + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sender TEXT,
		body TEXT,
		timestamp TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create %s table: %v", table, err)
	}
}
