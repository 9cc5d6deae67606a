package internal

import (
	"database/sql"
	"fmt"
	"os"
	"regexp"

	_ "modernc.org/sqlite"
)

// DefaultRecordsTable is the table scraped records are read from
const DefaultRecordsTable = "messages"

var tableNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// OpenDatabase opens an existing SQLite database in read-only mode. A
// missing file is an error and is never created.
func OpenDatabase(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// LoadRecords reads scraped records from the sender, body and timestamp
// columns of table, in storage order. NULL columns read as empty.
func LoadRecords(db *sql.DB, table string) ([]Record, error) {
	if !tableNameRegex.MatchString(table) {
		return nil, &ConfigError{Field: "table", Err: fmt.Errorf("invalid table name %q", table)}
	}

	query := "SELECT sender, body, timestamp FROM " + table
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var sender, body, timestamp sql.NullString
		if err := rows.Scan(&sender, &body, &timestamp); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		records = append(records, Record{
			Sender:    sender.String,
			Body:      body.String,
			Timestamp: timestamp.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// LoadRecordsDatabase opens path read-only and loads records from table
func LoadRecordsDatabase(path, table string) ([]Record, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, &InputError{Path: path, Op: "open", Err: err}
	}
	defer db.Close()

	records, err := LoadRecords(db, table)
	if err != nil {
		return nil, &InputError{Path: path, Op: "read", Err: err}
	}
	return records, nil
}
