package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// ChatTranscript is a small export covering each kind of line: a header
// orphan, an old message, system notices, a multi-line message, a bad
// date and a trailing line without a newline.
const ChatTranscript = "WhatsApp Chat with Ski Club\n" +
	"[01/01/2020, 09:00] Anna: Happy new year\n" +
	"[22/04/2025, 10:00] Messages and calls are end-to-end encrypted.\n" +
	"[22/04/2025, 10:01] John Smith: Trip to the Alps on Saturday!\n" +
	"Bring your boots.\n" +
	"[23/04/2025, 11:00] John Smith left\n" +
	"[31/02/2025, 12:00] Anna: bad date\n" +
	"[24/04/2025, 08:15] Anna: Meeting at 10:00 in the hut"

// ChatRecords is a scraped record list matching the scraper's output
const ChatRecords = `[
    {"sender": "Me/System", "text": "You added Bob", "timestamp": "10:00"},
    {"sender": "Anna", "body": "Trip on Saturday!", "timestamp": "10:01"},
    {"sender": "Anna", "body": "Trip on Saturday!", "timestamp": "10:01"},
    {"sender": null, "body": "<Media omitted>", "timestamp": null},
    {"sender": "Bob", "body": "Count me in", "timestamp": "10:02"}
]`

// SampleRecords are the rows CreateSQLiteFixture inserts
var SampleRecords = [][3]any{
	{"Anna", "Trip on Saturday!", "10:01"},
	{nil, "Messages and calls are end-to-end encrypted.", nil},
	{"Bob", "Count me in", "10:02"},
}

// CreateSQLiteFixture creates a SQLite database holding SampleRecords in
// the given table.
func CreateSQLiteFixture(t *testing.T, dbPath, table string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	createRecordsTable(t, db, table)
	for _, row := range SampleRecords {
		InsertRecord(t, db, table, row[0], row[1], row[2])
	}
}
