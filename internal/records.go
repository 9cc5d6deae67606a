package internal

import (
	"encoding/json"
	"io"
	"os"
)

// DecodeRecords reads a JSON array of scraped records
func DecodeRecords(r io.Reader, source string) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, &RecordParseError{Source: source, Err: err}
	}
	return records, nil
}

// LoadRecordsFile reads scraped records from a JSON file
func LoadRecordsFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()
	return DecodeRecords(f, path)
}
