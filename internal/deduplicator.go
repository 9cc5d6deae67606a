package internal

import (
	"crypto/sha256"
	"encoding/hex"
)

// Deduplicator removes repeated scraped records. A scraper that rescans a
// chat pane emits the same element more than once.
type Deduplicator struct{}

// NewDeduplicator creates a new Deduplicator
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

// Deduplicate keeps the first occurrence of each record and returns the
// number dropped.
func (d *Deduplicator) Deduplicate(records []Record) ([]Record, int) {
	seen := make(map[string]bool, len(records))
	unique := make([]Record, 0, len(records))

	for _, r := range records {
		hash := d.hashRecord(r)
		if seen[hash] {
			continue
		}
		seen[hash] = true
		unique = append(unique, r)
	}

	return unique, len(records) - len(unique)
}

// hashRecord creates a content hash over sender, body and timestamp
func (d *Deduplicator) hashRecord(r Record) string {
	h := sha256.New()
	for _, field := range []string{CleanSender(r.Sender), r.Body, r.Timestamp} {
		h.Write([]byte(field))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
