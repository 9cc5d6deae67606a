package internal

import (
	"encoding/json"
	"strings"
	"time"
)

// DefaultSystemSender is the sender recorded for messages whose source omits one.
const DefaultSystemSender = "Me/System"

// ChatLine is one physical line of a transcript
type ChatLine struct {
	Raw    string     // unmodified line, including its line ending
	Parsed *LineMatch // nil for continuation lines
}

// IsMessageStart reports whether the line begins a new message
func (l ChatLine) IsMessageStart() bool {
	return l.Parsed != nil
}

// LineMatch holds the fields of a message-start line
type LineMatch struct {
	DateText string
	Time     string
	Sender   string // empty when System is set
	Body     string // first line of the message, trimmed
	System   bool   // unattributed line
}

// Timestamp returns the bracketed date and time as they appeared
func (m *LineMatch) Timestamp() string {
	return m.DateText + ", " + m.Time
}

// Message is the unit the classifier and date window operate on
type Message struct {
	Sender    string    `json:"sender" yaml:"sender"`
	Body      string    `json:"body" yaml:"body"`
	Timestamp string    `json:"timestamp" yaml:"timestamp"`
	Date      time.Time `json:"-" yaml:"-"`
	Lines     []string  `json:"-" yaml:"-"` // verbatim block; empty for records
}

// Text returns the full message text: the first-line body followed by
// any continuation lines, without line endings.
func (m *Message) Text() string {
	if len(m.Lines) <= 1 {
		return m.Body
	}
	parts := make([]string, 0, len(m.Lines))
	parts = append(parts, m.Body)
	for _, line := range m.Lines[1:] {
		parts = append(parts, strings.TrimRight(line, "\r\n"))
	}
	return strings.Join(parts, "\n")
}

// Record is a single scraped message
type Record struct {
	Sender    string `json:"sender" yaml:"sender"`
	Body      string `json:"body" yaml:"body"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// UnmarshalJSON accepts the scraper's legacy "text" key for the body and
// tolerates null fields.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Sender    *string `json:"sender"`
		Body      *string `json:"body"`
		Text      *string `json:"text"`
		Timestamp *string `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Record{}
	if raw.Sender != nil {
		r.Sender = *raw.Sender
	}
	switch {
	case raw.Body != nil:
		r.Body = *raw.Body
	case raw.Text != nil:
		r.Body = *raw.Text
	}
	if raw.Timestamp != nil {
		r.Timestamp = *raw.Timestamp
	}
	return nil
}

// Stats counts what happened to each input unit during a filter run
type Stats struct {
	LinesProcessed int `json:"lines_processed" yaml:"lines_processed"`
	MessageStarts  int `json:"message_starts" yaml:"message_starts"`
	Kept           int `json:"kept" yaml:"kept"`
	TooOld         int `json:"too_old" yaml:"too_old"`
	Automated      int `json:"automated" yaml:"automated"`
	MalformedDates int `json:"malformed_dates" yaml:"malformed_dates"`
	OrphanLines    int `json:"orphan_lines" yaml:"orphan_lines"`
	Duplicates     int `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
}

// Skipped returns the number of lines skipped as unparseable
func (s Stats) Skipped() int {
	return s.MalformedDates + s.OrphanLines
}

// Transcript is the retained result of a filter run
type Transcript struct {
	Source     string
	Messages   []Message
	Stats      Stats
	Window     Window
	FilteredAt time.Time
	Records    bool // came from the record-list path; no date filtering applied
}
