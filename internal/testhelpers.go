package internal

import (
	"time"
)

// CreateTestTranscript creates a filtered transcript with sample data
func CreateTestTranscript(source string) *Transcript {
	return CreateTestTranscriptWithMessages(source, []Message{
		{
			Sender:    "John Smith",
			Body:      "Trip to the Alps on Saturday!",
			Timestamp: "22/04/2025, 10:01",
			Date:      time.Date(2025, 4, 22, 0, 0, 0, 0, time.UTC),
			Lines: []string{
				"[22/04/2025, 10:01] John Smith: Trip to the Alps on Saturday!\n",
				"Bring your boots.\n",
			},
		},
		{
			Sender:    "Anna",
			Body:      "Meeting at 10:00 in the hut",
			Timestamp: "24/04/2025, 08:15",
			Date:      time.Date(2025, 4, 24, 0, 0, 0, 0, time.UTC),
			Lines:     []string{"[24/04/2025, 08:15] Anna: Meeting at 10:00 in the hut\n"},
		},
	})
}

// CreateTestTranscriptWithMessages creates a test transcript with custom
// messages, filtered on 29 April 2025 with a seven-day window.
func CreateTestTranscriptWithMessages(source string, messages []Message) *Transcript {
	filteredAt := time.Date(2025, 4, 29, 10, 15, 0, 0, time.UTC)
	return &Transcript{
		Source:     source,
		Messages:   messages,
		Stats:      Stats{LinesProcessed: 10, MessageStarts: 6, Kept: len(messages)},
		Window:     NewWindow(filteredAt, 7),
		FilteredAt: filteredAt,
	}
}

// CreateTestRecordTranscript creates a transcript from the record path
func CreateTestRecordTranscript(source string, records []Record) *Transcript {
	messages := make([]Message, 0, len(records))
	for _, r := range records {
		messages = append(messages, Message{Sender: r.Sender, Body: r.Body, Timestamp: r.Timestamp})
	}
	t := CreateTestTranscriptWithMessages(source, messages)
	t.Records = true
	t.Window = AllTime()
	return t
}
