package internal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var filterToday = time.Date(2025, 4, 29, 9, 30, 0, 0, time.UTC)

const sampleTranscript = "WhatsApp Chat with Ski Club\n" +
	"\n" +
	"[20/04/2025, 09:00:00] Anna: Old news\n" +
	"still old\n" +
	"[22/04/2025, 10:00:00] Messages and calls are end-to-end encrypted. No one outside of this chat, not even WhatsApp, can read or listen to them.\n" +
	"[22/04/2025, 10:01:00] John Smith: Trip to the Alps on Saturday!\r\n" +
	"Bring your boots.\r\n" +
	"[23/04/2025, 11:00:00] John Smith left\n" +
	"[31/02/2025, 12:00:00] Anna: bad date\n" +
	"continuation of a bad date\n" +
	"[24/04/2025, 8:15 PM] Anna: Meeting at 10:00 in the hut\n" +
	"[25/04/2025, 09:00:00] Anna: <Media omitted>\n" +
	"[29/04/2025, 23:59:59] Bob: last one"

const sampleRetained = "[22/04/2025, 10:01:00] John Smith: Trip to the Alps on Saturday!\r\n" +
	"Bring your boots.\r\n" +
	"[24/04/2025, 8:15 PM] Anna: Meeting at 10:00 in the hut\n" +
	"[29/04/2025, 23:59:59] Bob: last one"

func newTestFilter(t *testing.T, window Window) *Filter {
	t.Helper()
	f, err := NewFilter(DefaultConfig(), window)
	if err != nil {
		t.Fatalf("NewFilter() error = %v", err)
	}
	f.now = func() time.Time { return filterToday }
	return f
}

func joinBlocks(msgs []Message) string {
	var sb strings.Builder
	for _, m := range msgs {
		for _, line := range m.Lines {
			sb.WriteString(line)
		}
	}
	return sb.String()
}

func TestFilterTranscript(t *testing.T) {
	f := newTestFilter(t, NewWindow(filterToday, 7))

	got, err := f.FilterTranscript(strings.NewReader(sampleTranscript), "chat.txt")
	if err != nil {
		t.Fatalf("FilterTranscript() error = %v", err)
	}

	want := Stats{
		LinesProcessed: 13,
		MessageStarts:  8,
		Kept:           3,
		TooOld:         1,
		Automated:      3,
		MalformedDates: 1,
		OrphanLines:    1,
	}
	if got.Stats != want {
		t.Errorf("Stats = %+v, want %+v", got.Stats, want)
	}
	if got.Stats.Skipped() != 2 {
		t.Errorf("Skipped() = %d, want 2", got.Stats.Skipped())
	}

	if out := joinBlocks(got.Messages); out != sampleRetained {
		t.Errorf("retained blocks = %q, want %q", out, sampleRetained)
	}

	first := got.Messages[0]
	if first.Sender != "John Smith" || first.Timestamp != "22/04/2025, 10:01:00" {
		t.Errorf("first message = %+v", first)
	}
	if first.Text() != "Trip to the Alps on Saturday!\nBring your boots." {
		t.Errorf("first message text = %q", first.Text())
	}
	if !first.Date.Equal(time.Date(2025, 4, 22, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first message date = %v", first.Date)
	}
	if got.Source != "chat.txt" || !got.FilteredAt.Equal(filterToday) {
		t.Errorf("transcript metadata = %q %v", got.Source, got.FilteredAt)
	}
}

func TestFilterTranscript_Properties(t *testing.T) {
	f := newTestFilter(t, NewWindow(filterToday, 7))

	t.Run("output never exceeds message starts", func(t *testing.T) {
		got, err := f.FilterTranscript(strings.NewReader(sampleTranscript), "chat.txt")
		if err != nil {
			t.Fatal(err)
		}
		if len(got.Messages) > got.Stats.MessageStarts {
			t.Errorf("kept %d of %d messages", len(got.Messages), got.Stats.MessageStarts)
		}
	})

	t.Run("filtering is idempotent", func(t *testing.T) {
		once, err := f.FilterTranscript(strings.NewReader(sampleTranscript), "chat.txt")
		if err != nil {
			t.Fatal(err)
		}
		first := joinBlocks(once.Messages)
		twice, err := f.FilterTranscript(strings.NewReader(first), "chat_filtered.txt")
		if err != nil {
			t.Fatal(err)
		}
		if second := joinBlocks(twice.Messages); second != first {
			t.Errorf("second pass = %q, want %q", second, first)
		}
	})

	t.Run("malformed date does not abort the scan", func(t *testing.T) {
		input := "[99/99/2025, 10:00] Anna: broken\n" +
			"dropped with it\n" +
			"[28/04/2025, 10:00] Anna: fine\n"
		got, err := f.FilterTranscript(strings.NewReader(input), "chat.txt")
		if err != nil {
			t.Fatal(err)
		}
		if got.Stats.MalformedDates != 1 || len(got.Messages) != 1 {
			t.Fatalf("stats = %+v, messages = %d", got.Stats, len(got.Messages))
		}
		if got.Messages[0].Body != "fine" {
			t.Errorf("kept %q", got.Messages[0].Body)
		}
	})

	t.Run("all time keeps old messages", func(t *testing.T) {
		all := newTestFilter(t, AllTime())
		got, err := all.FilterTranscript(strings.NewReader("[01/01/1999, 10:00] Anna: ancient\n"), "chat.txt")
		if err != nil {
			t.Fatal(err)
		}
		if len(got.Messages) != 1 {
			t.Errorf("kept %d messages, want 1", len(got.Messages))
		}
	})
}

func TestFilterTranscript_EdgeCases(t *testing.T) {
	f := newTestFilter(t, NewWindow(filterToday, 7))

	tests := []struct {
		name     string
		input    string
		wantKept int
		wantOut  string
	}{
		{
			name:     "empty input",
			input:    "",
			wantKept: 0,
			wantOut:  "",
		},
		{
			name:     "only continuation lines",
			input:    "hello\nworld\n",
			wantKept: 0,
			wantOut:  "",
		},
		{
			name:     "continuation of an automated notice is dropped",
			input:    "[28/04/2025, 10:00] Anna: This message was deleted\nextra\n[28/04/2025, 10:01] Bob: hi\n",
			wantKept: 1,
			wantOut:  "[28/04/2025, 10:01] Bob: hi\n",
		},
		{
			name:     "blank continuation lines are kept",
			input:    "[28/04/2025, 10:00] Anna: list:\n\n- one\n",
			wantKept: 1,
			wantOut:  "[28/04/2025, 10:00] Anna: list:\n\n- one\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.FilterTranscript(strings.NewReader(tt.input), "chat.txt")
			if err != nil {
				t.Fatalf("FilterTranscript() error = %v", err)
			}
			if len(got.Messages) != tt.wantKept {
				t.Errorf("kept %d messages, want %d", len(got.Messages), tt.wantKept)
			}
			if out := joinBlocks(got.Messages); out != tt.wantOut {
				t.Errorf("output = %q, want %q", out, tt.wantOut)
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestFilterTranscript_ReadError(t *testing.T) {
	f := newTestFilter(t, AllTime())
	_, err := f.FilterTranscript(failingReader{}, "chat.txt")

	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
	if inputErr.Op != "read" {
		t.Errorf("Op = %q, want read", inputErr.Op)
	}
}

func TestFilterFile(t *testing.T) {
	f := newTestFilter(t, NewWindow(filterToday, 7))
	dir := t.TempDir()

	_, err := f.FilterFile(filepath.Join(dir, "missing.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
	var inputErr *InputError
	if !errors.As(err, &inputErr) || inputErr.Op != "open" {
		t.Errorf("expected InputError with Op open, got %v", err)
	}

	path := filepath.Join(dir, "chat.txt")
	if err := os.WriteFile(path, []byte(sampleTranscript), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := f.FilterFile(path)
	if err != nil {
		t.Fatalf("FilterFile() error = %v", err)
	}
	if got.Stats.Kept != 3 || got.Source != path {
		t.Errorf("FilterFile() = %+v", got)
	}
}

func TestFilterRecords(t *testing.T) {
	f := newTestFilter(t, NewWindow(filterToday, 7))
	records := []Record{
		{Sender: "", Body: "Messages and calls are end-to-end encrypted.", Timestamp: "10:00"},
		{Sender: "You", Body: "You added Anna", Timestamp: "10:01"},
		{Sender: "Anna", Body: "Hello all", Timestamp: "10:02"},
		{Sender: " \u200eBob ", Body: "Trip on Saturday!", Timestamp: "01/01/1999"},
		{Sender: "", Body: "Note to self", Timestamp: ""},
	}

	got := f.FilterRecords(records, "scrape.json")
	if !got.Records {
		t.Error("transcript should be marked as records")
	}
	if got.Stats.Kept != 3 || got.Stats.Automated != 2 {
		t.Errorf("Stats = %+v", got.Stats)
	}

	wantSenders := []string{"Anna", "Bob", DefaultSystemSender}
	for i, m := range got.Messages {
		if m.Sender != wantSenders[i] {
			t.Errorf("message %d sender = %q, want %q", i, m.Sender, wantSenders[i])
		}
		if len(m.Lines) != 0 {
			t.Errorf("record message %d should carry no lines", i)
		}
	}
	if got.Messages[1].Timestamp != "01/01/1999" {
		t.Error("record dates are not filtered")
	}
}

func TestNewFilter_BlankSystemSender(t *testing.T) {
	for _, sender := range []string{"", "   "} {
		cfg := DefaultConfig()
		cfg.SystemSender = sender
		f, err := NewFilter(cfg, AllTime())
		if err != nil {
			t.Fatalf("NewFilter() error = %v", err)
		}

		input := "[22/04/2025, 10:00] You added Bob\n[22/04/2025, 10:01] Anna: Welcome Bob\n"
		tr, err := f.FilterTranscript(strings.NewReader(input), "chat.txt")
		if err != nil {
			t.Fatalf("FilterTranscript() error = %v", err)
		}
		if tr.Stats.Automated != 1 || tr.Stats.Kept != 1 {
			t.Errorf("system_sender %q: automated = %d, kept = %d, want 1 and 1", sender, tr.Stats.Automated, tr.Stats.Kept)
		}
	}
}
