package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/chatfilter/internal"
	"github.com/iksnae/chatfilter/testutil"
)

const wantFiltered = "[22/04/2025, 10:01] John Smith: Trip to the Alps on Saturday!\n" +
	"Bring your boots.\n" +
	"[24/04/2025, 08:15] Anna: Meeting at 10:00 in the hut"

func writeChat(t *testing.T) string {
	t.Helper()
	return testutil.WriteFile(t, testutil.CreateTempDir(t), "chat.txt", testutil.ChatTranscript)
}

func TestFilterCommand_Stdout(t *testing.T) {
	input := writeChat(t)

	stdout, stderr, err := executeCommand(t, "filter", input, "-o", "-")
	if err != nil {
		t.Fatalf("filter error = %v", err)
	}
	if stdout != wantFiltered {
		t.Errorf("stdout = %q, want %q", stdout, wantFiltered)
	}

	for _, want := range []string{
		"Lines processed: 8",
		"Messages kept: 2",
		"Filtered (too old): 1",
		"Filtered (automated): 2",
		"Skipped (unparseable): 2",
	} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr should contain %q, got:\n%s", want, stderr)
		}
	}
}

func TestFilterCommand_DefaultOutputPath(t *testing.T) {
	input := writeChat(t)

	_, stderr, err := executeCommand(t, "filter", input)
	if err != nil {
		t.Fatalf("filter error = %v", err)
	}

	want := filepath.Join(filepath.Dir(input), "chat_filtered_20250429_101500.txt")
	if got := testutil.ReadFile(t, want); got != wantFiltered {
		t.Errorf("output file = %q, want %q", got, wantFiltered)
	}
	if !strings.Contains(stderr, "Wrote 2 message(s) to "+want) {
		t.Errorf("stderr should report the output file, got:\n%s", stderr)
	}
}

func TestFilterCommand_Flags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantStart string
		wantIn    []string
		wantNotIn []string
	}{
		{
			name:      "all time keeps old messages",
			args:      []string{"--all"},
			wantStart: "[01/01/2020, 09:00] Anna: Happy new year\n",
		},
		{
			name:      "days zero keeps all time",
			args:      []string{"--days", "0"},
			wantStart: "[01/01/2020, 09:00] Anna: Happy new year\n",
		},
		{
			name:      "narrow window",
			args:      []string{"--days", "5"},
			wantStart: "[24/04/2025, 08:15] Anna",
			wantNotIn: []string{"John Smith"},
		},
		{
			name:      "header",
			args:      []string{"--header"},
			wantStart: "# WhatsApp Chat Filtered Output\n# Original file: chat.txt\n",
			wantIn:    []string{"# Kept 2 messages.\n\n[22/04/2025, 10:01]"},
		},
		{
			name:      "prompt",
			args:      []string{"--prompt"},
			wantStart: "Analyze the following text",
			wantIn:    []string{"'chat.txt'", "the last 7 days", wantFiltered},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := writeChat(t)
			args := append([]string{"filter", input, "-o", "-"}, tt.args...)

			stdout, _, err := executeCommand(t, args...)
			if err != nil {
				t.Fatalf("filter error = %v", err)
			}
			if !strings.HasPrefix(stdout, tt.wantStart) {
				t.Errorf("stdout should start with %q, got:\n%s", tt.wantStart, stdout)
			}
			for _, want := range tt.wantIn {
				if !strings.Contains(stdout, want) {
					t.Errorf("stdout should contain %q", want)
				}
			}
			for _, notWant := range tt.wantNotIn {
				if strings.Contains(stdout, notWant) {
					t.Errorf("stdout should not contain %q", notWant)
				}
			}
		})
	}
}

func TestFilterCommand_JSON(t *testing.T) {
	input := writeChat(t)

	stdout, _, err := executeCommand(t, "filter", input, "-f", "json", "-o", "-")
	if err != nil {
		t.Fatalf("filter error = %v", err)
	}

	var records []internal.Record
	if err := json.Unmarshal([]byte(stdout), &records); err != nil {
		t.Fatalf("stdout is not a JSON array: %v\n%s", err, stdout)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Body != "Trip to the Alps on Saturday!\nBring your boots." {
		t.Errorf("first body = %q", records[0].Body)
	}
}

func TestFilterCommand_ConfigDays(t *testing.T) {
	input := writeChat(t)
	cfg := testutil.WriteFile(t, t.TempDir(), "config.yaml", "days: 0\n")

	stdout, _, err := executeCommand(t, "--config", cfg, "filter", input, "-o", "-")
	if err != nil {
		t.Fatalf("filter error = %v", err)
	}
	if !strings.Contains(stdout, "Happy new year") {
		t.Errorf("config days: 0 should keep all time, got:\n%s", stdout)
	}

	stdout, _, err = executeCommand(t, "--config", cfg, "filter", input, "-o", "-", "--days", "7")
	if err != nil {
		t.Fatalf("filter error = %v", err)
	}
	if strings.Contains(stdout, "Happy new year") {
		t.Error("--days should override the config file")
	}
}

func TestFilterCommand_Errors(t *testing.T) {
	input := writeChat(t)

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, err error)
	}{
		{
			name: "missing input",
			args: []string{"filter", filepath.Join(t.TempDir(), "missing.txt"), "-o", "-"},
			check: func(t *testing.T, err error) {
				var inputErr *internal.InputError
				if !errors.As(err, &inputErr) || !errors.Is(err, os.ErrNotExist) {
					t.Errorf("expected InputError wrapping os.ErrNotExist, got %v", err)
				}
			},
		},
		{
			name: "unsupported format",
			args: []string{"filter", input, "-f", "csv"},
			check: func(t *testing.T, err error) {
				if err == nil || !strings.Contains(err.Error(), "unsupported format") {
					t.Errorf("expected unsupported format error, got %v", err)
				}
			},
		},
		{
			name: "negative days",
			args: []string{"filter", input, "--days", "-3"},
			check: func(t *testing.T, err error) {
				if err == nil {
					t.Error("expected an error for negative days")
				}
			},
		},
		{
			name: "unwritable output",
			args: []string{"filter", input, "-o", filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt")},
			check: func(t *testing.T, err error) {
				var exportErr *internal.ExportError
				if !errors.As(err, &exportErr) {
					t.Errorf("expected ExportError, got %v", err)
				}
			},
		},
		{
			name: "no arguments",
			args: []string{"filter"},
			check: func(t *testing.T, err error) {
				if err == nil {
					t.Error("expected an error without an input file")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			tt.check(t, err)
		})
	}
}
