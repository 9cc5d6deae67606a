package export

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"

	"github.com/iksnae/chatfilter/internal"
)

// TextExporter writes the retained blocks back verbatim. Preamble, when
// set, is written first; Header adds the informational comment lines.
type TextExporter struct {
	Preamble string
	Header   bool
}

// Export exports a transcript as plain text
func (e *TextExporter) Export(t *internal.Transcript, w io.Writer) error {
	bw := bufio.NewWriter(w)

	if e.Preamble != "" {
		_, _ = bw.WriteString(e.Preamble)
		_, _ = bw.WriteString("\n\n")
	}
	if e.Header {
		writeHeader(bw, t)
	}

	for i := range t.Messages {
		msg := &t.Messages[i]
		if len(msg.Lines) > 0 {
			for _, line := range msg.Lines {
				_, _ = bw.WriteString(line)
			}
			continue
		}
		// Records have no source lines; render them the way an export would.
		if msg.Timestamp != "" {
			_, _ = fmt.Fprintf(bw, "[%s] ", msg.Timestamp)
		}
		_, _ = fmt.Fprintf(bw, "%s: %s\n", msg.Sender, msg.Body)
	}

	return bw.Flush()
}

func writeHeader(w io.Writer, t *internal.Transcript) {
	_, _ = fmt.Fprintf(w, "# WhatsApp Chat Filtered Output\n")
	_, _ = fmt.Fprintf(w, "# Original file: %s\n", filepath.Base(t.Source))
	_, _ = fmt.Fprintf(w, "# Filtered on: %s\n", t.FilteredAt.Format("2006-01-02 15:04:05"))
	switch {
	case t.Records:
		_, _ = fmt.Fprintf(w, "# Criteria: All records, excluding automated.\n")
	case t.Window.Days <= 0:
		_, _ = fmt.Fprintf(w, "# Criteria: All messages (all time), excluding automated.\n")
	default:
		_, _ = fmt.Fprintf(w, "# Criteria: Messages from %s onwards (%d days), excluding automated.\n",
			t.Window.Cutoff.Format("02/01/2006"), t.Window.Days)
	}
	if len(t.Messages) == 0 {
		_, _ = fmt.Fprintf(w, "# No messages matched the filtering criteria.\n\n")
		return
	}
	_, _ = fmt.Fprintf(w, "# Kept %d messages.\n\n", len(t.Messages))
}

// Extension returns the file extension for this format
func (e *TextExporter) Extension() string {
	return "txt"
}
