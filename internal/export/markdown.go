package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/iksnae/chatfilter/internal"
)

// MarkdownExporter exports a transcript in Markdown format
type MarkdownExporter struct{}

// Export exports a transcript to Markdown format
func (e *MarkdownExporter) Export(t *internal.Transcript, w io.Writer) error {
	// Header
	_, _ = fmt.Fprintf(w, "# Chat %s\n\n", filepath.Base(t.Source))
	_, _ = fmt.Fprintf(w, "**Source:** %s  \n", t.Source)
	_, _ = fmt.Fprintf(w, "**Filtered on:** %s  \n", t.FilteredAt.Format("2006-01-02 15:04:05"))
	if !t.Records {
		_, _ = fmt.Fprintf(w, "**Window:** %s  \n", t.Window.Describe())
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(t.Messages))

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Messages\n\n")

	if len(t.Messages) == 0 {
		_, err := fmt.Fprintf(w, "_No messages matched the filtering criteria._\n")
		return err
	}

	// Messages
	for i := range t.Messages {
		msg := &t.Messages[i]
		timestamp := ""
		if msg.Timestamp != "" {
			timestamp = fmt.Sprintf(" (%s)", msg.Timestamp)
		}

		content := escapeMarkdown(msg.Text())

		_, _ = fmt.Fprintf(w, "**%s:**%s\n\n%s\n\n", escapeMarkdown(msg.Sender), timestamp, content)

		// Add horizontal rule after each message (except the last one)
		if i < len(t.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// escapeMarkdown escapes markdown emphasis outside code blocks
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
