package export

import (
	"fmt"
	"io"

	"github.com/iksnae/chatfilter/internal"
)

// Exporter defines the interface for all output formats
type Exporter interface {
	Export(t *internal.Transcript, w io.Writer) error
	Extension() string
}

// Formats lists the accepted format names
var Formats = []string{"text", "json", "jsonl", "yaml", "md"}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "text", "txt":
		return &TextExporter{}, nil
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: text, json, jsonl, yaml, md)", format)
	}
}

// records converts retained messages to the record shape, joining
// continuation lines into the body.
func records(t *internal.Transcript) []internal.Record {
	out := make([]internal.Record, 0, len(t.Messages))
	for i := range t.Messages {
		m := &t.Messages[i]
		out = append(out, internal.Record{
			Sender:    m.Sender,
			Body:      m.Text(),
			Timestamp: m.Timestamp,
		})
	}
	return out
}
