package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/chatfilter/internal"
)

// JSONExporter writes the retained messages as a JSON array of
// {sender, body, timestamp} objects, indented four spaces.
type JSONExporter struct{}

// Export exports a transcript to JSON format
func (e *JSONExporter) Export(t *internal.Transcript, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)

	return enc.Encode(records(t))
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
