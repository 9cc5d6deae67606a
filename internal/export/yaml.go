package export

import (
	"io"
	"time"

	"github.com/iksnae/chatfilter/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports the retained messages with run metadata in YAML format
type YAMLExporter struct{}

type yamlDocument struct {
	Source     string            `yaml:"source"`
	FilteredAt string            `yaml:"filtered_at"`
	Window     string            `yaml:"window"`
	Stats      internal.Stats    `yaml:"stats"`
	Messages   []internal.Record `yaml:"messages"`
}

// Export exports a transcript to YAML format
func (e *YAMLExporter) Export(t *internal.Transcript, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	return enc.Encode(yamlDocument{
		Source:     t.Source,
		FilteredAt: t.FilteredAt.Format(time.RFC3339),
		Window:     t.Window.Describe(),
		Stats:      t.Stats,
		Messages:   records(t),
	})
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
