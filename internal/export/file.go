package export

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iksnae/chatfilter/internal"
)

// FilteredPath names the output file for input: the input's name with a
// "_filtered_<YYYYMMDD_HHMMSS>" suffix and the given extension, placed
// next to the input.
func FilteredPath(input, ext string, now time.Time) string {
	dir := filepath.Dir(input)
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, name+"_filtered_"+now.Format("20060102_150405")+"."+ext)
}

// ToFile writes t to path with e, creating or truncating the file
func ToFile(e Exporter, t *internal.Transcript, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: e.Extension(), Path: path, Err: err}
	}

	if err := e.Export(t, f); err != nil {
		_ = f.Close()
		return &internal.ExportError{Format: e.Extension(), Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &internal.ExportError{Format: e.Extension(), Path: path, Err: err}
	}
	return nil
}

// ToWriter writes t to w with e, wrapping failures as export errors
func ToWriter(e Exporter, t *internal.Transcript, w io.Writer, name string) error {
	if err := e.Export(t, w); err != nil {
		return &internal.ExportError{Format: e.Extension(), Path: name, Err: err}
	}
	return nil
}
