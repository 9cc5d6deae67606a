package internal

import (
	"errors"
	"fmt"
)

// ErrNoDateLayout is wrapped by MalformedDateError when no layout matches.
var ErrNoDateLayout = errors.New("no date layout matched")

// InputError represents errors opening or reading an input source
type InputError struct {
	Path string
	Op   string // "open", "read", "query"
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// MalformedDateError is reported for a message-start line whose date token
// fails every configured layout. It never aborts a scan.
type MalformedDateError struct {
	Line int
	Date string
	Err  error
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("malformed date on line %d: %q: %v", e.Line, e.Date, e.Err)
}

func (e *MalformedDateError) Unwrap() error {
	return e.Err
}

// RecordParseError represents a record list that is not valid JSON
type RecordParseError struct {
	Source string
	Err    error
}

func (e *RecordParseError) Error() string {
	return fmt.Sprintf("record parse error [%s]: %v", e.Source, e.Err)
}

func (e *RecordParseError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid configuration or rule file
type ConfigError struct {
	Path  string
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	msg := "config error"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Field != "" {
		msg += " [" + e.Field + "]"
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
