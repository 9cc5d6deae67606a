package internal

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"time"
)

// Filter runs the single-pass scan: parse each line, check the date
// window, classify, and keep what survives.
type Filter struct {
	parser       *Parser
	classifier   *Classifier
	window       Window
	systemSender string
	now          func() time.Time
}

// NewFilter builds a Filter from cfg for the given window
func NewFilter(cfg *Config, window Window) (*Filter, error) {
	classifier, err := cfg.NewClassifier()
	if err != nil {
		return nil, err
	}
	return &Filter{
		parser:       cfg.NewParser(),
		classifier:   classifier,
		window:       window,
		systemSender: cfg.Sentinel(),
		now:          time.Now,
	}, nil
}

// FilterFile opens path and filters it as a text transcript
func (f *Filter) FilterFile(path string) (*Transcript, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Op: "open", Err: err}
	}
	defer file.Close()
	return f.FilterTranscript(file, path)
}

// FilterTranscript scans a bracketed-line transcript. Line endings are
// preserved so retained blocks can be written back verbatim. A line whose
// date cannot be parsed discards its message and the scan continues.
func (f *Filter) FilterTranscript(r io.Reader, source string) (*Transcript, error) {
	t := &Transcript{
		Source:     source,
		Window:     f.window,
		FilteredAt: f.now(),
	}

	var warn lineWarner
	br := bufio.NewReader(r)
	open := -1 // index of the retained message accepting continuation lines
	seenStart := false
	lineNo := 0

	for {
		raw, err := br.ReadString('\n')
		if raw != "" {
			lineNo++
			t.Stats.LinesProcessed++

			line := f.parser.ParseLine(raw)
			switch {
			case !line.IsMessageStart():
				if open >= 0 {
					t.Messages[open].Lines = append(t.Messages[open].Lines, raw)
				} else if !seenStart && strings.TrimSpace(raw) != "" {
					t.Stats.OrphanLines++
					warn.warn("line %d: text before the first message, skipped", lineNo)
				}
			default:
				seenStart = true
				open = -1
				if f.accept(t, line.Parsed, raw, lineNo, &warn) {
					open = len(t.Messages) - 1
				}
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &InputError{Path: source, Op: "read", Err: err}
		}
	}

	warn.finish()
	LogDebug("%s: %d lines, %d messages kept", source, t.Stats.LinesProcessed, t.Stats.Kept)
	return t, nil
}

// accept applies the date window and the classifier to one message start
// and appends it to t when it is retained.
func (f *Filter) accept(t *Transcript, m *LineMatch, raw string, lineNo int, warn *lineWarner) bool {
	t.Stats.MessageStarts++

	date, err := f.parser.ParseDate(m.DateText)
	if err != nil {
		t.Stats.MalformedDates++
		warn.warn("%v", &MalformedDateError{Line: lineNo, Date: m.DateText, Err: err})
		return false
	}
	if !f.window.Contains(date) {
		t.Stats.TooOld++
		return false
	}

	sender := m.Sender
	if m.System {
		sender = f.systemSender
	}
	if v := f.classifier.Classify(sender, m.Body); v.Automated {
		t.Stats.Automated++
		LogDebug("line %d: automated notice (%s)", lineNo, v.Rule.Name)
		return false
	}

	t.Messages = append(t.Messages, Message{
		Sender:    sender,
		Body:      m.Body,
		Timestamp: m.Timestamp(),
		Date:      date,
		Lines:     []string{raw},
	})
	t.Stats.Kept++
	return true
}

// FilterRecords classifies scraped records. Records carry no parseable
// date, so the window does not apply. A missing sender becomes the system
// sentinel.
func (f *Filter) FilterRecords(records []Record, source string) *Transcript {
	t := &Transcript{
		Source:     source,
		Window:     AllTime(),
		FilteredAt: f.now(),
		Records:    true,
	}

	for i, r := range records {
		t.Stats.LinesProcessed++
		t.Stats.MessageStarts++

		sender := CleanSender(r.Sender)
		if sender == "" {
			sender = f.systemSender
		}
		if v := f.classifier.Classify(sender, r.Body); v.Automated {
			t.Stats.Automated++
			LogDebug("record %d: automated notice (%s)", i, v.Rule.Name)
			continue
		}

		t.Messages = append(t.Messages, Message{
			Sender:    sender,
			Body:      r.Body,
			Timestamp: r.Timestamp,
		})
		t.Stats.Kept++
	}
	return t
}
