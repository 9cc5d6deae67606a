package internal

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultDateLayouts is the order in which date tokens are tried. The first
// layout that parses wins, so 03/04/2025 is read day-first.
var DefaultDateLayouts = []string{
	"2/1/2006", // DD/MM/YYYY
	"1/2/2006", // MM/DD/YYYY
	"2006/1/2", // YYYY/MM/DD
	"2.1.2006", // DD.MM.YYYY
	"2-1-2006", // DD-MM-YYYY
	"2/1/06",   // DD/MM/YY
	"1/2/06",   // MM/DD/YY
}

// messageStartRegex matches "[<date>, <time>] <rest>". Exports put either
// an ordinary or a narrow no-break space before AM/PM.
var messageStartRegex = regexp.MustCompile(
	`^\[(\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4}),[\s\x{00a0}\x{202f}]*` +
		`(\d{1,2}:\d{2}(?::\d{2})?(?:[\s\x{00a0}\x{202f}]*[AaPp]\.?[Mm]\.?)?)` +
		`[\s\x{00a0}\x{202f}]*\](.*)$`)

// senderRegex splits "<sender>: <body>". The colon must be followed by
// whitespace or end of line so clock times in unattributed bodies survive.
var senderRegex = regexp.MustCompile(`^([^:]+?):(?:[\s\x{00a0}\x{202f}]+|$)(.*)$`)

// Parser recognises message-start lines and parses their date tokens
type Parser struct {
	layouts []string
}

// NewParser creates a Parser trying layouts in order. An empty list
// selects DefaultDateLayouts.
func NewParser(layouts []string) *Parser {
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	return &Parser{layouts: append([]string(nil), layouts...)}
}

// Layouts returns the date layouts in the order they are tried
func (p *Parser) Layouts() []string {
	return append([]string(nil), p.layouts...)
}

// ParseLine classifies one physical line. raw may carry its line ending.
func (p *Parser) ParseLine(raw string) ChatLine {
	line := strings.TrimRight(raw, "\r\n")
	m := messageStartRegex.FindStringSubmatch(line)
	if m == nil {
		return ChatLine{Raw: raw}
	}

	match := &LineMatch{
		DateText: m[1],
		Time:     strings.TrimSpace(m[2]),
	}

	rest := strings.TrimLeft(m[3], " \t\u00a0\u202f\u200e\u200f\u061c")
	if s := senderRegex.FindStringSubmatch(rest); s != nil && CleanSender(s[1]) != "" {
		match.Sender = CleanSender(s[1])
		match.Body = strings.TrimSpace(s[2])
	} else {
		match.System = true
		match.Body = strings.TrimSpace(rest)
	}

	return ChatLine{Raw: raw, Parsed: match}
}

// ParseDate parses a bracketed date token using the first layout that
// accepts it. The result is midnight UTC on that calendar day.
func (p *Parser) ParseDate(text string) (time.Time, error) {
	for _, layout := range p.layouts {
		if t, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w for %q (tried %s)", ErrNoDateLayout, text, strings.Join(p.layouts, ", "))
}
