package internal

import (
	"strings"

	"golang.org/x/text/cases"
)

// directionalMarks are invisible formatting characters that exports
// scatter around sender names and system notices.
var directionalMarks = strings.NewReplacer(
	"\u200e", "", // LEFT-TO-RIGHT MARK
	"\u200f", "", // RIGHT-TO-LEFT MARK
	"\u061c", "", // ARABIC LETTER MARK
	"\u202a", "", "\u202b", "", "\u202c", "", "\u202d", "", "\u202e", "",
	"\u2066", "", "\u2067", "", "\u2068", "", "\u2069", "",
	"\ufeff", "",
)

var apostrophes = strings.NewReplacer("\u2019", "'", "\u2018", "'", "\u02bc", "'")

// StripMarks removes directional marks anywhere in s
func StripMarks(s string) string {
	return directionalMarks.Replace(s)
}

// CleanSender strips directional marks and surrounding whitespace from a
// display name. Internal spacing is preserved.
func CleanSender(s string) string {
	return strings.TrimSpace(StripMarks(s))
}

// NormalizeText prepares text for phrase comparison: directional marks
// removed, typographic apostrophes folded, whitespace runs collapsed to a
// single space and the result case-folded.
func NormalizeText(s string) string {
	s = apostrophes.Replace(StripMarks(s))
	s = strings.Join(strings.Fields(s), " ")
	return cases.Fold().String(s)
}
