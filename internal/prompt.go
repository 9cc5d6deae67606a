package internal

import (
	"strings"
	"text/template"
)

// DefaultPromptTemplate asks a language model to summarize a filtered
// transcript. Placeholders: {{.FileName}} and {{.Window}}.
const DefaultPromptTemplate = `Analyze the following text, which is a .txt export from our WhatsApp announcement chat (specifically, the filtered content found in the file '{{.FileName}}'). Your task is to:

Identify the timeframe: Determine the date range covering {{.Window}} based on the timestamps/dates within this chat log.

Filter by Time: Focus exclusively on messages sent within {{.Window}}. Pay close attention to the dates associated with each message.

Filter by Content Relevance: Extract only the substantive announcements and key information shared during that period. This includes:

Details of upcoming events (what, when, where, cost, sign-up info).

Information about trips (destination, dates, deadlines, links).

All mentioned deadlines (payments, forms, applications).

Important club updates (committee news, kit info, policy changes).

Calls to action (voting, surveys, requests for volunteers).

Important links shared.

Exclude Irrelevant Content: Strictly ignore messages outside {{.Window}}. Also, ignore conversational filler, simple replies ("Ok", "Thanks", emojis), basic questions that don't contain new info, off-topic chat, and standard system messages (like "[user] joined/left" or message timestamps/sender names if they aren't part of the core announcement message itself).

Summarize: Provide a fun tl;dr (too long; didn't read) style summary of the relevant information extracted from {{.Window}}. Start with a short, engaging introductory sentence or two. Then, structure the main points clearly using bullet points, potentially grouped by topic (e.g., Events, Deadlines, Updates) for easy reading. Keep the tone light and informal while ensuring all key info is captured.`

// PromptPresets are the retention windows offered by name, in days.
// Zero means all time.
var PromptPresets = []struct {
	Label string
	Days  int
}{
	{"Last 7 Days", 7},
	{"Last 14 Days", 14},
	{"Last Month (30 days)", 30},
	{"Last 3 Months (90 days)", 90},
	{"All Time (Keep All)", 0},
}

// PromptData fills the prompt template
type PromptData struct {
	FileName string
	Window   string
	Days     int
}

func parsePromptTemplate(text string) (*template.Template, error) {
	return template.New("prompt").Option("missingkey=error").Parse(text)
}

// RenderPrompt fills tmpl for the given output file name and window
func RenderPrompt(tmpl, fileName string, w Window) (string, error) {
	t, err := parsePromptTemplate(tmpl)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	data := PromptData{FileName: fileName, Window: w.Describe(), Days: w.Days}
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
