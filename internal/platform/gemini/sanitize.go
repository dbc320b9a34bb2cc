package gemini

import (
	"regexp"
	"strings"
)

// The model is asked for plain prose, but still tends to emit markdown.
// These rewrites strip what slips through so the chat widget can render
// the reply as plain text.
var (
	boldMarkers     = regexp.MustCompile(`\*\*`)
	italicMarkers   = regexp.MustCompile(`\*`)
	headerMarkers   = regexp.MustCompile(`#{1,6}\s`)
	listMarkers     = regexp.MustCompile(`(?m)^\s*[-*]\s`)
	codeFences      = regexp.MustCompile("```[\\s\\S]*?```")
	excessBlankRuns = regexp.MustCompile(`\n{3,}`)
)

// Sanitize converts a model reply to plain text: emphasis markers and
// headers are stripped, fenced code blocks are dropped, list markers
// become a bullet glyph, and runs of three or more newlines collapse to
// a single blank line.
func Sanitize(text string) string {
	text = boldMarkers.ReplaceAllString(text, "")
	text = italicMarkers.ReplaceAllString(text, "")
	text = headerMarkers.ReplaceAllString(text, "")
	text = listMarkers.ReplaceAllString(text, "• ")
	text = codeFences.ReplaceAllString(text, "")
	text = excessBlankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
