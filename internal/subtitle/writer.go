package subtitle

import (
	"fmt"
	"strings"
)

// FormatTimestamp renders seconds as a canonical HH:MM:SS.mmm token.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMs := int(seconds*1000 + 0.5)
	h := totalMs / 3600000
	totalMs %= 3600000
	m := totalMs / 60000
	totalMs %= 60000
	s := totalMs / 1000
	ms := totalMs % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// WriteCanonical serializes a cue sequence back into a canonical-format
// document: header line, then numbered blocks of timing line plus text.
func WriteCanonical(cues []Cue) string {
	var sb strings.Builder
	sb.WriteString(header + "\n\n")

	for i, cue := range cues {
		fmt.Fprintf(&sb, "%d\n", i+1)
		fmt.Fprintf(&sb, "%s --> %s\n", FormatTimestamp(cue.Start), FormatTimestamp(cue.End))
		sb.WriteString(cue.Text)
		sb.WriteString("\n\n")
	}

	return sb.String()
}
