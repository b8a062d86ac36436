package subtitle

import (
	"regexp"
	"strings"
)

const header = "WEBVTT"

var (
	legacyLeadRe = regexp.MustCompile(`^\d+\s*\n`)
	legacyTimeRe = regexp.MustCompile(`(\d{2}:\d{2}:\d{2}),(\d{3})`)
	markupTagRe  = regexp.MustCompile(`<[^>]+>`)
	numericRe    = regexp.MustCompile(`^\d+$`)
)

// IsLegacy reports whether content looks like the legacy numbered format
// (SRT): no canonical header and a bare numeric index on the first line.
func IsLegacy(content string) bool {
	trimmed := strings.TrimSpace(content)
	return !strings.HasPrefix(trimmed, header) && legacyLeadRe.MatchString(trimmed)
}

// NormalizeLegacy rewrites a legacy numbered document into canonical
// shape: comma millisecond separators become dots and the canonical
// header is prepended. Canonical input is returned unchanged.
func NormalizeLegacy(content string) string {
	if !IsLegacy(content) {
		return content
	}
	converted := strings.ReplaceAll(content, "\r\n", "\n")
	converted = legacyTimeRe.ReplaceAllString(converted, "$1.$2")
	return header + "\n\n" + converted
}

// Extract tokenizes a caption document into an ordered cue sequence.
// The document may be canonical or legacy; legacy input is normalized
// first. Leading header and metadata lines are skipped, inline markup is
// stripped, standalone numeric index lines are discarded, and blocks with
// no remaining text are dropped. Malformed timestamps degrade to zero
// offsets rather than failing the whole document.
func Extract(content string) []Cue {
	normalized := NormalizeLegacy(content)
	lines := strings.Split(strings.TrimSpace(normalized), "\n")

	var cues []Cue
	i := 0

	// Skip everything before the first cue timing line.
	for i < len(lines) && !strings.Contains(lines[i], "-->") {
		i++
	}

	index := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if !strings.Contains(line, "-->") {
			i++
			continue
		}

		start, end := parseTimingLine(line)

		var textLines []string
		i++
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" && !strings.Contains(lines[i], "-->") {
			text := strings.TrimSpace(lines[i])
			if !numericRe.MatchString(text) {
				textLines = append(textLines, markupTagRe.ReplaceAllString(text, ""))
			}
			i++
		}

		if len(textLines) > 0 {
			cues = append(cues, Cue{
				Index: index,
				Start: start,
				End:   end,
				Text:  strings.Join(textLines, " "),
			})
			index++
		}
	}

	return cues
}

func parseTimingLine(line string) (start, end float64) {
	parts := strings.SplitN(line, "-->", 2)
	start = ParseTimestamp(parts[0])
	if len(parts) == 2 {
		end = ParseTimestamp(parts[1])
	}
	return start, end
}
