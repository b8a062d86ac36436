package player

import (
	"fmt"
	"math"

	"dualsub/internal/subtitle"
)

// pairingTolerance is how far apart two cues' start times may be, in
// seconds, and still be shown as a bilingual pair.
const pairingTolerance = 2.0

// Entry is one transcript row: a primary-track cue, optionally annotated
// with the nearest secondary-track cue.
type Entry struct {
	Index      int     `json:"index"`
	Start      float64 `json:"start"`
	TimeLabel  string  `json:"time_label"`
	Text       string  `json:"text"`
	PairedText string  `json:"paired_text,omitempty"`
	Active     bool    `json:"active"`
}

// BuildTranscript renders the primary track's cue list annotated with
// paired secondary cues. Pairing is best effort: the first secondary cue
// starting within the tolerance wins, with no global alignment. active is
// the primary track's active cue; entries match it by index identity.
func BuildTranscript(primary, secondary []subtitle.Cue, active *subtitle.Cue) []Entry {
	entries := make([]Entry, 0, len(primary))
	for _, cue := range primary {
		entry := Entry{
			Index:     cue.Index,
			Start:     cue.Start,
			TimeLabel: FormatClock(cue.Start),
			Text:      cue.Text,
			Active:    active != nil && active.Index == cue.Index,
		}
		if paired, ok := pairCue(cue, secondary); ok {
			entry.PairedText = paired.Text
		}
		entries = append(entries, entry)
	}
	return entries
}

func pairCue(cue subtitle.Cue, secondary []subtitle.Cue) (subtitle.Cue, bool) {
	for _, sc := range secondary {
		if math.Abs(sc.Start-cue.Start) < pairingTolerance {
			return sc, true
		}
	}
	return subtitle.Cue{}, false
}

// FormatClock renders seconds as m:ss, or h:mm:ss past the hour mark.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
