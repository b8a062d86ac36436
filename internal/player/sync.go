package player

import "dualsub/internal/subtitle"

// ActiveCue returns the first cue in sequence order whose interval
// contains t, boundaries inclusive, or nil when none does. Each call is
// a fresh linear scan over the sequence.
func ActiveCue(t float64, cues []subtitle.Cue) *subtitle.Cue {
	for i := range cues {
		if cues[i].Contains(t) {
			return &cues[i]
		}
	}
	return nil
}

// Overlay is the caption overlay state: Track2 renders above Track1 when
// both are active, each independently derived from its own cue sequence.
type Overlay struct {
	Track1 *subtitle.Cue `json:"track1,omitempty"`
	Track2 *subtitle.Cue `json:"track2,omitempty"`
}
