package subtitle

// Cue is a single timed caption entry. Cues are immutable once produced
// by extraction; Index is assigned sequentially in extraction order and
// is independent of any numbering found in the source document.
type Cue struct {
	Index int     `json:"index"`
	Start float64 `json:"start"` // seconds from media start
	End   float64 `json:"end"`   // seconds from media start
	Text  string  `json:"text"`
}

// Duration returns the cue display time in seconds. Malformed documents
// can yield zero or negative durations; callers treat those as degenerate
// cues rather than errors.
func (c Cue) Duration() float64 {
	return c.End - c.Start
}

// Contains reports whether t falls inside the cue interval, boundaries
// inclusive.
func (c Cue) Contains(t float64) bool {
	return t >= c.Start && t <= c.End
}
