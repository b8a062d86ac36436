package subtitle

import (
	"strconv"
	"strings"
)

// ParseTimestamp converts a single caption timestamp token into seconds.
// Accepted layouts: HH:MM:SS.mmm, HH:MM:SS,mmm and MM:SS.mmm. Anything
// else yields 0; captions are offsets from media start, so a zero is a
// harmless degenerate value and never an error.
func ParseTimestamp(ts string) float64 {
	ts = strings.TrimSpace(strings.Replace(ts, ",", ".", 1))
	parts := strings.Split(ts, ":")

	switch len(parts) {
	case 3:
		h, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0
		}
		m, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0
		}
		s, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return 0
		}
		return float64(h)*3600 + float64(m)*60 + s
	case 2:
		m, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0
		}
		s, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0
		}
		return float64(m)*60 + s
	default:
		return 0
	}
}
