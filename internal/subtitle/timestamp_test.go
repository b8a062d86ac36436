package subtitle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "full with dot", input: "00:00:01.000", want: 1.0},
		{name: "full with comma", input: "00:00:03,500", want: 3.5},
		{name: "hours", input: "01:02:03.250", want: 3723.25},
		{name: "no hour component", input: "02:05.500", want: 125.5},
		{name: "leading whitespace", input: "  00:00:04.000 ", want: 4.0},
		{name: "single field", input: "42", want: 0},
		{name: "four fields", input: "00:00:00:01.000", want: 0},
		{name: "garbage hours", input: "xx:00:01.000", want: 0},
		{name: "garbage seconds", input: "00:00:zz.000", want: 0},
		{name: "empty", input: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseTimestamp(tt.input), 1e-9)
		})
	}
}
