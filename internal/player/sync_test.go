package player

import (
	"testing"

	"dualsub/internal/subtitle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleCues = []subtitle.Cue{
	{Index: 0, Start: 1.0, End: 3.5, Text: "Hello world"},
	{Index: 1, Start: 4.0, End: 6.0, Text: "Second line"},
}

func TestActiveCue_Lookup(t *testing.T) {
	cue := ActiveCue(2.0, sampleCues)
	require.NotNil(t, cue)
	assert.Equal(t, 0, cue.Index)

	assert.Nil(t, ActiveCue(3.6, sampleCues))

	cue = ActiveCue(4.0, sampleCues)
	require.NotNil(t, cue)
	assert.Equal(t, 1, cue.Index, "interval boundaries are inclusive")

	cue = ActiveCue(3.5, sampleCues)
	require.NotNil(t, cue)
	assert.Equal(t, 0, cue.Index)
}

func TestActiveCue_FirstOfOverlappingWins(t *testing.T) {
	overlapping := []subtitle.Cue{
		{Index: 0, Start: 1.0, End: 5.0, Text: "first"},
		{Index: 1, Start: 2.0, End: 6.0, Text: "second"},
	}

	cue := ActiveCue(3.0, overlapping)
	require.NotNil(t, cue)
	assert.Equal(t, "first", cue.Text)
}

func TestActiveCue_EmptySequence(t *testing.T) {
	assert.Nil(t, ActiveCue(1.0, nil))
}
