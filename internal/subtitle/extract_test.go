package subtitle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonicalDoc = `WEBVTT

00:00:01.000 --> 00:00:03.500
Hello world

00:00:04.000 --> 00:00:06.000
Second line
`

const legacyDoc = `1
00:00:01,000 --> 00:00:03,500
Xin chào

2
00:00:04,000 --> 00:00:06,000
Dòng hai
`

func TestExtract_Canonical(t *testing.T) {
	cues := Extract(canonicalDoc)

	require.Len(t, cues, 2)
	assert.Equal(t, Cue{Index: 0, Start: 1.0, End: 3.5, Text: "Hello world"}, cues[0])
	assert.Equal(t, Cue{Index: 1, Start: 4.0, End: 6.0, Text: "Second line"}, cues[1])
}

func TestExtract_Legacy(t *testing.T) {
	cues := Extract(legacyDoc)

	require.Len(t, cues, 2)
	assert.Equal(t, 0, cues[0].Index)
	assert.InDelta(t, 1.0, cues[0].Start, 0.001)
	assert.InDelta(t, 3.5, cues[0].End, 0.001)
	assert.Equal(t, "Xin chào", cues[0].Text)
	assert.Equal(t, "Dòng hai", cues[1].Text)
}

func TestExtract_LegacyMatchesCanonical(t *testing.T) {
	legacy := "1\n00:00:01,000 --> 00:00:03,500\nHello world\n\n2\n00:00:04,000 --> 00:00:06,000\nSecond line\n"

	fromLegacy := Extract(legacy)
	fromCanonical := Extract(canonicalDoc)

	require.Equal(t, len(fromCanonical), len(fromLegacy))
	for i := range fromCanonical {
		assert.Equal(t, fromCanonical[i].Index, fromLegacy[i].Index)
		assert.Equal(t, fromCanonical[i].Text, fromLegacy[i].Text)
		assert.InDelta(t, fromCanonical[i].Start, fromLegacy[i].Start, 0.001)
		assert.InDelta(t, fromCanonical[i].End, fromLegacy[i].End, 0.001)
	}
}

func TestExtract_StripsMarkupAndJoinsLines(t *testing.T) {
	doc := `WEBVTT

00:00:01.000 --> 00:00:03.000
<i>Hello</i>
<b>world</b>
`
	cues := Extract(doc)

	require.Len(t, cues, 1)
	assert.Equal(t, "Hello world", cues[0].Text)
}

func TestExtract_DiscardsInterleavedNumericLines(t *testing.T) {
	// Numbered blocks inside a canonical document: the bare indices must
	// not leak into cue text.
	doc := `WEBVTT

1
00:00:01.000 --> 00:00:02.000
First

2
00:00:03.000 --> 00:00:04.000
Second
`
	cues := Extract(doc)

	require.Len(t, cues, 2)
	assert.Equal(t, "First", cues[0].Text)
	assert.Equal(t, "Second", cues[1].Text)
}

func TestExtract_DropsEmptyBlocks(t *testing.T) {
	doc := `WEBVTT

00:00:01.000 --> 00:00:02.000

00:00:03.000 --> 00:00:04.000
Kept
`
	cues := Extract(doc)

	require.Len(t, cues, 1)
	assert.Equal(t, 0, cues[0].Index)
	assert.Equal(t, "Kept", cues[0].Text)
}

func TestExtract_MalformedTimestampDegradesToZero(t *testing.T) {
	doc := `WEBVTT

bogus --> 00:00:02.000
Soft failure
`
	cues := Extract(doc)

	require.Len(t, cues, 1)
	assert.Zero(t, cues[0].Start)
	assert.InDelta(t, 2.0, cues[0].End, 0.001)
	assert.Equal(t, "Soft failure", cues[0].Text)
}

func TestExtract_SkipsHeaderMetadata(t *testing.T) {
	doc := `WEBVTT
Kind: captions
Language: en

00:00:01.000 --> 00:00:02.000
Body
`
	cues := Extract(doc)

	require.Len(t, cues, 1)
	assert.Equal(t, "Body", cues[0].Text)
}

func TestExtract_EmptyAndGarbageInput(t *testing.T) {
	assert.Empty(t, Extract(""))
	assert.Empty(t, Extract("no cues in here\njust prose\n"))
}

func TestExtract_IndicesSequentialAndOrdered(t *testing.T) {
	cues := Extract(canonicalDoc)

	for i, cue := range cues {
		assert.Equal(t, i, cue.Index)
		assert.Less(t, cue.Start, cue.End)
	}
}

func TestIsLegacy(t *testing.T) {
	assert.True(t, IsLegacy(legacyDoc))
	assert.False(t, IsLegacy(canonicalDoc))
	assert.False(t, IsLegacy(""))
}

func TestExtract_CRLFLegacyInput(t *testing.T) {
	doc := "1\r\n00:00:01,000 --> 00:00:02,000\r\nWindows line endings\r\n"
	cues := Extract(doc)

	require.Len(t, cues, 1)
	assert.Equal(t, "Windows line endings", cues[0].Text)
}
