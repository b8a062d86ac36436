package icron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTriggerInfo(t *testing.T) {
	ref := time.Date(2026, 3, 15, 12, 34, 0, 0, time.UTC)

	info, err := GetTriggerInfo("*/10 * * * *", ref)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 15, 12, 40, 0, 0, time.UTC), info.Next)
	assert.Equal(t, time.Date(2026, 3, 15, 12, 30, 0, 0, time.UTC), info.Last)
	assert.Equal(t, 6*time.Minute, info.TimeUntilNext)
	assert.Equal(t, 4*time.Minute, info.TimeSinceLast)
}

func TestGetTriggerInfo_InvalidExpression(t *testing.T) {
	_, err := GetTriggerInfo("not a cron", time.Now())
	assert.Error(t, err)
}
