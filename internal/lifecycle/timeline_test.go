// internal/lifecycle/timeline_test.go
package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTimeline_NilCandidate(t *testing.T) {
	events := ExtractTimeline(nil)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestExtractTimeline_SkipsMissingStages(t *testing.T) {
	c := ParseCandidate(map[string]interface{}{
		"id":               "c1",
		"application_date": "2024-01-01",
		"screening_date":   nil,
		"interview_date":   "2024-01-05",
		"approval_date":    "garbage",
		"onboarding_date":  "2024-02-01",
	})

	events := ExtractTimeline(c)

	require.Len(t, events, 3)
	assert.Equal(t, StageApplied, events[0].Stage.ID)
	assert.Equal(t, StageInterviewScheduled, events[1].Stage.ID)
	assert.Equal(t, StageOnboarded, events[2].Stage.ID)
}

func TestExtractTimeline_KeepsPipelineOrderNotDateOrder(t *testing.T) {
	c := ParseCandidate(map[string]interface{}{
		"id":               "c1",
		"application_date": "2024-02-10",
		"screening_date":   "2024-01-05",
		"interview_date":   "2024-03-01",
	})

	events := ExtractTimeline(c)

	require.Len(t, events, 3)
	assert.Equal(t, StageApplied, events[0].Stage.ID)
	assert.Equal(t, StageScreening, events[1].Stage.ID)
	assert.Equal(t, StageInterviewScheduled, events[2].Stage.ID)
	assert.True(t, events[1].Date.Before(events[0].Date))
}

func TestExtractTimeline_IgnoresUnknownDateFields(t *testing.T) {
	events := ExtractTimeline(ParseCandidate(createEarlyStageRecord()))

	require.Len(t, events, 2)
	assert.Equal(t, StageApplied, events[0].Stage.ID)
	assert.Equal(t, StageScreening, events[1].Stage.ID)
}
