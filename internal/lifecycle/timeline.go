// internal/lifecycle/timeline.go
package lifecycle

import "time"

// StageEvent is a stage the candidate has a timestamp for.
type StageEvent struct {
	Stage StageDefinition
	Date  time.Time
}

// ExtractTimeline returns the stages with a date, in pipeline order. Dates are not
// sorted and need not be increasing.
func ExtractTimeline(c *Candidate) []StageEvent {
	events := make([]StageEvent, 0, StageCount)
	if c == nil {
		return events
	}
	for _, def := range stageRegistry {
		if t, ok := c.StageDates[def.ID]; ok {
			events = append(events, StageEvent{Stage: def, Date: t})
		}
	}
	return events
}
