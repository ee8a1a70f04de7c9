// internal/lifecycle/lifecycle_helpers_test.go
package lifecycle

import "time"

// ==========================
// Test Helper Functions
// ==========================

var fixedNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func daysAgo(n int) string {
	return fixedNow.AddDate(0, 0, -n).Format(time.RFC3339)
}

// createFullPipelineRecord returns a record with every stage 5 days apart starting at start.
func createFullPipelineRecord(start time.Time) map[string]interface{} {
	raw := map[string]interface{}{
		"id":     "cand-full",
		"status": "onboarded",
	}
	for i, def := range Stages() {
		raw[def.DateField] = start.AddDate(0, 0, 5*i).Format("2006-01-02")
	}
	return raw
}

func createEarlyStageRecord() map[string]interface{} {
	return map[string]interface{}{
		"id":                       "cand-early",
		"status":                   "screening",
		"application_date":         "2024-03-01",
		"screening_date":           "2024-03-03",
		"interview_scheduled_date": "2024-03-06",
	}
}
