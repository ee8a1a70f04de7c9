// internal/lifecycle/stages.go

// Package lifecycle derives a candidate's position in the hiring pipeline from the
// flat candidate record: the stage timeline, per-stage durations, efficiency buckets,
// render states and recruiter insights. Everything here is pure and recomputed on
// every call.
package lifecycle

// StageID identifies a pipeline stage.
type StageID string

const (
	StageApplied            StageID = "applied"
	StageScreening          StageID = "screening"
	StageInterviewScheduled StageID = "interview_scheduled"
	StageInterviewed        StageID = "interviewed"
	StageApproved           StageID = "approved"
	StageOfferReleased      StageID = "offer_released"
	StageOnboarded          StageID = "onboarded"

	// StageRejected is terminal and sits outside the ordered pipeline.
	StageRejected StageID = "rejected"
)

// StageCount is the number of ordered pipeline stages.
const StageCount = 7

// StageDefinition describes one pipeline stage. EstimatedDuration is a display label only.
type StageDefinition struct {
	ID                StageID `json:"id"`
	Name              string  `json:"name"`
	Position          int     `json:"position"`
	DateField         string  `json:"dateField"`
	EstimatedDuration string  `json:"estimatedDuration"`
}

var stageRegistry = [StageCount]StageDefinition{
	{ID: StageApplied, Name: "Applied", Position: 0, DateField: "application_date", EstimatedDuration: "1 day"},
	{ID: StageScreening, Name: "Screening", Position: 1, DateField: "screening_date", EstimatedDuration: "2-3 days"},
	{ID: StageInterviewScheduled, Name: "Interview Scheduled", Position: 2, DateField: "interview_date", EstimatedDuration: "3-5 days"},
	{ID: StageInterviewed, Name: "Interviewed", Position: 3, DateField: "interviewed_date", EstimatedDuration: "1-2 days"},
	{ID: StageApproved, Name: "Approved", Position: 4, DateField: "approval_date", EstimatedDuration: "2-3 days"},
	{ID: StageOfferReleased, Name: "Offer Released", Position: 5, DateField: "offer_released_date", EstimatedDuration: "3-7 days"},
	{ID: StageOnboarded, Name: "Onboarded", Position: 6, DateField: "onboarding_date", EstimatedDuration: "1-2 weeks"},
}

var rejectedStage = StageDefinition{
	ID:                StageRejected,
	Name:              "Rejected",
	Position:          -1,
	DateField:         "rejection_date",
	EstimatedDuration: "-",
}

// Stages returns the ordered pipeline. The slice is a copy; callers may modify it.
func Stages() []StageDefinition {
	out := make([]StageDefinition, StageCount)
	copy(out, stageRegistry[:])
	return out
}

// StageByID looks up an ordered stage. The rejected stage is not returned here.
func StageByID(id StageID) (StageDefinition, bool) {
	if i := StageIndex(id); i >= 0 {
		return stageRegistry[i], true
	}
	return StageDefinition{}, false
}

// StageIndex returns the ordinal of id, or -1.
func StageIndex(id StageID) int {
	for i := range stageRegistry {
		if stageRegistry[i].ID == id {
			return i
		}
	}
	return -1
}

func RejectedStage() StageDefinition {
	return rejectedStage
}
