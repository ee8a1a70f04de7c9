// internal/lifecycle/snapshot.go
package lifecycle

import "time"

// Rejection carries the terminal branch details.
type Rejection struct {
	Date   *time.Time `json:"date,omitempty"`
	Reason string     `json:"reason,omitempty"`
}

// LifecycleSnapshot is derived from a candidate record and a point in time. It is
// never cached; recompute it whenever the record or the clock moves.
type LifecycleSnapshot struct {
	CandidateID       string        `json:"candidateId"`
	Status            string        `json:"status"`
	Stages            []StageMetric `json:"stages"`
	StageStates       []StageStatus `json:"stageStates"`
	TotalDays         int           `json:"totalDays"`
	CompletionRate    float64       `json:"completionRate"`
	CurrentStage      StageID       `json:"currentStage,omitempty"`
	CurrentStageName  string        `json:"currentStageName"`
	OverallEfficiency Efficiency    `json:"overallEfficiency"`
	AverageStageTime  int           `json:"averageStageTime"`
	FastestStage      *StageMetric  `json:"fastestStage,omitempty"`
	SlowestStage      *StageMetric  `json:"slowestStage,omitempty"`
	Rejection         *Rejection    `json:"rejection,omitempty"`
	EvaluatedAt       time.Time     `json:"evaluatedAt"`
}

// ComputeLifecycleSnapshot derives the snapshot for c at now. An absent candidate
// yields nil.
func ComputeLifecycleSnapshot(c *Candidate, now time.Time) *LifecycleSnapshot {
	if !c.Present() {
		return nil
	}

	events := ExtractTimeline(c)
	stages := ComputeStageMetrics(events, now)
	total := TotalDays(events)

	s := &LifecycleSnapshot{
		CandidateID:       c.ID,
		Status:            c.Status,
		Stages:            stages,
		StageStates:       ClassifyStages(c.Status),
		TotalDays:         total,
		CompletionRate:    CompletionRate(len(events)),
		OverallEfficiency: ClassifyOverallEfficiency(total),
		AverageStageTime:  AverageStageTime(stages),
		FastestStage:      FastestStage(stages),
		SlowestStage:      SlowestStage(stages),
		EvaluatedAt:       now,
	}

	if n := len(stages); n > 0 {
		s.CurrentStage = stages[n-1].StageID
		s.CurrentStageName = stages[n-1].Name
	}

	if StageID(c.Status) == StageRejected || c.RejectionDate != nil {
		s.Rejection = &Rejection{Date: c.RejectionDate, Reason: c.RejectionReason}
	}

	return s
}

// ComputeInsights runs the default rules. Snapshot-based rules are skipped when s is nil.
func ComputeInsights(c *Candidate, s *LifecycleSnapshot, now time.Time) []Insight {
	return EvaluateRules(DefaultRules(), RuleInput{Candidate: c, Snapshot: s, Now: now})
}

// Evaluate computes both outputs in one pass.
func Evaluate(c *Candidate, now time.Time) (*LifecycleSnapshot, []Insight) {
	s := ComputeLifecycleSnapshot(c, now)
	return s, ComputeInsights(c, s, now)
}
