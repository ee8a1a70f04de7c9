// internal/lifecycle/insights.go
package lifecycle

import (
	"fmt"
	"time"
)

type InsightType string

const (
	InsightSuccess InsightType = "success"
	InsightWarning InsightType = "warning"
	InsightInfo    InsightType = "info"
	InsightError   InsightType = "error"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Insight is a recruiter-facing recommendation. Regenerated on every evaluation.
type Insight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Priority    Priority    `json:"priority"`
}

// Thresholds used by the insight rules. These are separate from the efficiency buckets.
const (
	FastTrackMaxDays         = 21
	ExtendedTimelineMinDays  = 60
	PendingDecisionAfterDays = 5
	RelevantExperienceRatio  = 0.8
	HighSalaryGrowthPercent  = 50.0
	ReasonableGrowthPercent  = 20.0
)

// RuleInput is everything a rule may look at. Snapshot may be nil.
type RuleInput struct {
	Candidate *Candidate
	Snapshot  *LifecycleSnapshot
	Now       time.Time
}

// Rule emits at most one insight.
type Rule struct {
	Name     string
	Evaluate func(in RuleInput) (Insight, bool)
}

// DefaultRules returns the insight rules in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "fast-track", Evaluate: fastTrackRule},
		{Name: "extended-timeline", Evaluate: extendedTimelineRule},
		{Name: "interview-preparation", Evaluate: interviewPreparationRule},
		{Name: "pending-decision", Evaluate: pendingDecisionRule},
		{Name: "relevant-experience", Evaluate: relevantExperienceRule},
		{Name: "compensation", Evaluate: compensationRule},
	}
}

// EvaluateRules runs rules in order and collects what they emit. Output keeps rule
// order; there is no dedup and no sort by priority.
func EvaluateRules(rules []Rule, in RuleInput) []Insight {
	insights := make([]Insight, 0, len(rules))
	if !in.Candidate.Present() {
		return insights
	}
	for _, r := range rules {
		if insight, ok := r.Evaluate(in); ok {
			insights = append(insights, insight)
		}
	}
	return insights
}

func fastTrackRule(in RuleInput) (Insight, bool) {
	if in.Snapshot == nil || in.Snapshot.TotalDays > FastTrackMaxDays {
		return Insight{}, false
	}
	return Insight{
		Type:        InsightSuccess,
		Title:       "Fast Track Candidate",
		Description: fmt.Sprintf("Candidate has progressed through the pipeline in %d days, well within the expected timeline.", in.Snapshot.TotalDays),
		Priority:    PriorityHigh,
	}, true
}

func extendedTimelineRule(in RuleInput) (Insight, bool) {
	if in.Snapshot == nil || in.Snapshot.TotalDays <= ExtendedTimelineMinDays {
		return Insight{}, false
	}
	return Insight{
		Type:        InsightWarning,
		Title:       "Extended Timeline",
		Description: fmt.Sprintf("Candidate has been in the pipeline for %d days. Review for bottlenecks and follow up.", in.Snapshot.TotalDays),
		Priority:    PriorityMedium,
	}, true
}

func interviewPreparationRule(in RuleInput) (Insight, bool) {
	if StageID(in.Candidate.Status) != StageInterviewScheduled {
		return Insight{}, false
	}
	return Insight{
		Type:        InsightInfo,
		Title:       "Interview Preparation",
		Description: "Interview is scheduled. Share the interview panel details and the candidate's resume with interviewers.",
		Priority:    PriorityHigh,
	}, true
}

func pendingDecisionRule(in RuleInput) (Insight, bool) {
	c := in.Candidate
	if StageID(c.Status) != StageInterviewed {
		return Insight{}, false
	}
	if _, approved := c.StageDate(StageApproved); approved {
		return Insight{}, false
	}
	interviewDate, ok := c.StageDate(StageInterviewScheduled)
	if !ok {
		return Insight{}, false
	}
	daysSinceInterview := DaysBetween(interviewDate, in.Now)
	if daysSinceInterview <= PendingDecisionAfterDays {
		return Insight{}, false
	}
	return Insight{
		Type:        InsightWarning,
		Title:       "Pending Decision",
		Description: fmt.Sprintf("Interview was completed %d days ago. A hiring decision is pending.", daysSinceInterview),
		Priority:    PriorityHigh,
	}, true
}

func relevantExperienceRule(in RuleInput) (Insight, bool) {
	c := in.Candidate
	// A zero (or nonsensical negative) total has no meaningful ratio.
	if c.TotalExperience <= 0 {
		return Insight{}, false
	}
	ratio := c.RelevantExperience / c.TotalExperience
	if ratio <= RelevantExperienceRatio {
		return Insight{}, false
	}
	return Insight{
		Type:        InsightSuccess,
		Title:       "Highly Relevant Experience",
		Description: fmt.Sprintf("%d%% of the candidate's experience is relevant to this role.", roundHalfUp(ratio*100)),
		Priority:    PriorityMedium,
	}, true
}

// compensationRule leaves the 20-50% growth band without an insight.
func compensationRule(in RuleInput) (Insight, bool) {
	c := in.Candidate
	if c.CurrentCTC <= 0 || c.ExpectedCTC <= 0 {
		return Insight{}, false
	}
	growth := (c.ExpectedCTC - c.CurrentCTC) / c.CurrentCTC * 100

	switch {
	case growth > HighSalaryGrowthPercent:
		return Insight{
			Type:        InsightWarning,
			Title:       "High Salary Expectation",
			Description: fmt.Sprintf("Candidate expects a %d%% increase over current compensation.", roundHalfUp(growth)),
			Priority:    PriorityMedium,
		}, true
	case growth < ReasonableGrowthPercent:
		return Insight{
			Type:        InsightSuccess,
			Title:       "Reasonable Expectations",
			Description: fmt.Sprintf("Expected compensation is a %d%% change over current compensation, within a reasonable range.", roundHalfUp(growth)),
			Priority:    PriorityLow,
		}, true
	default:
		return Insight{}, false
	}
}
