// internal/workers/candidate/generate-candidate-insights/models.go
package generatecandidateinsights

import (
	"time"

	"candidate-lifecycle/internal/lifecycle"
)

type Input struct {
	CandidateID string                 `json:"candidateId"`
	Candidate   map[string]interface{} `json:"candidate,omitempty"`
	AsOf        *time.Time             `json:"asOf,omitempty"`
}

type Output struct {
	EvaluationID      string              `json:"evaluationId"`
	CandidateID       string              `json:"candidateId"`
	Insights          []lifecycle.Insight `json:"insights"`
	InsightCount      int                 `json:"insightCount"`
	HighPriorityCount int                 `json:"highPriorityCount"`
	HasWarnings       bool                `json:"hasWarnings"`
}
