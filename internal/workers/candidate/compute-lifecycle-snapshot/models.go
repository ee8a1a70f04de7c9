// internal/workers/candidate/compute-lifecycle-snapshot/models.go
package computelifecyclesnapshot

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
	EvaluationID string                       `json:"evaluationId"`
	CandidateID  string                       `json:"candidateId"`
	Status       string                       `json:"status"`
	Snapshot     *lifecycle.LifecycleSnapshot `json:"snapshot"`
	StageStates  []lifecycle.StageStatus      `json:"stageStates"`
	EvaluatedAt  time.Time                    `json:"evaluatedAt"`
}
