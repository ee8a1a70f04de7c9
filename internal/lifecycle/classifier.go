// internal/lifecycle/classifier.go
package lifecycle

// StageState is how a stage row renders for the current status.
type StageState string

const (
	StateCompleted StageState = "completed"
	StateCurrent   StageState = "current"
	StatePending   StageState = "pending"
	StateRejected  StageState = "rejected"
)

// StageStatus pairs a stage with its render state.
type StageStatus struct {
	StageID StageID    `json:"stageId"`
	Name    string     `json:"name"`
	State   StageState `json:"state"`
}

// ResolveStatus picks status, then approvalStatus, then "applied".
func ResolveStatus(status, approvalStatus string) string {
	if status != "" {
		return status
	}
	if approvalStatus != "" {
		return approvalStatus
	}
	return string(StageApplied)
}

// ClassifyStages returns one row per pipeline stage. A rejected candidate gets every
// row marked rejected regardless of how far they got. Unknown statuses fall back to
// the first stage as current.
func ClassifyStages(status string) []StageStatus {
	rows := make([]StageStatus, 0, StageCount)

	if StageID(status) == StageRejected {
		for _, def := range stageRegistry {
			rows = append(rows, StageStatus{StageID: def.ID, Name: def.Name, State: StateRejected})
		}
		return rows
	}

	current := StageIndex(StageID(status))
	if current < 0 {
		current = 0
	}

	for i, def := range stageRegistry {
		state := StatePending
		switch {
		case i < current:
			state = StateCompleted
		case i == current:
			state = StateCurrent
		}
		rows = append(rows, StageStatus{StageID: def.ID, Name: def.Name, State: state})
	}
	return rows
}
