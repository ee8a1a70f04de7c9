// internal/lifecycle/candidate.go
package lifecycle

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Raw record keys that are not stage date fields.
const (
	FieldID                 = "id"
	FieldStatus             = "status"
	FieldApprovalStatus     = "approval_status"
	FieldRejectionDate      = "rejection_date"
	FieldRejectionReason    = "rejection_reason"
	FieldTotalExperience    = "total_experience"
	FieldRelevantExperience = "relevant_experience"
	FieldCurrentCTC         = "current_ctc"
	FieldExpectedCTC        = "expected_ctc"
	FieldName               = "name"
	FieldEmail              = "email"
	FieldPosition           = "position"
)

// Candidate is the typed view of a raw candidate record. All coercion happens in
// ParseCandidate; nothing downstream looks at the raw map again.
type Candidate struct {
	ID     string
	Status string

	// Only stages whose date field parsed are present.
	StageDates map[StageID]time.Time

	RejectionDate   *time.Time
	RejectionReason string

	TotalExperience    float64
	RelevantExperience float64
	CurrentCTC         float64
	ExpectedCTC        float64

	Name     string
	Email    string
	Position string
}

// Present reports whether the record identifies a candidate at all.
func (c *Candidate) Present() bool {
	return c != nil && c.ID != ""
}

// StageDate returns the parsed date for a stage.
func (c *Candidate) StageDate(id StageID) (time.Time, bool) {
	if c == nil {
		return time.Time{}, false
	}
	t, ok := c.StageDates[id]
	return t, ok
}

// ParseCandidate coerces a loosely typed record. Missing or unparseable values become
// "not reached" or zero; it never fails.
func ParseCandidate(raw map[string]interface{}) *Candidate {
	if raw == nil {
		return nil
	}

	c := &Candidate{
		ID:         toString(raw[FieldID]),
		Status:     ResolveStatus(toString(raw[FieldStatus]), toString(raw[FieldApprovalStatus])),
		StageDates: make(map[StageID]time.Time, StageCount),

		RejectionReason: toString(raw[FieldRejectionReason]),

		TotalExperience:    toNumber(raw[FieldTotalExperience]),
		RelevantExperience: toNumber(raw[FieldRelevantExperience]),
		CurrentCTC:         toNumber(raw[FieldCurrentCTC]),
		ExpectedCTC:        toNumber(raw[FieldExpectedCTC]),

		Name:     toString(raw[FieldName]),
		Email:    toString(raw[FieldEmail]),
		Position: toString(raw[FieldPosition]),
	}

	for _, def := range stageRegistry {
		if t, ok := toDate(raw[def.DateField]); ok {
			c.StageDates[def.ID] = t
		}
	}
	if t, ok := toDate(raw[FieldRejectionDate]); ok {
		c.RejectionDate = &t
	}

	return c
}

// ParseCandidateJSON decodes a JSON object and coerces it. Only malformed JSON is an error.
func ParseCandidateJSON(data []byte) (*Candidate, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode candidate record: %w", err)
	}
	return ParseCandidate(raw), nil
}

func toString(v interface{}) string {
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func toNumber(v interface{}) float64 {
	var (
		f   float64
		err error
	)
	switch val := v.(type) {
	case nil:
		return 0
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(val, ",", ""))
		if cleaned == "" {
			return 0
		}
		f, err = cast.ToFloat64E(cleaned)
	case bool:
		return 0
	default:
		f, err = cast.ToFloat64E(val)
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func toDate(v interface{}) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, !val.IsZero()
	case *time.Time:
		if val == nil || val.IsZero() {
			return time.Time{}, false
		}
		return *val, true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		t, err := cast.ToTimeE(s)
		if err != nil || t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}
