// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCandidateRecord(t *testing.T) {
	tests := []struct {
		name      string
		record    map[string]interface{}
		wantValid bool
		wantField string
	}{
		{
			name: "well formed",
			record: map[string]interface{}{
				"id":               "c1",
				"status":           "screening",
				"email":            "jane@example.com",
				"application_date": "2024-03-01",
				"screening_date":   "2024-03-03T09:30:00Z",
				"current_ctc":      "1,200,000",
				"expected_ctc":     1500000,
				"custom_field":     []interface{}{"kept"},
			},
			wantValid: true,
		},
		{
			name:      "numeric id and null dates",
			record:    map[string]interface{}{"id": 42, "interview_date": nil},
			wantValid: true,
		},
		{
			name:      "status is not a string",
			record:    map[string]interface{}{"id": "c1", "status": 5},
			wantValid: false,
			wantField: "status",
		},
		{
			name:      "date without calendar prefix",
			record:    map[string]interface{}{"id": "c1", "application_date": "yesterday"},
			wantValid: false,
			wantField: "application_date",
		},
		{
			name:      "experience as object",
			record:    map[string]interface{}{"id": "c1", "total_experience": map[string]interface{}{"years": 3}},
			wantValid: false,
			wantField: "total_experience",
		},
		{
			name:      "malformed email",
			record:    map[string]interface{}{"id": "c1", "email": "not-an-email"},
			wantValid: false,
			wantField: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateCandidateRecord(tt.record)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid, result.GetErrorMessages())
			if tt.wantField != "" {
				assert.True(t, result.HasErrors(tt.wantField), result.GetErrorMessages())
			}
		})
	}
}

func TestValidateAgainst(t *testing.T) {
	result, err := ValidateAgainst(`{"type":"object","required":["candidateId"]}`, map[string]interface{}{})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "(root)", result.Errors[0].Field)
	assert.Equal(t, "REQUIRED", result.Errors[0].Code)

	_, err = ValidateAgainst(`{"type": 12}`, map[string]interface{}{})
	assert.Error(t, err)
}
