// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// CandidateRecordSchema describes the loose shape of a raw candidate record. Dates and
// numbers may arrive as strings; unknown fields are allowed.
const CandidateRecordSchema = `{
  "type": "object",
  "properties": {
    "id":                  {"type": ["string", "number"]},
    "status":              {"type": ["string", "null"]},
    "approval_status":     {"type": ["string", "null"]},
    "name":                {"type": ["string", "null"]},
    "email":               {"type": ["string", "null"], "format": "email"},
    "position":            {"type": ["string", "null"]},
    "application_date":    {"$ref": "#/definitions/date"},
    "screening_date":      {"$ref": "#/definitions/date"},
    "interview_date":      {"$ref": "#/definitions/date"},
    "interviewed_date":    {"$ref": "#/definitions/date"},
    "approval_date":       {"$ref": "#/definitions/date"},
    "offer_released_date": {"$ref": "#/definitions/date"},
    "onboarding_date":     {"$ref": "#/definitions/date"},
    "rejection_date":      {"$ref": "#/definitions/date"},
    "rejection_reason":    {"type": ["string", "null"]},
    "total_experience":    {"$ref": "#/definitions/numeric"},
    "relevant_experience": {"$ref": "#/definitions/numeric"},
    "current_ctc":         {"$ref": "#/definitions/numeric"},
    "expected_ctc":        {"$ref": "#/definitions/numeric"}
  },
  "definitions": {
    "date":    {"type": ["string", "null"], "pattern": "^\\d{4}-\\d{2}-\\d{2}"},
    "numeric": {"type": ["number", "string", "null"]}
  },
  "additionalProperties": true
}`

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

var (
	candidateSchemaOnce sync.Once
	candidateSchema     *gojsonschema.Schema
	candidateSchemaErr  error
)

func compiledCandidateSchema() (*gojsonschema.Schema, error) {
	candidateSchemaOnce.Do(func() {
		candidateSchema, candidateSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(CandidateRecordSchema))
	})
	return candidateSchema, candidateSchemaErr
}

// ValidateCandidateRecord reports shape problems in a raw candidate record. The result is
// advisory: lifecycle evaluation coerces or drops bad values regardless.
func ValidateCandidateRecord(record map[string]interface{}) (*ValidationResult, error) {
	schema, err := compiledCandidateSchema()
	if err != nil {
		return nil, fmt.Errorf("candidate schema: %w", err)
	}
	return validate(schema, gojsonschema.NewGoLoader(record))
}

// ValidateAgainst validates data against an arbitrary JSON schema document.
func ValidateAgainst(schemaJSON string, data interface{}) (*ValidationResult, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return validate(schema, gojsonschema.NewGoLoader(data))
}

func validate(schema *gojsonschema.Schema, document gojsonschema.JSONLoader) (*ValidationResult, error) {
	result, err := schema.Validate(document)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		errs = append(errs, ValidationError{
			Field:   field,
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}

	return &ValidationResult{
		Valid:  result.Valid(),
		Errors: errs,
	}, nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}
