// internal/candidates/resolver_test.go
package candidates

import (
	"context"
	"errors"
	"testing"

	apperrors "candidate-lifecycle/internal/common/errors"
	"candidate-lifecycle/internal/common/logger"
	"candidate-lifecycle/internal/lifecycle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubSource struct {
	records map[string]map[string]interface{}
	err     error
	calls   int
}

func (s *stubSource) Get(_ context.Context, candidateID string) (map[string]interface{}, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	record, ok := s.records[candidateID]
	if !ok {
		return nil, ErrCandidateNotFound
	}
	return record, nil
}

func requireCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok, "expected StandardError, got %v", err)
	assert.Equal(t, code, stdErr.Code)
}

func TestResolver_InlineRecordWins(t *testing.T) {
	source := &stubSource{records: map[string]map[string]interface{}{"c1": {"id": "c1", "status": "onboarded"}}}
	r := NewResolver(source, logger.NewNoOpLogger())

	inline := map[string]interface{}{"status": "screening", "application_date": "2024-03-01"}
	c, err := r.Resolve(context.Background(), "c1", inline)

	require.NoError(t, err)
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, "screening", c.Status)
	assert.Equal(t, 0, source.calls)
	assert.NotContains(t, inline, "id")
}

func TestResolver_InlineRecordKeepsItsOwnID(t *testing.T) {
	r := NewResolver(nil, logger.NewNoOpLogger())

	c, err := r.Resolve(context.Background(), "", map[string]interface{}{"id": 77})

	require.NoError(t, err)
	assert.Equal(t, "77", c.ID)
}

func TestResolver_BlankInlineIDFallsBackToCandidateID(t *testing.T) {
	r := NewResolver(nil, logger.NewNoOpLogger())

	for name, id := range map[string]interface{}{"null": nil, "empty": "", "blank": "   "} {
		t.Run(name, func(t *testing.T) {
			inline := map[string]interface{}{"id": id, "status": "screening"}

			c, err := r.Resolve(context.Background(), "c-9", inline)

			require.NoError(t, err)
			assert.Equal(t, "c-9", c.ID)
			assert.Equal(t, "screening", c.Status)
			assert.Equal(t, id, inline["id"])
		})
	}
}

func TestResolver_FromSource(t *testing.T) {
	source := &stubSource{records: map[string]map[string]interface{}{
		"c1": {"id": "c1", "status": "interviewed", "interview_date": "2024-03-10"},
	}}
	r := NewResolver(source, logger.NewNoOpLogger())

	c, err := r.Resolve(context.Background(), "  c1 ", nil)

	require.NoError(t, err)
	assert.Equal(t, "interviewed", c.Status)
	_, ok := c.StageDate(lifecycle.StageInterviewScheduled)
	assert.True(t, ok)
}

func TestResolver_Failures(t *testing.T) {
	tests := []struct {
		name        string
		source      Source
		candidateID string
		inline      map[string]interface{}
		wantCode    apperrors.ErrorCode
	}{
		{"no id and no record", &stubSource{}, "", nil, apperrors.ErrCodeInvalidInput},
		{"inline record without any id", &stubSource{}, "", map[string]interface{}{"status": "applied"}, apperrors.ErrCodeInvalidInput},
		{"unknown candidate", &stubSource{}, "ghost", nil, apperrors.ErrCodeCandidateNotFound},
		{"source failure", &stubSource{err: errors.New("connection refused")}, "c1", nil, apperrors.ErrCodeCandidateLookupFailed},
		{"no source configured", nil, "c1", nil, apperrors.ErrCodeCandidateLookupFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.source, logger.NewNoOpLogger())
			_, err := r.Resolve(context.Background(), tt.candidateID, tt.inline)
			requireCode(t, err, tt.wantCode)
		})
	}
}

func TestResolver_DataQualityIssuesAreOnlyLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := NewResolver(nil, logger.NewZapAdapter(zap.New(core)))

	c, err := r.Resolve(context.Background(), "c1", map[string]interface{}{
		"status":           7,
		"application_date": "last tuesday",
	})

	require.NoError(t, err)
	assert.Equal(t, "7", c.Status)
	_, ok := c.StageDate(lifecycle.StageApplied)
	assert.False(t, ok)
	assert.Equal(t, 1, logs.FilterMessage("candidate record has data-quality issues").Len())
}
