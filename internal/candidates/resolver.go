// internal/candidates/resolver.go
package candidates

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cast"

	apperrors "candidate-lifecycle/internal/common/errors"
	"candidate-lifecycle/internal/common/logger"
	"candidate-lifecycle/internal/common/metrics"
	"candidate-lifecycle/internal/common/validation"
	"candidate-lifecycle/internal/lifecycle"
)

// Source yields raw candidate records by id.
type Source interface {
	Get(ctx context.Context, candidateID string) (map[string]interface{}, error)
}

// Resolver turns job input into a parsed candidate. An inline record always wins over
// the source; schema problems in the record are logged and never fail resolution.
type Resolver struct {
	source Source
	logger logger.Logger
}

// NewResolver accepts a nil source, in which case only inline records resolve.
func NewResolver(source Source, log logger.Logger) *Resolver {
	return &Resolver{source: source, logger: log}
}

// Resolve returns a present candidate or a StandardError describing why none could be built.
func (r *Resolver) Resolve(ctx context.Context, candidateID string, inline map[string]interface{}) (*lifecycle.Candidate, error) {
	candidateID = strings.TrimSpace(candidateID)

	raw, err := r.raw(ctx, candidateID, inline)
	if err != nil {
		return nil, err
	}

	r.checkShape(candidateID, raw)

	c := lifecycle.ParseCandidate(raw)
	if !c.Present() {
		return nil, apperrors.NewInvalidInputError("candidate record has no id")
	}
	return c, nil
}

func (r *Resolver) raw(ctx context.Context, candidateID string, inline map[string]interface{}) (map[string]interface{}, error) {
	if inline != nil {
		metrics.CandidateRecordLookups.WithLabelValues("inline").Inc()
		if hasID(inline) || candidateID == "" {
			return inline, nil
		}
		record := make(map[string]interface{}, len(inline)+1)
		for k, v := range inline {
			record[k] = v
		}
		record[lifecycle.FieldID] = candidateID
		return record, nil
	}

	if candidateID == "" {
		return nil, apperrors.NewInvalidInputError("candidateId is required when no candidate record is supplied")
	}
	if r.source == nil {
		return nil, apperrors.NewCandidateLookupFailedError(candidateID, errors.New("no candidate source configured"))
	}

	record, err := r.source.Get(ctx, candidateID)
	switch {
	case errors.Is(err, ErrCandidateNotFound):
		return nil, apperrors.NewCandidateNotFoundError(candidateID)
	case err != nil:
		return nil, apperrors.NewCandidateLookupFailedError(candidateID, err)
	}
	return record, nil
}

// hasID reports whether the record carries an id that coerces to a non-blank string.
func hasID(record map[string]interface{}) bool {
	v, ok := record[lifecycle.FieldID]
	if !ok || v == nil {
		return false
	}
	id, err := cast.ToStringE(v)
	return err == nil && strings.TrimSpace(id) != ""
}

func (r *Resolver) checkShape(candidateID string, raw map[string]interface{}) {
	result, err := validation.ValidateCandidateRecord(raw)
	if err != nil {
		r.logger.Warn("candidate schema check skipped", map[string]interface{}{
			"candidateId": candidateID,
			"error":       err,
		})
		return
	}
	if !result.Valid {
		r.logger.Warn("candidate record has data-quality issues", map[string]interface{}{
			"candidateId": candidateID,
			"issues":      result.GetErrorMessages(),
		})
	}
}
