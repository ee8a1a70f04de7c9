// internal/candidates/repository.go

// Package candidates loads raw candidate records from Postgres through a Redis
// read-through cache. Records are returned untyped; coercion belongs to the lifecycle
// package.
package candidates

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"candidate-lifecycle/internal/common/logger"
	"candidate-lifecycle/internal/common/metrics"

	"github.com/redis/go-redis/v9"
)

var ErrCandidateNotFound = errors.New("candidate not found")

// CacheKeyPrefix namespaces cached candidate records in Redis.
const CacheKeyPrefix = "candidate:record:"

// recordColumns are read as text so every value reaches the parser in its stored form.
var recordColumns = []string{
	"id",
	"status",
	"approval_status",
	"name",
	"email",
	"position",
	"application_date",
	"screening_date",
	"interview_date",
	"interviewed_date",
	"approval_date",
	"offer_released_date",
	"onboarding_date",
	"rejection_date",
	"rejection_reason",
	"total_experience",
	"relevant_experience",
	"current_ctc",
	"expected_ctc",
}

var selectRecordSQL = buildSelect()

func buildSelect() string {
	cols := make([]string, len(recordColumns))
	for i, c := range recordColumns {
		cols[i] = c + "::text"
	}
	return fmt.Sprintf("SELECT %s FROM candidates WHERE id::text = $1", strings.Join(cols, ", "))
}

type Repository struct {
	db     *sql.DB
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewRepository builds a repository. A nil redis client disables caching.
func NewRepository(db *sql.DB, redis *redis.Client, ttl time.Duration, log logger.Logger) *Repository {
	return &Repository{
		db:     db,
		redis:  redis,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "candidate-repository"}),
	}
}

func CacheKey(candidateID string) string {
	return CacheKeyPrefix + candidateID
}

// Get returns the raw record for candidateID. NULL columns are omitted from the map.
func (r *Repository) Get(ctx context.Context, candidateID string) (map[string]interface{}, error) {
	if record, ok := r.fromCache(ctx, candidateID); ok {
		metrics.CandidateRecordLookups.WithLabelValues("cache").Inc()
		return record, nil
	}

	record, err := r.fromDatabase(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	metrics.CandidateRecordLookups.WithLabelValues("database").Inc()

	r.store(ctx, candidateID, record)
	return record, nil
}

// Invalidate drops the cached record so the next Get reads Postgres.
func (r *Repository) Invalidate(ctx context.Context, candidateID string) error {
	if r.redis == nil {
		return nil
	}
	if err := r.redis.Del(ctx, CacheKey(candidateID)).Err(); err != nil {
		return fmt.Errorf("invalidate candidate %s: %w", candidateID, err)
	}
	return nil
}

func (r *Repository) fromCache(ctx context.Context, candidateID string) (map[string]interface{}, bool) {
	if r.redis == nil {
		return nil, false
	}

	val, err := r.redis.Get(ctx, CacheKey(candidateID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("candidate cache read failed", map[string]interface{}{
				"candidateId": candidateID,
				"error":       err,
			})
		}
		return nil, false
	}

	var record map[string]interface{}
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		r.logger.Warn("discarding corrupt cache entry", map[string]interface{}{
			"candidateId": candidateID,
			"error":       err,
		})
		return nil, false
	}
	return record, true
}

func (r *Repository) fromDatabase(ctx context.Context, candidateID string) (map[string]interface{}, error) {
	values := make([]sql.NullString, len(recordColumns))
	dest := make([]interface{}, len(recordColumns))
	for i := range values {
		dest[i] = &values[i]
	}

	err := r.db.QueryRowContext(ctx, selectRecordSQL, candidateID).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCandidateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query candidate %s: %w", candidateID, err)
	}

	record := make(map[string]interface{}, len(recordColumns))
	for i, col := range recordColumns {
		if values[i].Valid {
			record[col] = values[i].String
		}
	}
	return record, nil
}

func (r *Repository) store(ctx context.Context, candidateID string, record map[string]interface{}) {
	if r.redis == nil {
		return
	}

	data, err := json.Marshal(record)
	if err != nil {
		return
	}
	if err := r.redis.Set(ctx, CacheKey(candidateID), data, r.ttl).Err(); err != nil {
		r.logger.Warn("candidate cache write failed", map[string]interface{}{
			"candidateId": candidateID,
			"error":       err,
		})
	}
}
