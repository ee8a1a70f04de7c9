// internal/common/camunda/client_test.go
package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"candidate-lifecycle/internal/common/logger"
	"candidate-lifecycle/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

// ==========================
// Retry
// ==========================

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), fastRetry, logger.NewTestLogger(t), "redis ping", func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("dial tcp 127.0.0.1:6379: connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), fastRetry, logger.NewNoOpLogger(), "postgres ping", func(context.Context) error {
		attempts++
		return errors.New("password authentication failed")
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.Contains(t, err.Error(), "postgres ping failed")
}

func TestRetry_GivesUpAfterMaxRetries(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), fastRetry, logger.NewNoOpLogger(), "zeebe", func(context.Context) error {
		attempts++
		return errors.New("rpc error: code = Unavailable")
	})

	require.Error(t, err)
	assert.Equal(t, fastRetry.MaxRetries, attempts)
}

func TestRetry_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slow := &RetryConfig{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}
	err := Retry(ctx, slow, logger.NewNoOpLogger(), "zeebe", func(context.Context) error {
		return errors.New("deadline exceeded")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, IsRetryableError(errors.New("connection reset by peer")))
	assert.True(t, IsRetryableError(errors.New("context deadline exceeded")))
	assert.True(t, IsRetryableError(errors.New("lookup zeebe: no such host")))
	assert.False(t, IsRetryableError(errors.New("permission denied")))
}

// ==========================
// Instrument
// ==========================

func TestInstrument_TracksActiveJobs(t *testing.T) {
	const taskType = "instrument-test"
	var inFlight float64

	handler := Instrument(taskType, func(_ worker.JobClient, _ entities.Job) {
		inFlight = testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType))
	}, logger.NewNoOpLogger())

	handler(nil, entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 1, Retries: 3}})

	assert.Equal(t, 1.0, inFlight)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
}

func TestInstrument_RecoversPanics(t *testing.T) {
	const taskType = "instrument-panic-test"
	before := testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues(taskType, "PANIC"))

	handler := Instrument(taskType, func(worker.JobClient, entities.Job) {
		panic("nil snapshot")
	}, logger.NewNoOpLogger())

	assert.NotPanics(t, func() {
		handler(nil, entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 2, Retries: 3}})
	})
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues(taskType, "PANIC")))
}
