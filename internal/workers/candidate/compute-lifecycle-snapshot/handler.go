// internal/workers/candidate/compute-lifecycle-snapshot/handler.go
package computelifecyclesnapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"candidate-lifecycle/internal/common/errors"
	"candidate-lifecycle/internal/common/logger"
	"candidate-lifecycle/internal/common/metrics"
	"candidate-lifecycle/internal/common/observability"
	"candidate-lifecycle/internal/lifecycle"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "compute-lifecycle-snapshot"
)

// CandidateResolver produces the candidate a job refers to.
type CandidateResolver interface {
	Resolve(ctx context.Context, candidateID string, inline map[string]interface{}) (*lifecycle.Candidate, error)
}

type Handler struct {
	config       *Config
	resolver     CandidateResolver
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, resolver CandidateResolver, obs *observability.Observability, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if config.Timeout <= 0 {
		withDefault := *config
		withDefault.Timeout = LoadConfig().Timeout
		config = &withDefault
	}
	if obs == nil {
		obs = &observability.Observability{}
	}
	taskLog := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		resolver:     resolver,
		obs:          obs,
		errorHandler: errors.NewErrorHandler(taskLog),
		logger:       taskLog,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := decodeInput(job)
	if err != nil {
		h.fail(ctx, client, job, start, err)
		return
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, start, err)
		return
	}

	if err := h.completeJob(client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		return
	}

	elapsed := time.Since(start)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(elapsed.Seconds())
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
	h.obs.RecordJobDuration(ctx, TaskType, elapsed, "completed")
}

func decodeInput(job entities.Job) (*Input, error) {
	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	candidate, err := h.resolver.Resolve(ctx, input.CandidateID, input.Candidate)
	if err != nil {
		return nil, err
	}

	now := h.config.now()
	if input.AsOf != nil {
		now = input.AsOf.UTC()
	}

	snapshot := lifecycle.ComputeLifecycleSnapshot(candidate, now)
	if snapshot == nil {
		return nil, errors.NewLifecycleEvaluationFailedError(fmt.Sprintf("no snapshot for candidate %q", candidate.ID))
	}
	metrics.CompletionRate.Observe(snapshot.CompletionRate)
	h.obs.RecordSnapshot(ctx, snapshot.TotalDays, string(snapshot.OverallEfficiency), string(snapshot.CurrentStage))

	h.logger.Info("lifecycle snapshot computed", map[string]interface{}{
		"candidateId":    snapshot.CandidateID,
		"status":         snapshot.Status,
		"stages":         len(snapshot.Stages),
		"totalDays":      snapshot.TotalDays,
		"completionRate": snapshot.CompletionRate,
		"efficiency":     snapshot.OverallEfficiency,
	})

	return &Output{
		EvaluationID: uuid.New().String(),
		CandidateID:  snapshot.CandidateID,
		Status:       snapshot.Status,
		Snapshot:     snapshot,
		StageStates:  snapshot.StageStates,
		EvaluatedAt:  snapshot.EvaluatedAt,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("create complete job command: %w", err)
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		return fmt.Errorf("send complete job command: %w", err)
	}
	return nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, start time.Time, err error) {
	stdErr := errors.Normalize(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "failed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "failed")
	// ctx may already be past its deadline; the failure report gets its own budget.
	reportCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	h.errorHandler.HandleJobError(reportCtx, client, job, stdErr)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
