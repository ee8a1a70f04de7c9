// internal/workers/candidate/generate-candidate-insights/handler.go
package generatecandidateinsights

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
	TaskType = "generate-candidate-insights"
)

type CandidateResolver interface {
	Resolve(ctx context.Context, candidateID string, inline map[string]interface{}) (*lifecycle.Candidate, error)
}

type Handler struct {
	config       *Config
	resolver     CandidateResolver
	rules        []lifecycle.Rule
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
		rules:        lifecycle.DefaultRules(),
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

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.fail(ctx, client, job, start, errors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, start, err)
		return
	}

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err})
		return
	}

	elapsed := time.Since(start)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(elapsed.Seconds())
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
	h.obs.RecordJobDuration(ctx, TaskType, elapsed, "completed")
	h.obs.RecordInsights(ctx, output.InsightCount, output.HasWarnings)
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
	insights := lifecycle.EvaluateRules(h.rules, lifecycle.RuleInput{
		Candidate: candidate,
		Snapshot:  snapshot,
		Now:       now,
	})

	output := &Output{
		EvaluationID: uuid.New().String(),
		CandidateID:  candidate.ID,
		Insights:     insights,
		InsightCount: len(insights),
	}
	for _, in := range insights {
		metrics.ObserveInsight(string(in.Type), string(in.Priority))
		if in.Priority == lifecycle.PriorityHigh {
			output.HighPriorityCount++
		}
		if in.Type == lifecycle.InsightWarning {
			output.HasWarnings = true
		}
	}

	h.logger.Info("candidate insights generated", map[string]interface{}{
		"candidateId":       candidate.ID,
		"insightCount":      output.InsightCount,
		"highPriorityCount": output.HighPriorityCount,
		"hasWarnings":       output.HasWarnings,
	})

	return output, nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, start time.Time, err error) {
	stdErr := errors.Normalize(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "failed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "failed")

	reportCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	h.errorHandler.HandleJobError(reportCtx, client, job, stdErr)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
