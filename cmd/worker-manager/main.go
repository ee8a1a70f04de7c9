// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"candidate-lifecycle/internal/candidates"
	"candidate-lifecycle/internal/common/camunda"
	"candidate-lifecycle/internal/common/config"
	"candidate-lifecycle/internal/common/database"
	"candidate-lifecycle/internal/common/logger"
	"candidate-lifecycle/internal/common/observability"
	"candidate-lifecycle/pkg/registry"

	cls "candidate-lifecycle/internal/workers/candidate/compute-lifecycle-snapshot"
	gci "candidate-lifecycle/internal/workers/candidate/generate-candidate-insights"
)

var startupRetry = &camunda.RetryConfig{
	MaxRetries: 15,
	BaseDelay:  2 * time.Second,
	MaxDelay:   30 * time.Second,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})
	log.Info("Starting worker manager...", nil)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Zeebe ---
	zeebe, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: cfg.Camunda.UsePlaintext,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		RetryConfig:            camunda.DefaultRetryConfig,
	}, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	log.Info("Zeebe client connected successfully", nil)

	// --- PostgreSQL ---
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres init failed", zap.Error(err))
	}
	defer pg.Close()
	if err := camunda.Retry(ctx, startupRetry, log, "PostgreSQL connection", pg.Ping); err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	log.Info("PostgreSQL connected successfully", nil)

	if dir := cfg.Database.Postgres.MigrationsDir; dir != "" {
		applied, err := pg.ApplyMigrations(ctx, dir)
		if err != nil {
			zapLog.Fatal("migrations failed", zap.Error(err))
		}
		log.Info("migrations applied", map[string]interface{}{"dir": dir, "applied": applied})
	}

	// --- Redis ---
	rdb, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		zapLog.Fatal("redis init failed", zap.Error(err))
	}
	defer rdb.Close()
	if err := camunda.Retry(ctx, startupRetry, log, "Redis connection", rdb.Ping); err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	log.Info("Redis connected successfully", nil)

	repo := candidates.NewRepository(pg.GetDB(), rdb.GetClient(), cfg.Lifecycle.CacheTTLDuration(), log)
	resolver := candidates.NewResolver(repo, log)

	// --- Workers ---
	activities, err := registry.Default()
	if err == nil {
		err = activities.Validate()
	}
	if err != nil {
		zapLog.Fatal("activity registry invalid", zap.Error(err))
	}

	handlers := map[string]worker.JobHandler{
		cls.TaskType: cls.NewHandler(&cls.Config{Timeout: handlerTimeout(activities, cls.TaskType)}, resolver, obs, log).Handle,
		gci.TaskType: gci.NewHandler(&gci.Config{Timeout: handlerTimeout(activities, gci.TaskType)}, resolver, obs, log).Handle,
	}

	var workers []worker.JobWorker
	for taskType, handler := range handlers {
		if _, ok := activities.Find(taskType); !ok {
			zapLog.Fatal("task type missing from activity registry", zap.String("taskType", taskType))
		}
		if w := camunda.StartWorker(zeebe.GetClient(), taskType, config.GetWorkerConfig(cfg, taskType), handler, log); w != nil {
			workers = append(workers, w)
		}
	}

	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", nil)
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{}
		ready := true
		for name, check := range map[string]func(context.Context) error{
			"zeebe":    zeebe.HealthCheck,
			"postgres": pg.Ping,
			"redis":    rdb.Ping,
		} {
			if err := check(checkCtx); err != nil {
				checks[name] = err.Error()
				ready = false
				continue
			}
			checks[name] = "ok"
		}

		if !ready {
			writeStatus(w, http.StatusServiceUnavailable, "not ready", checks)
			return
		}
		writeStatus(w, http.StatusOK, "ready", checks)
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Health/Metrics server failed", map[string]interface{}{"error": err})
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	log.Info("Shutdown signal received, stopping workers...", nil)

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Health/Metrics server shutdown failed", map[string]interface{}{"error": err})
	}

	log.Info("Worker manager stopped gracefully", nil)
}

// handlerTimeout bounds one job's execution by the activity's registered timeout.
func handlerTimeout(reg *registry.ActivityRegistry, taskType string) time.Duration {
	if activity, ok := reg.Find(taskType); ok {
		return activity.TimeoutDuration(10 * time.Second)
	}
	return 10 * time.Second
}

func writeStatus(w http.ResponseWriter, code int, status string, checks map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	body := map[string]interface{}{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}
	if checks != nil {
		body["checks"] = checks
	}
	_ = json.NewEncoder(w).Encode(body)
}
