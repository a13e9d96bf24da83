// cmd/estimator-worker/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"franchise-estimator/internal/common/camunda"
	"franchise-estimator/internal/common/config"
	"franchise-estimator/internal/common/logger"
	"franchise-estimator/internal/common/observability"
	"franchise-estimator/internal/comparison"
	"franchise-estimator/internal/estimator"
	"franchise-estimator/internal/scenario"
	"franchise-estimator/internal/storage"
	"franchise-estimator/pkg/catalog"

	// Estimate Workers (2)
	cs "franchise-estimator/internal/workers/estimate/compare-scenarios"
	ce "franchise-estimator/internal/workers/estimate/compute-estimate"

	// Scenario Workers (5)
	ap "franchise-estimator/internal/workers/scenario/apply-preset"
	lss "franchise-estimator/internal/workers/scenario/load-scenario-slot"
	ls "franchise-estimator/internal/workers/scenario/list-scenarios"
	rs "franchise-estimator/internal/workers/scenario/remove-scenario"
	ss "franchise-estimator/internal/workers/scenario/save-scenario"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// workerTimeout is the per-job timeout from config, or def when unset.
func workerTimeout(wcfg config.WorkerConfig, def time.Duration) time.Duration {
	if wcfg.Timeout > 0 {
		return config.GetDuration(wcfg.Timeout)
	}
	return def
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	zapLog.Info("Starting estimator worker...", zap.String("environment", cfg.App.Environment))

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("observability disabled", zap.Error(err))
		obs = observability.Nop()
	}

	ctx := context.Background()

	// --- Reference data ---
	ref, err := catalog.LoadReference(cfg.Estimator.CatalogPath)
	if err != nil {
		zapLog.Fatal("reference catalog failed", zap.Error(err))
	}
	zapLog.Info("Reference data loaded",
		zap.String("catalog", cfg.Estimator.CatalogPath),
		zap.Strings("franchises", ref.FranchiseKeys()),
	)

	// --- Init scenario storage with retry ---
	var backend storage.Backend
	err = retryWithBackoff(func() error {
		var err error
		backend, err = storage.New(ctx, cfg, log)
		return err
	}, 10, 2*time.Second, zapLog, "Scenario storage connection")

	if err != nil {
		zapLog.Fatal("storage failed after retries", zap.Error(err))
	}
	defer backend.Close()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: cfg.Camunda.UsePlaintext,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.ConnectionTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Domain services ---
	calc := estimator.NewCalculator(ref, estimator.WithStrictCityTier(cfg.Estimator.StrictCityTier))
	store := scenario.NewStore(backend, log,
		scenario.WithKey(cfg.Storage.Key),
		scenario.WithIDPrefix(cfg.Estimator.IDPrefix),
	)
	assembler := comparison.NewAssembler(calc, log)

	if _, err := store.List(ctx); err != nil {
		zapLog.Warn("saved scenarios not loaded yet", zap.Error(err))
	}

	// --- Register Workers ---
	var workers []*camunda.CamundaWorker
	start := func(taskType string, handler camunda.JobHandler) {
		wcfg, ok := cfg.Workers[taskType]
		if !ok || !wcfg.Enabled {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		workers = append(workers, camunda.StartWorker(zeebe.GetClient(), taskType, wcfg, handler, obs, log))
	}

	if wcfg := cfg.Workers[ce.TaskType]; wcfg.Enabled {
		c := ce.LoadConfig()
		c.Timeout = workerTimeout(wcfg, c.Timeout)
		start(ce.TaskType, ce.NewHandler(c, calc, log))
	}

	if wcfg := cfg.Workers[cs.TaskType]; wcfg.Enabled {
		c := cs.LoadConfig()
		c.Timeout = workerTimeout(wcfg, c.Timeout)
		start(cs.TaskType, cs.NewHandler(c, assembler, log))
	}

	if wcfg := cfg.Workers[ss.TaskType]; wcfg.Enabled {
		c := ss.LoadConfig()
		c.Timeout = workerTimeout(wcfg, c.Timeout)
		start(ss.TaskType, ss.NewHandler(c, store, ref, log))
	}

	if wcfg := cfg.Workers[ls.TaskType]; wcfg.Enabled {
		c := ls.LoadConfig()
		c.Timeout = workerTimeout(wcfg, c.Timeout)
		start(ls.TaskType, ls.NewHandler(c, store, log))
	}

	if wcfg := cfg.Workers[rs.TaskType]; wcfg.Enabled {
		c := rs.LoadConfig()
		c.Timeout = workerTimeout(wcfg, c.Timeout)
		start(rs.TaskType, rs.NewHandler(c, store, log))
	}

	if wcfg := cfg.Workers[lss.TaskType]; wcfg.Enabled {
		c := lss.LoadConfig()
		c.Timeout = workerTimeout(wcfg, c.Timeout)
		start(lss.TaskType, lss.NewHandler(c, store, log))
	}

	if wcfg := cfg.Workers[ap.TaskType]; wcfg.Enabled {
		c := ap.LoadConfig()
		c.Timeout = workerTimeout(wcfg, c.Timeout)
		start(ap.TaskType, ap.NewHandler(c, ref, log))
	}

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{"storage": "ok", "zeebe": "ok"}
		code := http.StatusOK
		if err := backend.Ping(r.Context()); err != nil {
			checks["storage"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		if err := zeebe.HealthCheck(r.Context()); err != nil {
			checks["zeebe"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		status := "ready"
		if code != http.StatusOK {
			status = "not ready"
		}
		writeStatus(w, code, map[string]interface{}{
			"status": status,
			"checks": checks,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping Health/Metrics server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping observability", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Estimator worker stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
