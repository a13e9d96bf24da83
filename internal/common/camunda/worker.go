// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"franchise-estimator/internal/common/config"
	apperrors "franchise-estimator/internal/common/errors"
	"franchise-estimator/internal/common/logger"
	"franchise-estimator/internal/common/metrics"
	"franchise-estimator/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler completes or fails the job itself and returns the error it
// reported, if any.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job) error
}

type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// StartWorker opens a job worker for taskType. Every job is timed and counted
// under the task type.
func StartWorker(
	client zbc.Client,
	taskType string,
	wcfg config.WorkerConfig,
	handler JobHandler,
	obs *observability.Observability,
	log logger.Logger,
) *CamundaWorker {
	log = log.WithFields(map[string]interface{}{"taskType": taskType})

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(func(jc worker.JobClient, job entities.Job) {
			metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
			defer metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()

			start := time.Now()
			err := handler.Handle(jc, job)
			elapsed := time.Since(start)

			status := "completed"
			if err != nil {
				status = "failed"
				code := apperrors.Normalize(err).Code
				metrics.WorkerJobsFailed.WithLabelValues(taskType, string(code)).Inc()
				log.Debug("Handler returned error", map[string]interface{}{
					"jobKey":    job.Key,
					"errorCode": code,
					"error":     err,
				})
			} else {
				metrics.WorkerJobsCompleted.WithLabelValues(taskType).Inc()
			}
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
			obs.RecordJobProcessed(context.Background(), taskType, status)
			obs.RecordJobDuration(context.Background(), taskType, elapsed, status)
		}).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("Worker started", map[string]interface{}{
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})

	return &CamundaWorker{
		worker:   jobWorker,
		logger:   log,
		taskType: taskType,
	}
}

// Stop closes the job worker and waits for in-flight jobs.
func (w *CamundaWorker) Stop() {
	w.logger.Info("Stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}

// CompleteJob sends the output variables for job.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("failed to create complete job command: %w", err))
	}
	if _, err := cmd.Send(ctx); err != nil {
		return apperrors.NewExternalServiceError("zeebe", fmt.Errorf("failed to send complete job command: %w", err))
	}
	return nil
}
