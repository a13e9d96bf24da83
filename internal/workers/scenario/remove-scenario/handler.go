// internal/workers/scenario/remove-scenario/handler.go
package removescenario

import (
	"context"
	"encoding/json"
	"strings"

	"franchise-estimator/internal/common/camunda"
	apperrors "franchise-estimator/internal/common/errors"
	"franchise-estimator/internal/common/logger"
	"franchise-estimator/internal/scenario"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "remove-scenario"
)

type Handler struct {
	config       *Config
	store        *scenario.Store
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, store *scenario.Store, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		store:        store,
		errorHandler: apperrors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		parseErr := apperrors.NewParseError(err)
		h.errorHandler.HandleJobError(ctx, client, job, parseErr)
		return parseErr
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return err
	}

	return camunda.CompleteJob(ctx, client, job, output)
}

// Execute removes the scenario. Unknown ids are not an error.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, apperrors.NewUserInputRequiredError("scenarioId", "scenario id is required")
	}

	out := &Output{ID: id, Persisted: true}
	if err := h.store.Remove(ctx, id); err != nil {
		if !scenario.IsWriteWarning(err) {
			return nil, err
		}
		h.logger.Warn("removal kept in memory only", map[string]interface{}{
			"scenarioId": id,
			"error":      err.Error(),
		})
		out.Persisted = false
		out.Warning = err.Error()
	}

	list, err := h.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out.Remaining = len(list)

	h.logger.Info("scenario removed", map[string]interface{}{
		"scenarioId": id,
		"remaining":  out.Remaining,
	})
	return out, nil
}
