// internal/workers/scenario/list-scenarios/handler.go
package listscenarios

import (
	"context"
	"encoding/json"

	"franchise-estimator/internal/common/camunda"
	apperrors "franchise-estimator/internal/common/errors"
	"franchise-estimator/internal/common/logger"
	"franchise-estimator/internal/scenario"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "list-scenarios"
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
	if job.Variables != "" {
		if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
			parseErr := apperrors.NewParseError(err)
			h.errorHandler.HandleJobError(ctx, client, job, parseErr)
			return parseErr
		}
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return err
	}

	return camunda.CompleteJob(ctx, client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Reload {
		if err := h.store.Reload(ctx); err != nil {
			return nil, err
		}
	}

	list, err := h.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []scenario.Record{}
	}

	h.logger.Debug("scenarios listed", map[string]interface{}{"count": len(list)})
	return &Output{Scenarios: list, Count: len(list)}, nil
}
