// internal/workers/scenario/save-scenario/handler.go
package savescenario

import (
	"context"
	"encoding/json"
	"strings"

	"franchise-estimator/internal/common/camunda"
	apperrors "franchise-estimator/internal/common/errors"
	"franchise-estimator/internal/common/logger"
	"franchise-estimator/internal/estimator"
	"franchise-estimator/internal/reference"
	"franchise-estimator/internal/scenario"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "save-scenario"
)

type Handler struct {
	config       *Config
	store        *scenario.Store
	ref          *reference.Data
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, store *scenario.Store, ref *reference.Data, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		store:        store,
		ref:          ref,
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

// Execute stores the scenario. A failed write still returns the record with
// Persisted set to false; any other failure is an error.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewUserInputRequiredError("name", "scenario name is required")
	}

	contingency := h.config.DefaultContingencyPercent
	if input.ContingencyPercent != nil {
		contingency = *input.ContingencyPercent
	}

	m, preset := h.ref.Resolve(input.Multipliers, input.Preset)

	record := scenario.Record{
		ID:                 strings.TrimSpace(input.ID),
		Name:               name,
		FranchiseKey:       input.FranchiseKey,
		CityTier:           input.CityTier,
		Area:               estimator.SanitizeArea(input.Area),
		EmployeeCount:      estimator.SanitizeEmployees(input.Employees),
		ContingencyPercent: contingency,
		Multipliers:        m,
	}

	saved, err := h.store.Upsert(ctx, record)
	if err != nil {
		if !scenario.IsWriteWarning(err) {
			return nil, err
		}
		h.logger.Warn("scenario kept in memory only", map[string]interface{}{
			"scenarioId": saved.ID,
			"error":      err.Error(),
		})
		return &Output{Scenario: saved, Persisted: false, Warning: err.Error()}, nil
	}

	h.logger.Info("scenario saved", map[string]interface{}{
		"scenarioId":   saved.ID,
		"name":         saved.Name,
		"franchiseKey": saved.FranchiseKey,
		"preset":       preset,
	})

	return &Output{Scenario: saved, Persisted: true}, nil
}
