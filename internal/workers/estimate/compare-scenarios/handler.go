// internal/workers/estimate/compare-scenarios/handler.go
package comparescenarios

import (
	"context"
	"encoding/json"

	"franchise-estimator/internal/common/camunda"
	apperrors "franchise-estimator/internal/common/errors"
	"franchise-estimator/internal/common/logger"
	"franchise-estimator/internal/comparison"
	"franchise-estimator/internal/estimator"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "compare-scenarios"
)

type Handler struct {
	config       *Config
	assembler    *comparison.Assembler
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, assembler *comparison.Assembler, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		assembler:    assembler,
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

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	contingency := h.config.ContingencyPercent
	if input.ContingencyPercent != nil {
		contingency = *input.ContingencyPercent
	}

	shared := comparison.SharedInputs{
		FranchiseKey:       input.FranchiseKey,
		CityTier:           input.CityTier,
		Area:               estimator.SanitizeArea(input.Area),
		EmployeeCount:      estimator.SanitizeEmployees(input.Employees),
		ContingencyPercent: contingency,
	}

	result, err := h.assembler.Compare(shared, input.Slots)
	if err != nil {
		return nil, err
	}

	h.logger.Info("comparison assembled", map[string]interface{}{
		"franchiseKey": shared.FranchiseKey,
		"cityTier":     shared.CityTier,
		"columns":      len(result.Columns),
	})

	return &Output{Shared: shared, Comparison: result}, nil
}
