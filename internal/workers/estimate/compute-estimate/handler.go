// internal/workers/estimate/compute-estimate/handler.go
package computeestimate

import (
	"context"
	"encoding/json"

	"franchise-estimator/internal/common/camunda"
	apperrors "franchise-estimator/internal/common/errors"
	"franchise-estimator/internal/common/logger"
	"franchise-estimator/internal/common/metrics"
	"franchise-estimator/internal/estimator"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "compute-estimate"
)

type Handler struct {
	config       *Config
	calc         *estimator.Calculator
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, calc *estimator.Calculator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		calc:         calc,
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
	contingency := h.config.DefaultContingencyPercent
	if input.ContingencyPercent != nil {
		contingency = *input.ContingencyPercent
	}

	m, preset := h.calc.Reference().Resolve(input.Multipliers, input.Preset)
	in := estimator.Input{
		FranchiseKey:       input.FranchiseKey,
		CityTier:           input.CityTier,
		Area:               estimator.SanitizeArea(input.Area),
		EmployeeCount:      estimator.SanitizeEmployees(input.Employees),
		ContingencyPercent: contingency,
		Multipliers:        m,
	}

	b, err := h.calc.Compute(in)
	if err != nil {
		return nil, err
	}

	for _, w := range b.Warnings {
		h.logger.Warn("estimate computed with warning", map[string]interface{}{
			"code":    w.Code,
			"details": w.Details,
		})
	}

	display := b.Rounded()
	items := make([]LineItem, 0, len(estimator.Categories))
	for _, c := range estimator.Categories {
		items = append(items, LineItem{Category: c, Label: c.Label(), Amount: display.Value(c)})
	}

	metrics.EstimatesComputed.WithLabelValues(in.FranchiseKey, string(in.CityTier)).Inc()
	metrics.EstimateTotals.WithLabelValues(in.FranchiseKey).Observe(b.Total)

	h.logger.Info("estimate computed", map[string]interface{}{
		"franchiseKey": in.FranchiseKey,
		"cityTier":     in.CityTier,
		"area":         in.Area,
		"employees":    in.EmployeeCount,
		"preset":       preset,
		"total":        b.Total,
	})

	return &Output{
		Input:     in,
		Preset:    preset,
		Breakdown: *b,
		LineItems: items,
		Total:     b.Total,
	}, nil
}
