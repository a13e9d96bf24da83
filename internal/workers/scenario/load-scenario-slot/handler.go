// internal/workers/scenario/load-scenario-slot/handler.go
package loadscenarioslot

import (
	"context"
	"encoding/json"
	"strings"

	"franchise-estimator/internal/common/camunda"
	apperrors "franchise-estimator/internal/common/errors"
	"franchise-estimator/internal/common/logger"
	"franchise-estimator/internal/comparison"
	"franchise-estimator/internal/reference"
	"franchise-estimator/internal/scenario"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "load-scenario-slot"
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

// Execute copies a saved scenario into a comparison slot. The slot keeps the
// scenario's own multipliers and is tagged custom.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, apperrors.NewUserInputRequiredError("scenarioId", "choose a saved scenario")
	}

	idx, ok := comparison.SlotIndex(input.Slot)
	if !ok {
		return nil, apperrors.NewUserInputRequiredError("slot", "slot must be A, B or C")
	}

	r, err := h.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	m := r.Multipliers.WithDefaults()
	out := &Output{
		ScenarioID: r.ID,
		SlotIndex:  idx,
		Slot: comparison.Slot{
			Name:        comparison.SlotNames[idx],
			Preset:      reference.PresetCustom,
			Multipliers: &m,
		},
		Shared: comparison.SharedInputs{
			FranchiseKey:       r.FranchiseKey,
			CityTier:           r.CityTier,
			Area:               r.Area,
			EmployeeCount:      r.EmployeeCount,
			ContingencyPercent: r.ContingencyPercent,
		},
	}

	h.logger.Info("scenario loaded into slot", map[string]interface{}{
		"scenarioId": r.ID,
		"slot":       out.Slot.Name,
	})
	return out, nil
}
