// internal/workers/scenario/apply-preset/handler.go
package applypreset

import (
	"context"
	"encoding/json"
	"strings"

	"franchise-estimator/internal/common/camunda"
	apperrors "franchise-estimator/internal/common/errors"
	"franchise-estimator/internal/common/logger"
	"franchise-estimator/internal/comparison"
	"franchise-estimator/internal/reference"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "apply-preset"
)

type Handler struct {
	config       *Config
	ref          *reference.Data
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, ref *reference.Data, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
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

// Execute sets the targeted slots to a named preset. An unknown preset leaves
// every slot unchanged and reports Applied false.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	if len(input.Slots) > comparison.MaxSlots {
		return nil, apperrors.NewTooManySlotsError(len(input.Slots), comparison.MaxSlots)
	}

	targets := make(map[int]bool)
	for _, t := range input.Targets {
		idx, ok := comparison.SlotIndex(t)
		if !ok {
			return nil, apperrors.NewUserInputRequiredError("targets", "slot must be A, B or C")
		}
		targets[idx] = true
	}

	slots := make([]comparison.Slot, comparison.MaxSlots)
	copy(slots, input.Slots)
	for i := range slots {
		if slots[i].Name == "" {
			slots[i].Name = comparison.SlotNames[i]
		}
	}

	preset := strings.ToLower(strings.TrimSpace(input.Preset))
	m, ok := h.ref.Preset(preset)
	if !ok {
		h.logger.Warn("ignoring unknown preset", map[string]interface{}{"preset": input.Preset})
		return &Output{Applied: false, Preset: input.Preset, Slots: slots}, nil
	}

	for i := range slots {
		if len(targets) > 0 && !targets[i] {
			continue
		}
		pm := m
		slots[i].Preset = preset
		slots[i].Multipliers = &pm
	}

	h.logger.Info("preset applied", map[string]interface{}{
		"preset":  preset,
		"targets": len(targets),
	})
	return &Output{Applied: true, Preset: preset, Slots: slots}, nil
}
