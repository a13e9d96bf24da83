// internal/workers/scenario/load-scenario-slot/handler_test.go
package loadscenarioslot

import (
	"context"
	"testing"

	apperrors "franchise-estimator/internal/common/errors"
	"franchise-estimator/internal/common/logger"
	"franchise-estimator/internal/reference"
	"franchise-estimator/internal/scenario"
	"franchise-estimator/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T) (*Handler, scenario.Record) {
	log := logger.NewTestLogger(t)
	store := scenario.NewStore(storage.NewMemory(), log, scenario.WithIDGenerator(&scenario.CounterIDGenerator{}))

	saved, err := store.Upsert(context.Background(), scenario.Record{
		Name:               "Mall corner",
		FranchiseKey:       "Service Center",
		CityTier:           reference.CityCapital,
		Area:               45,
		EmployeeCount:      3,
		ContingencyPercent: 12,
		Multipliers:        reference.CategoryMultipliers{Renovation: 1.3, Equipment: 1, Furniture: 1, Marketing: 1.6, Salary: 1},
	})
	require.NoError(t, err)

	return NewHandler(LoadConfig(), store, log), saved
}

func TestHandler_Execute_LoadsIntoSlot(t *testing.T) {
	h, saved := createTestHandler(t)

	for slot, idx := range map[string]int{"A": 0, "b": 1, "C": 2} {
		out, err := h.Execute(context.Background(), &Input{ID: saved.ID, Slot: slot})
		require.NoError(t, err, slot)

		assert.Equal(t, idx, out.SlotIndex)
		assert.Equal(t, reference.PresetCustom, out.Slot.Preset)
		require.NotNil(t, out.Slot.Multipliers)
		assert.Equal(t, saved.Multipliers, *out.Slot.Multipliers)
		assert.Equal(t, "Service Center", out.Shared.FranchiseKey)
		assert.Equal(t, reference.CityCapital, out.Shared.CityTier)
		assert.Equal(t, 45.0, out.Shared.Area)
		assert.Equal(t, 3, out.Shared.EmployeeCount)
		assert.Equal(t, 12.0, out.Shared.ContingencyPercent)
	}
}

func TestHandler_Execute_Errors(t *testing.T) {
	h, saved := createTestHandler(t)

	tests := []struct {
		name  string
		input Input
		code  apperrors.ErrorCode
	}{
		{name: "missing id", input: Input{Slot: "A"}, code: apperrors.ErrCodeUserInputRequired},
		{name: "bad slot", input: Input{ID: saved.ID, Slot: "D"}, code: apperrors.ErrCodeUserInputRequired},
		{name: "missing slot", input: Input{ID: saved.ID}, code: apperrors.ErrCodeUserInputRequired},
		{name: "unknown scenario", input: Input{ID: "sc_gone", Slot: "A"}, code: apperrors.ErrCodeScenarioNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), &tt.input)
			assert.Nil(t, out)
			assert.True(t, apperrors.Is(err, tt.code), "got %v", err)
		})
	}
}
