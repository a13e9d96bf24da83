// internal/workers/scenario/list-scenarios/handler_test.go
package listscenarios

import (
	"context"
	"encoding/json"
	"testing"

	"franchise-estimator/internal/common/logger"
	"franchise-estimator/internal/reference"
	"franchise-estimator/internal/scenario"
	"franchise-estimator/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T, st storage.Storage) (*Handler, *scenario.Store) {
	log := logger.NewTestLogger(t)
	store := scenario.NewStore(st, log, scenario.WithIDGenerator(&scenario.CounterIDGenerator{}))
	return NewHandler(LoadConfig(), store, log), store
}

func TestHandler_Execute_EmptyList(t *testing.T) {
	h, _ := createTestHandler(t, storage.NewMemory())

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Count)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"scenarios":[],"count":0}`, string(raw))
}

func TestHandler_Execute_ListsInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	h, store := createTestHandler(t, storage.NewMemory())

	for _, name := range []string{"Kiosk", "Mall", "Street"} {
		_, err := store.Upsert(ctx, scenario.Record{
			Name:         name,
			FranchiseKey: "Coffee Shop",
			CityTier:     reference.CityRegional,
			Multipliers:  reference.Identity(),
		})
		require.NoError(t, err)
	}

	out, err := h.Execute(ctx, &Input{})
	require.NoError(t, err)
	require.Equal(t, 3, out.Count)
	assert.Equal(t, "Kiosk", out.Scenarios[0].Name)
	assert.Equal(t, "Street", out.Scenarios[2].Name)
}

func TestHandler_Execute_Reload(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	h, _ := createTestHandler(t, st)

	out, err := h.Execute(ctx, &Input{})
	require.NoError(t, err)
	assert.Zero(t, out.Count)

	require.NoError(t, st.Set(ctx, scenario.DefaultStorageKey, []byte(`[{"id":"sc_abc1234","name":"Imported"}]`)))

	out, err = h.Execute(ctx, &Input{Reload: true})
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "Imported", out.Scenarios[0].Name)
}
