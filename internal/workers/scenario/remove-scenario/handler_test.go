// internal/workers/scenario/remove-scenario/handler_test.go
package removescenario

import (
	"context"
	"errors"
	"testing"

	apperrors "franchise-estimator/internal/common/errors"
	"franchise-estimator/internal/common/logger"
	"franchise-estimator/internal/reference"
	"franchise-estimator/internal/scenario"
	"franchise-estimator/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readOnlyStorage struct {
	*storage.Memory
}

func (readOnlyStorage) Set(context.Context, string, []byte) error {
	return errors.New("read-only replica")
}

func createTestHandler(t *testing.T, st storage.Storage) (*Handler, *scenario.Store) {
	log := logger.NewTestLogger(t)
	store := scenario.NewStore(st, log, scenario.WithIDGenerator(&scenario.CounterIDGenerator{}))
	return NewHandler(LoadConfig(), store, log), store
}

func seed(t *testing.T, store *scenario.Store, names ...string) []scenario.Record {
	t.Helper()
	var out []scenario.Record
	for _, name := range names {
		r, err := store.Upsert(context.Background(), scenario.Record{
			Name:         name,
			FranchiseKey: "Clothing Store",
			CityTier:     reference.CityBig,
			Multipliers:  reference.Identity(),
		})
		require.NoError(t, err)
		out = append(out, r)
	}
	return out
}

func TestHandler_Execute_RemovesScenario(t *testing.T) {
	h, store := createTestHandler(t, storage.NewMemory())
	saved := seed(t, store, "One", "Two")

	out, err := h.Execute(context.Background(), &Input{ID: saved[0].ID})
	require.NoError(t, err)
	assert.True(t, out.Persisted)
	assert.Equal(t, 1, out.Remaining)

	list, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Two", list[0].Name)
}

func TestHandler_Execute_UnknownIDIsNoop(t *testing.T) {
	h, store := createTestHandler(t, storage.NewMemory())
	seed(t, store, "One")

	out, err := h.Execute(context.Background(), &Input{ID: "sc_nothere"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Remaining)
}

func TestHandler_Execute_IDRequired(t *testing.T) {
	h, _ := createTestHandler(t, storage.NewMemory())

	_, err := h.Execute(context.Background(), &Input{ID: "  "})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeUserInputRequired))
}

func TestHandler_Execute_WriteFailureIsWarning(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(context.Background(), scenario.DefaultStorageKey,
		[]byte(`[{"id":"sc_1","name":"One"},{"id":"sc_2","name":"Two"}]`)))
	h, _ := createTestHandler(t, readOnlyStorage{Memory: mem})

	out, err := h.Execute(context.Background(), &Input{ID: "sc_1"})
	require.NoError(t, err)
	assert.False(t, out.Persisted)
	assert.NotEmpty(t, out.Warning)
	assert.Equal(t, 1, out.Remaining)
}
