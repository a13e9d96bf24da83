// test/e2e/journey_test.go
package e2e

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"franchise-estimator/internal/common/config"
	"franchise-estimator/internal/common/logger"
	"franchise-estimator/internal/comparison"
	"franchise-estimator/internal/estimator"
	"franchise-estimator/internal/reference"
	"franchise-estimator/internal/scenario"
	"franchise-estimator/internal/storage"

	comparescenarios "franchise-estimator/internal/workers/estimate/compare-scenarios"
	computeestimate "franchise-estimator/internal/workers/estimate/compute-estimate"
	applypreset "franchise-estimator/internal/workers/scenario/apply-preset"
	listscenarios "franchise-estimator/internal/workers/scenario/list-scenarios"
	loadscenarioslot "franchise-estimator/internal/workers/scenario/load-scenario-slot"
	removescenario "franchise-estimator/internal/workers/scenario/remove-scenario"
	savescenario "franchise-estimator/internal/workers/scenario/save-scenario"
)

// TestEnvironment holds the wired services for one journey.
type TestEnvironment struct {
	Config    *config.Config
	Logger    logger.Logger
	Reference *reference.Data
	Backend   storage.Backend
	Store     *scenario.Store
	Calc      *estimator.Calculator
	Assembler *comparison.Assembler
}

func setupTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	mr := miniredis.RunT(t)

	cfg := &config.Config{
		Storage: config.StorageConfig{
			Backend: config.BackendRedis,
			Key:     "franchise_saved_scenarios",
		},
		Database: config.DatabaseConfig{
			Redis: config.RedisConfig{Address: mr.Addr()},
		},
		Estimator: config.EstimatorConfig{IDPrefix: "sc"},
	}

	log := logger.NewTestLogger(t)
	backend, err := storage.New(context.Background(), cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	ref := reference.Default()
	calc := estimator.NewCalculator(ref, estimator.WithStrictCityTier(cfg.Estimator.StrictCityTier))

	return &TestEnvironment{
		Config:    cfg,
		Logger:    log,
		Reference: ref,
		Backend:   backend,
		Store:     newStore(cfg, backend, log),
		Calc:      calc,
		Assembler: comparison.NewAssembler(calc, log),
	}
}

func newStore(cfg *config.Config, backend storage.Storage, log logger.Logger) *scenario.Store {
	return scenario.NewStore(backend, log,
		scenario.WithKey(cfg.Storage.Key),
		scenario.WithIDPrefix(cfg.Estimator.IDPrefix),
	)
}

// decode runs variables through the same JSON path Zeebe uses.
func decode(t *testing.T, vars string, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(vars), into))
}

func TestScenarioJourney(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E journey in short mode")
	}

	env := setupTestEnvironment(t)
	ctx := context.Background()

	compute := computeestimate.NewHandler(computeestimate.LoadConfig(), env.Calc, env.Logger)
	compare := comparescenarios.NewHandler(comparescenarios.LoadConfig(), env.Assembler, env.Logger)
	save := savescenario.NewHandler(savescenario.LoadConfig(), env.Store, env.Reference, env.Logger)
	list := listscenarios.NewHandler(listscenarios.LoadConfig(), env.Store, env.Logger)
	remove := removescenario.NewHandler(removescenario.LoadConfig(), env.Store, env.Logger)
	load := loadscenarioslot.NewHandler(loadscenarioslot.LoadConfig(), env.Store, env.Logger)
	preset := applypreset.NewHandler(applypreset.LoadConfig(), env.Reference, env.Logger)

	// 1. Estimate the form values.
	var estIn computeestimate.Input
	decode(t, `{"franchiseKey":"Coffee Shop","cityTier":"regional","area":50,"employees":3,"contingencyPercent":10}`, &estIn)
	est, err := compute.Execute(ctx, &estIn)
	require.NoError(t, err)
	assert.Equal(t, 99000.0, est.Total)

	// 2. Save two scenarios.
	var saveIn savescenario.Input
	decode(t, `{"name":"Downtown","franchiseKey":"Coffee Shop","cityTier":"capital","area":70,"employees":5,"contingencyPercent":12,"preset":"extended"}`, &saveIn)
	downtown, err := save.Execute(ctx, &saveIn)
	require.NoError(t, err)
	require.True(t, downtown.Persisted)

	saveIn = savescenario.Input{}
	decode(t, `{"name":"Suburb","franchiseKey":"Coffee Shop","cityTier":"small","area":40,"employees":2}`, &saveIn)
	suburb, err := save.Execute(ctx, &saveIn)
	require.NoError(t, err)

	listed, err := list.Execute(ctx, &listscenarios.Input{})
	require.NoError(t, err)
	require.Equal(t, 2, listed.Count)
	assert.Equal(t, "Downtown", listed.Scenarios[0].Name)

	// 3. A fresh process sees the same list.
	reopened, err := newStore(env.Config, env.Backend, env.Logger).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, listed.Scenarios, reopened)

	// 4. Load a saved scenario into slot C and premium into slot B.
	loaded, err := load.Execute(ctx, &loadscenarioslot.Input{ID: downtown.Scenario.ID, Slot: "C"})
	require.NoError(t, err)
	assert.Equal(t, reference.PresetCustom, loaded.Slot.Preset)

	applied, err := preset.Execute(ctx, &applypreset.Input{Preset: reference.PresetPremium, Targets: []string{"B"}})
	require.NoError(t, err)
	require.True(t, applied.Applied)

	slots := applied.Slots
	slots[loaded.SlotIndex] = loaded.Slot

	contingency := loaded.Shared.ContingencyPercent
	cmp, err := compare.Execute(ctx, &comparescenarios.Input{
		FranchiseKey:       loaded.Shared.FranchiseKey,
		CityTier:           loaded.Shared.CityTier,
		Area:               loaded.Shared.Area,
		Employees:          float64(loaded.Shared.EmployeeCount),
		ContingencyPercent: &contingency,
		Slots:              slots,
	})
	require.NoError(t, err)
	require.Len(t, cmp.Comparison.Columns, 3)

	// Slot C reproduces the saved scenario exactly.
	want, err := env.Calc.Compute(downtown.Scenario.Input())
	require.NoError(t, err)
	assert.Equal(t, want.Total, cmp.Comparison.Columns[2].Breakdown.Total)
	assert.Equal(t, reference.PresetPremium, cmp.Comparison.Columns[1].Preset)

	// 5. Remove one scenario; the other survives a reload.
	removed, err := remove.Execute(ctx, &removescenario.Input{ID: downtown.Scenario.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, removed.Remaining)

	listed, err = list.Execute(ctx, &listscenarios.Input{Reload: true})
	require.NoError(t, err)
	require.Equal(t, 1, listed.Count)
	assert.Equal(t, suburb.Scenario.ID, listed.Scenarios[0].ID)
}
