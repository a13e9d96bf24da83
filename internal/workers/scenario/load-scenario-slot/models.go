// internal/workers/scenario/load-scenario-slot/models.go
package loadscenarioslot

import "franchise-estimator/internal/comparison"

type Input struct {
	ID   string `json:"scenarioId"`
	Slot string `json:"slot"`
}

// Output carries the slot configuration and the shared form values of the
// loaded scenario. The process overwrites its shared inputs with Shared.
type Output struct {
	ScenarioID string                  `json:"scenarioId"`
	SlotIndex  int                     `json:"slotIndex"`
	Slot       comparison.Slot         `json:"slot"`
	Shared     comparison.SharedInputs `json:"shared"`
}
