// internal/workers/scenario/apply-preset/models.go
package applypreset

import "franchise-estimator/internal/comparison"

type Input struct {
	Preset string `json:"preset"`
	// Targets lists slot letters to update; empty means every slot.
	Targets []string `json:"targets,omitempty"`
	// Slots is the current slot configuration, by position.
	Slots []comparison.Slot `json:"slots,omitempty"`
}

type Output struct {
	Applied bool              `json:"applied"`
	Preset  string            `json:"preset"`
	Slots   []comparison.Slot `json:"slots"`
}
