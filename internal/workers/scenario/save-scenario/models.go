// internal/workers/scenario/save-scenario/models.go
package savescenario

import (
	"franchise-estimator/internal/reference"
	"franchise-estimator/internal/scenario"
)

type Input struct {
	ID                 string                         `json:"scenarioId,omitempty"`
	Name               string                         `json:"name"`
	FranchiseKey       string                         `json:"franchiseKey"`
	CityTier           reference.CityTier             `json:"cityTier"`
	Area               float64                        `json:"area"`
	Employees          float64                        `json:"employees"`
	ContingencyPercent *float64                       `json:"contingencyPercent,omitempty"`
	Preset             string                         `json:"preset,omitempty"`
	Multipliers        *reference.CategoryMultipliers `json:"categoryMultipliers,omitempty"`
}

// Output reports the saved record. Persisted is false when the record is
// only held in memory because the backend rejected the write.
type Output struct {
	Scenario  scenario.Record `json:"scenario"`
	Persisted bool            `json:"persisted"`
	Warning   string          `json:"warning,omitempty"`
}
