// internal/workers/estimate/compare-scenarios/models.go
package comparescenarios

import (
	"franchise-estimator/internal/comparison"
	"franchise-estimator/internal/reference"
)

type Input struct {
	FranchiseKey       string             `json:"franchiseKey"`
	CityTier           reference.CityTier `json:"cityTier"`
	Area               float64            `json:"area"`
	Employees          float64            `json:"employees"`
	ContingencyPercent *float64           `json:"contingencyPercent,omitempty"`
	Slots              []comparison.Slot  `json:"slots,omitempty"`
}

type Output struct {
	Shared     comparison.SharedInputs `json:"shared"`
	Comparison *comparison.Result      `json:"comparison"`
}
