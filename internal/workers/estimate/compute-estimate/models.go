// internal/workers/estimate/compute-estimate/models.go
package computeestimate

import (
	"franchise-estimator/internal/estimator"
	"franchise-estimator/internal/reference"
)

// Input carries raw form values; area and employees are sanitized before the
// calculation.
type Input struct {
	FranchiseKey       string                         `json:"franchiseKey"`
	CityTier           reference.CityTier             `json:"cityTier"`
	Area               float64                        `json:"area"`
	Employees          float64                        `json:"employees"`
	ContingencyPercent *float64                       `json:"contingencyPercent,omitempty"`
	Preset             string                         `json:"preset,omitempty"`
	Multipliers        *reference.CategoryMultipliers `json:"categoryMultipliers,omitempty"`
}

type LineItem struct {
	Category estimator.Category `json:"category"`
	Label    string             `json:"label"`
	Amount   float64            `json:"amount"`
}

type Output struct {
	Input     estimator.Input     `json:"input"`
	Preset    string              `json:"preset"`
	Breakdown estimator.Breakdown `json:"breakdown"`
	LineItems []LineItem          `json:"lineItems"`
	Total     float64             `json:"total"`
}
