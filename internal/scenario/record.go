// Package scenario persists named estimate configurations as one JSON array
// under a single storage key.
package scenario

import (
	"franchise-estimator/internal/estimator"
	"franchise-estimator/internal/reference"
)

// CurrentSchemaVersion is written on every saved record. Records persisted
// without a version are read as version 1.
const CurrentSchemaVersion = 1

// DefaultStorageKey is the key the saved list lives under.
const DefaultStorageKey = "franchise_saved_scenarios"

// Record is one saved scenario. The JSON layout is shared with existing
// saved lists and must stay stable.
type Record struct {
	ID                 string                        `json:"id"`
	Name               string                        `json:"name"`
	FranchiseKey       string                        `json:"franchiseKey"`
	CityTier           reference.CityTier            `json:"cityKey"`
	Area               float64                       `json:"area"`
	EmployeeCount      int                           `json:"employees"`
	ContingencyPercent float64                       `json:"contingencyPercent"`
	Multipliers        reference.CategoryMultipliers `json:"multipliers"`
	SchemaVersion      int                           `json:"schemaVersion,omitempty"`
}

// Input converts the record into a calculator request.
func (r Record) Input() estimator.Input {
	return estimator.Input{
		FranchiseKey:       r.FranchiseKey,
		CityTier:           r.CityTier,
		Area:               r.Area,
		EmployeeCount:      r.EmployeeCount,
		ContingencyPercent: r.ContingencyPercent,
		Multipliers:        r.Multipliers,
	}
}

func (r Record) version() int {
	if r.SchemaVersion == 0 {
		return 1
	}
	return r.SchemaVersion
}
