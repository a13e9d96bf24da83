// pkg/catalog/schema.go
package catalog

import (
	_ "embed"

	"franchise-estimator/internal/reference"
)

//go:embed catalog.schema.json
var schemaJSON []byte

// Catalog is the on-disk form of the reference tables.
type Catalog struct {
	Version     string                                   `json:"version"`
	LastUpdated string                                   `json:"lastUpdated,omitempty"`
	Currency    string                                   `json:"currency,omitempty"`
	Franchises  []Franchise                              `json:"franchises"`
	CityTiers   map[reference.CityTier]float64           `json:"cityTiers"`
	Presets     map[string]reference.CategoryMultipliers `json:"presets"`
}

type Franchise struct {
	Key string `json:"key"`
	reference.FranchiseProfile
}
