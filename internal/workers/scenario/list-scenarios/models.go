// internal/workers/scenario/list-scenarios/models.go
package listscenarios

import "franchise-estimator/internal/scenario"

type Input struct {
	// Reload re-reads the backend before listing.
	Reload bool `json:"reload,omitempty"`
}

type Output struct {
	Scenarios []scenario.Record `json:"scenarios"`
	Count     int               `json:"count"`
}
