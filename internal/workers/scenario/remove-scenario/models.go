// internal/workers/scenario/remove-scenario/models.go
package removescenario

type Input struct {
	ID string `json:"scenarioId"`
}

type Output struct {
	ID        string `json:"scenarioId"`
	Remaining int    `json:"remaining"`
	Persisted bool   `json:"persisted"`
	Warning   string `json:"warning,omitempty"`
}
