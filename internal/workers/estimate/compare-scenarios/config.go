// internal/workers/estimate/compare-scenarios/config.go
package comparescenarios

import "time"

type Config struct {
	Timeout time.Duration
	// ContingencyPercent is used for every column when the job omits it.
	ContingencyPercent float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:            10 * time.Second,
		ContingencyPercent: 10,
	}
}
