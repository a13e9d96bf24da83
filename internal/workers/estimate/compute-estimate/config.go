// internal/workers/estimate/compute-estimate/config.go
package computeestimate

import "time"

type Config struct {
	Timeout time.Duration
	// DefaultContingencyPercent applies when the job omits contingencyPercent.
	DefaultContingencyPercent float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:                   10 * time.Second,
		DefaultContingencyPercent: 10,
	}
}
