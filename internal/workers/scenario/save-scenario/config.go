// internal/workers/scenario/save-scenario/config.go
package savescenario

import "time"

type Config struct {
	Timeout                   time.Duration
	DefaultContingencyPercent float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:                   15 * time.Second,
		DefaultContingencyPercent: 10,
	}
}
