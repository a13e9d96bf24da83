// internal/workers/scenario/list-scenarios/config.go
package listscenarios

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{Timeout: 10 * time.Second}
}
