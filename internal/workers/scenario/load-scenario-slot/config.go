// internal/workers/scenario/load-scenario-slot/config.go
package loadscenarioslot

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{Timeout: 10 * time.Second}
}
