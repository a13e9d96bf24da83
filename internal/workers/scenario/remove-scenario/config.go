// internal/workers/scenario/remove-scenario/config.go
package removescenario

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{Timeout: 15 * time.Second}
}
