package config

import "time"

// Default values for configuration.
const (
	DefaultCooldown       = 60 * time.Second
	DefaultZThreshold     = 3.0
	DefaultMinSamples     = 30
	DefaultChannelTimeout = 10 * time.Second
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogSources: []string{},
		Rules:      []RuleConfig{},
	}
}
