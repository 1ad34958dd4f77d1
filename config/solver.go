package config

import (
	"fmt"
	"time"
)

// SolverConfig selects the backend and its parameters.
type SolverConfig struct {
	// Backend is the registered solver backend identifier.
	Backend string `json:"backend"`
	// BigM must strictly exceed every production value; the model builder
	// rejects it otherwise.
	BigM float64 `json:"big_m"`
	// TimeLimitSeconds bounds one solve attempt. Zero means unlimited.
	TimeLimitSeconds int `json:"time_limit_seconds"`
}

// SetDefaults applies sane defaults.
func (c *SolverConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "simplex"
	}
	if c.BigM == 0 {
		c.BigM = 1000
	}
}

// Validate checks mandatory fields.
func (c SolverConfig) Validate() error {
	if c.BigM <= 0 {
		return fmt.Errorf("big_m must be positive")
	}
	if c.TimeLimitSeconds < 0 {
		return fmt.Errorf("time_limit_seconds must not be negative")
	}
	return nil
}

// TimeLimit returns the configured limit as a duration.
func (c SolverConfig) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitSeconds) * time.Second
}
