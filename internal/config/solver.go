package config

import (
	"fmt"
	"time"

	"github.com/limaJavier/regatta/pkg/model"
	"github.com/limaJavier/regatta/pkg/sat"
	"github.com/samber/lo"
)

// SolverConfig selects how schedules are searched.
type SolverConfig struct {
	// Strategy is "embedded" or "postponed".
	Strategy string `json:"strategy"`
	// Backend names the SAT solver, "gini" runs in process.
	Backend        string `json:"backend"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	// Binaries overrides the executable path per external backend.
	Binaries map[string]string `json:"binaries"`
}

// SetDefaults applies sane defaults.
func (c *SolverConfig) SetDefaults() {
	if c.Strategy == "" {
		c.Strategy = model.StrategyEmbedded.String()
	}
	if c.Backend == "" {
		c.Backend = sat.GiniBackend
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = int(model.DefaultTimeout.Seconds())
	}
}

// Validate checks mandatory fields.
func (c SolverConfig) Validate() error {
	if _, err := model.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	if !lo.Contains(sat.Backends(), c.Backend) {
		return fmt.Errorf("unknown backend %q, allowed values are %v", c.Backend, sat.Backends())
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative: %d", c.TimeoutSeconds)
	}
	return nil
}

func (c SolverConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
