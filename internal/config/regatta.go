package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/limaJavier/regatta/pkg/model"
)

// RegattaConfig describes the course and the day. Clock values use "HH:MM".
type RegattaConfig struct {
	Lanes      int               `json:"lanes"`
	Start      string            `json:"start"`
	End        string            `json:"end"`
	Cadence    int               `json:"cadence"`
	Cutoff     string            `json:"cutoff"`
	Ordering   string            `json:"ordering"`
	Priorities map[string]string `json:"priorities"` // Boat class to "hard", "indicator" or "none"
}

// SetDefaults applies sane defaults.
func (c *RegattaConfig) SetDefaults() {
	if c.Lanes == 0 {
		c.Lanes = model.DefaultLanes
	}
	if c.Start == "" {
		c.Start = model.FormatClock(model.DefaultStart)
	}
	if c.End == "" {
		c.End = model.FormatClock(model.DefaultEnd)
	}
	if c.Cadence == 0 {
		c.Cadence = model.DefaultCadence
	}
	if c.Cutoff == "" {
		c.Cutoff = model.FormatClock(model.DefaultCutoff)
	}
	if c.Ordering == "" {
		c.Ordering = model.OrderLexicographic.String()
	}
	if c.Priorities == nil {
		c.Priorities = make(map[string]string)
		for class, rule := range model.DefaultPriorities() {
			c.Priorities[class] = rule.String()
		}
	}
}

// Merge overlays the non-zero fields of override.
func (c RegattaConfig) Merge(override RegattaConfig) RegattaConfig {
	if override.Lanes != 0 {
		c.Lanes = override.Lanes
	}
	if override.Start != "" {
		c.Start = override.Start
	}
	if override.End != "" {
		c.End = override.End
	}
	if override.Cadence != 0 {
		c.Cadence = override.Cadence
	}
	if override.Cutoff != "" {
		c.Cutoff = override.Cutoff
	}
	if override.Ordering != "" {
		c.Ordering = override.Ordering
	}
	if override.Priorities != nil {
		c.Priorities = override.Priorities
	}
	return c
}

// Validate checks that the section translates into valid model settings.
func (c RegattaConfig) Validate() error {
	_, err := c.Settings(0)
	return err
}

// Settings converts the section into model settings bounded by the given solver budget.
func (c RegattaConfig) Settings(timeout time.Duration) (model.Settings, error) {
	var errs []error
	settings := model.Settings{
		Lanes:      c.Lanes,
		Cadence:    c.Cadence,
		Priorities: make(map[string]model.PriorityRule, len(c.Priorities)),
		Timeout:    timeout,
	}

	var err error
	if settings.Start, err = model.ParseClock(c.Start); err != nil {
		errs = append(errs, fmt.Errorf("start: %w", err))
	}
	if settings.End, err = model.ParseClock(c.End); err != nil {
		errs = append(errs, fmt.Errorf("end: %w", err))
	}
	if settings.Cutoff, err = model.ParseClock(c.Cutoff); err != nil {
		errs = append(errs, fmt.Errorf("cutoff: %w", err))
	}
	if settings.Ordering, err = model.ParseOrdering(c.Ordering); err != nil {
		errs = append(errs, err)
	}
	for class, name := range c.Priorities {
		rule, err := model.ParsePriorityRule(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("priority of %v: %w", class, err))
			continue
		}
		settings.Priorities[class] = rule
	}
	if err := errors.Join(errs...); err != nil {
		return model.Settings{}, err
	}

	if err := settings.Validate(); err != nil {
		return model.Settings{}, err
	}
	return settings, nil
}
