package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// PriorityRule tells how a boat class relates to the morning cutoff
type PriorityRule int

const (
	PriorityNone      PriorityRule = iota // Unconstrained
	PriorityHard                          // Every heat must start before the cutoff
	PriorityIndicator                     // A before-cutoff indicator is computed and reported but never enforced
)

var priorityNames = map[PriorityRule]string{
	PriorityNone:      "none",
	PriorityHard:      "hard",
	PriorityIndicator: "indicator",
}

func ParsePriorityRule(name string) (PriorityRule, error) {
	rule, ok := lo.FindKey(priorityNames, strings.ToLower(name))
	if !ok {
		return 0, fmt.Errorf("unknown priority rule %q, allowed values are %v", name, lo.Values(priorityNames))
	}
	return rule, nil
}

func (rule PriorityRule) String() string {
	return priorityNames[rule]
}

const (
	DefaultLanes   = 5
	DefaultStart   = 8 * 60
	DefaultEnd     = 17 * 60
	DefaultCadence = 8
	DefaultCutoff  = 12 * 60
	DefaultTimeout = 60 * time.Second
)

// DefaultPriorities keeps single sculls in the morning and tracks doubles and pairs without enforcing it
func DefaultPriorities() map[string]PriorityRule {
	return map[string]PriorityRule{
		"1x": PriorityHard,
		"2x": PriorityIndicator,
		"2-": PriorityIndicator,
	}
}

type Settings struct {
	Lanes      int                     // Lanes on the course
	Start, End int                     // Minutes of day bounding every start time
	Cadence    int                     // Minutes between consecutive heats, also the time a heat holds its lanes
	Cutoff     int                     // Minute of day the priority rules refer to
	Priorities map[string]PriorityRule // Rule per boat class, classes not present are unconstrained
	Ordering   Ordering
	Timeout    time.Duration // Solver budget, zero means unbounded
}

func DefaultSettings() Settings {
	return Settings{
		Lanes:      DefaultLanes,
		Start:      DefaultStart,
		End:        DefaultEnd,
		Cadence:    DefaultCadence,
		Cutoff:     DefaultCutoff,
		Priorities: DefaultPriorities(),
		Ordering:   OrderLexicographic,
		Timeout:    DefaultTimeout,
	}
}

func (settings Settings) Priority(class string) PriorityRule {
	return settings.Priorities[class]
}

func (settings Settings) Validate() error {
	var errs []error
	if settings.Lanes < 1 {
		errs = append(errs, fmt.Errorf("lanes must be positive: %d", settings.Lanes))
	}
	if settings.Start < 0 || settings.End >= 24*60 {
		errs = append(errs, fmt.Errorf("time window [%v, %v] exceeds the day", settings.Start, settings.End))
	}
	if settings.Start >= settings.End {
		errs = append(errs, fmt.Errorf("start %v must precede end %v", FormatClock(settings.Start), FormatClock(settings.End)))
	}
	if settings.Cadence < 1 {
		errs = append(errs, fmt.Errorf("cadence must be positive: %d", settings.Cadence))
	}
	if settings.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative: %v", settings.Timeout))
	}
	if _, ok := orderingNames[settings.Ordering]; !ok {
		errs = append(errs, fmt.Errorf("unknown heat ordering %d", settings.Ordering))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return nil
}

// ParseClock reads "HH:MM" as minutes of day
func ParseClock(clock string) (int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(clock, "%d:%d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", clock, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid clock %q: out of range", clock)
	}
	return hours*60 + minutes, nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
