package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/limaJavier/regatta/pkg/csp"
	"github.com/samber/lo"
)

type Scheduler interface {
	// Build returns a nil schedule when the solver proves infeasibility or runs out of budget, Stats tells which
	Build(
		ctx context.Context,
		regatta Regatta,
		settings Settings,
	) (schedule *Schedule, stats Stats, err error)

	Verify(
		schedule *Schedule,
		regatta Regatta,
		settings Settings,
	) bool
}

// Strategy selects where lane assignment happens
type Strategy int

const (
	StrategyEmbedded  Strategy = iota // Lane variables are part of the model
	StrategyPostponed                 // The model only times heats, lanes are matched afterwards
)

var strategyNames = map[Strategy]string{
	StrategyEmbedded:  "embedded",
	StrategyPostponed: "postponed",
}

func ParseStrategy(name string) (Strategy, error) {
	strategy, ok := lo.FindKey(strategyNames, strings.ToLower(name))
	if !ok {
		return 0, fmt.Errorf("unknown strategy %q, allowed values are %v", name, lo.Values(strategyNames))
	}
	return strategy, nil
}

func (strategy Strategy) String() string {
	return strategyNames[strategy]
}

func NewScheduler(strategy Strategy, solver csp.Solver) (Scheduler, error) {
	switch strategy {
	case StrategyEmbedded:
		return NewEmbeddedLaneScheduler(solver), nil
	case StrategyPostponed:
		return NewPostponedLaneScheduler(solver), nil
	default:
		return nil, fmt.Errorf("unknown strategy %d", strategy)
	}
}

type Stats struct {
	Status    csp.Status
	Variables uint64 // SAT variables of the encoded model
	Clauses   uint64
	Heats     int
	Boats     int
	Duration  time.Duration
	Budget    time.Duration
}

// Diagnostic is the operator-facing explanation of the outcome
func (stats Stats) Diagnostic() string {
	switch stats.Status {
	case csp.Optimal, csp.Feasible:
		return fmt.Sprintf("scheduled %d heats and %d boats in %v", stats.Heats, stats.Boats, stats.Duration.Round(time.Millisecond))
	case csp.Infeasible:
		return fmt.Sprintf(
			"no feasible schedule: %d heats cannot fit the constraints, relax the inputs (more lanes, a wider time window or fewer heats)",
			stats.Heats,
		)
	default:
		if stats.Budget > 0 {
			return fmt.Sprintf("no feasible schedule found within the %v budget, retry with a larger budget", stats.Budget)
		}
		return "no feasible schedule found before the solver stopped, retry with a larger budget"
	}
}
