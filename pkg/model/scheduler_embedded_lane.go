package model

import (
	"context"
	"time"

	"github.com/limaJavier/regatta/pkg/csp"
)

type embeddedLaneScheduler struct {
	solver csp.Solver
}

// NewEmbeddedLaneScheduler solves timing and lanes within a single model
func NewEmbeddedLaneScheduler(solver csp.Solver) Scheduler {
	return &embeddedLaneScheduler{
		solver: solver,
	}
}

func (scheduler *embeddedLaneScheduler) Build(ctx context.Context, regatta Regatta, settings Settings) (*Schedule, Stats, error) {
	started := time.Now()
	stats := newStats(regatta, settings)

	//** Validate input
	if err := validate(regatta, settings); err != nil {
		return nil, finish(stats, started), err
	}

	//** Build model
	model := csp.NewModel()
	state := declareVariables(model, regatta, settings, true)

	// Constraints functions
	constraints := []func(state constraintState) []csp.Constraint{
		anchorConstraints,
		cadenceConstraints,
		capacityConstraints,
		priorityConstraints,
		laneConstraints,
	}
	buildModel(model, constraints, state)

	//** Solve model
	solution, err := solveModel(ctx, scheduler.solver, model, settings, &stats)
	if err != nil {
		return nil, finish(stats, started), err
	} else if solution == nil { // Return nil if no schedule was found
		return nil, finish(stats, started), nil
	}

	return extractSchedule(regatta, state, solution), finish(stats, started), nil
}

func (scheduler *embeddedLaneScheduler) Verify(schedule *Schedule, regatta Regatta, settings Settings) bool {
	return verify(schedule, regatta, settings)
}
