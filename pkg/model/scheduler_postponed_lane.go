package model

import (
	"context"
	"time"

	"github.com/limaJavier/regatta/pkg/csp"
)

type postponedLaneScheduler struct {
	solver csp.Solver
}

// NewPostponedLaneScheduler solves timing only and assigns lanes per heat once start times are known
func NewPostponedLaneScheduler(solver csp.Solver) Scheduler {
	return &postponedLaneScheduler{
		solver: solver,
	}
}

func (scheduler *postponedLaneScheduler) Build(ctx context.Context, regatta Regatta, settings Settings) (*Schedule, Stats, error) {
	started := time.Now()
	stats := newStats(regatta, settings)

	//** Validate input
	if err := validate(regatta, settings); err != nil {
		return nil, finish(stats, started), err
	}

	//** Build model
	model := csp.NewModel()
	state := declareVariables(model, regatta, settings, false)

	// Constraints functions
	constraints := []func(state constraintState) []csp.Constraint{
		anchorConstraints,
		cadenceConstraints,
		capacityConstraints,
		priorityConstraints,
	}
	buildModel(model, constraints, state)

	//** Solve model
	solution, err := solveModel(ctx, scheduler.solver, model, settings, &stats)
	if err != nil {
		return nil, finish(stats, started), err
	} else if solution == nil { // Return nil if no schedule was found
		return nil, finish(stats, started), nil
	}

	schedule := extractSchedule(regatta, state, solution)
	if err := laneAssignment(schedule, regatta); err != nil {
		return nil, finish(stats, started), err
	}
	return schedule, finish(stats, started), nil
}

func (scheduler *postponedLaneScheduler) Verify(schedule *Schedule, regatta Regatta, settings Settings) bool {
	return verify(schedule, regatta, settings)
}
