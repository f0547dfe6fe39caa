package csp

import (
	"context"
	"errors"
	"fmt"

	"github.com/limaJavier/regatta/pkg/sat"
)

type satBackedSolver struct {
	solver sat.SATSolver
}

// NewSATSolver solves models by encoding them into CNF and handing the instance to a SAT solver
func NewSATSolver(solver sat.SATSolver) Solver {
	return &satBackedSolver{solver: solver}
}

func (solver *satBackedSolver) Solve(ctx context.Context, model *Model) (Result, error) {
	model.submit()

	//** Build SAT instance
	encoder := newEncoder(model)
	instance, satisfiable := encoder.encode()
	result := Result{
		Variables: instance.Variables,
		Clauses:   uint64(len(instance.Clauses)),
	}
	if !satisfiable { // Proven while encoding, no need to reach the SAT solver
		result.Status = Infeasible
		return result, nil
	}

	//** Solve SAT instance
	solution, err := solver.solver.Solve(ctx, instance)
	if errors.Is(err, sat.ErrTimeout) {
		result.Status = Unknown
		return result, nil
	} else if err != nil {
		return result, fmt.Errorf("cannot solve SAT instance: %w", err)
	} else if solution == nil {
		result.Status = Infeasible
		return result, nil
	}

	result.Status = Optimal
	result.Solution = encoder.decode(solution)
	return result, nil
}
