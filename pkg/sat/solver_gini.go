package sat

import (
	"context"
	"fmt"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

type giniSolver struct{}

// NewGiniSolver returns an in-process CDCL solver, so no external binary is required
func NewGiniSolver() SATSolver {
	return &giniSolver{}
}

func (solver *giniSolver) Solve(ctx context.Context, sat SAT) (SATSolution, error) {
	g := gini.New()

	var maxVariable int64
	for _, clause := range sat.Clauses {
		if len(clause) == 0 { // The empty clause cannot be satisfied
			return nil, nil
		}
		for _, literal := range clause {
			g.Add(z.Dimacs2Lit(int(literal)))
			if literal > maxVariable {
				maxVariable = literal
			} else if -literal > maxVariable {
				maxVariable = -literal
			}
		}
		g.Add(0) // Clause terminator
	}

	var result int
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("gini: %w", ErrTimeout)
		}
		solve := g.GoSolve()
		if result = solve.Try(remaining); result == 0 {
			solve.Stop() // Release the background search
		}
	} else {
		result = g.Solve()
	}

	switch result {
	case 1:
		solution := make(SATSolution, 0, sat.Variables)
		for variable := int64(1); variable <= int64(sat.Variables); variable++ {
			// Variables that never appear in a clause are unconstrained and reported as false
			if variable <= maxVariable && g.Value(z.Dimacs2Lit(int(variable))) {
				solution = append(solution, variable)
			} else {
				solution = append(solution, -variable)
			}
		}
		return solution, nil
	case -1:
		return nil, nil
	default:
		return nil, fmt.Errorf("gini: %w", ErrTimeout)
	}
}
