package sat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrTimeout is returned by a solver whose budget ran out before it could prove
// either satisfiability or unsatisfiability.
var ErrTimeout = errors.New("solver budget exhausted")

// SATSolution holds one signed literal per variable (positive when the variable is true)
type SATSolution []int64

// SAT is a CNF instance. Variables are numbered from 1 to Variables as in DIMACS.
type SAT struct {
	Variables uint64
	Clauses   [][]int64
}

type SATSolver interface {
	// Returns a solution of the SAT instance if satisfiable, else returns nil (both are valid outputs where error shall be nil).
	// When ctx expires before the instance is decided the returned error wraps ErrTimeout.
	Solve(ctx context.Context, sat SAT) (SATSolution, error)
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	_ = s.WriteDIMACS(&builder) // strings.Builder never fails
	return builder.String()
}

// WriteDIMACS streams the instance in DIMACS-CNF format
func (s SAT) WriteDIMACS(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", s.Variables, len(s.Clauses)); err != nil {
		return err
	}
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			if _, err := fmt.Fprintf(w, "%d ", literal); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "0\n"); err != nil {
			return err
		}
	}
	return nil
}

// Value reports whether variable is true in the solution. Variables missing from the solution are false.
func (solution SATSolution) Value(variable int64) bool {
	for _, literal := range solution {
		if literal == variable {
			return true
		} else if literal == -variable {
			return false
		}
	}
	return false
}

// Assignment indexes the solution by variable for constant-time lookups
func (solution SATSolution) Assignment() map[int64]bool {
	assignment := make(map[int64]bool, len(solution))
	for _, literal := range solution {
		if literal > 0 {
			assignment[literal] = true
		} else if literal < 0 {
			assignment[-literal] = false
		}
	}
	return assignment
}

// Satisfies checks that the solution is consistent (no duplicated nor contradicting literals) and satisfies every clause
func (s SAT) Satisfies(solution SATSolution) bool {
	literals := make(map[int64]bool)
	for _, literal := range solution {
		if literals[literal] || literals[-literal] {
			return false
		}
		literals[literal] = true
	}

	for _, clause := range s.Clauses {
		satisfied := false
		for _, literal := range clause {
			if literals[literal] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}
