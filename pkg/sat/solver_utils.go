package sat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Exit-codes shared by SAT-competition solvers
const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
)

// parseSolution extracts the assignment from the "v" lines of a competition-format output
func parseSolution(solverOutput string) (SATSolution, error) {
	fields := lo.FlatMap(
		lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
			return len(line) > 0 && line[0] == 'v'
		}),
		func(line string, _ int) []string {
			return strings.Fields(line[1:])
		},
	)
	return parseLiterals(fields)
}

// parseSolutionFile extracts the assignment from a minisat-style result file ("SAT" header followed by the literals)
func parseSolutionFile(solverOutput string) (SATSolution, error) {
	fields := lo.Reject(strings.Fields(solverOutput), func(field string, _ int) bool {
		return field == "SAT" || field == "UNSAT" || field == "INDET"
	})
	return parseLiterals(fields)
}

func parseLiterals(fields []string) (SATSolution, error) {
	solution := make(SATSolution, 0, len(fields))
	for _, field := range fields {
		literal, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid literal in solver output: %w", err)
		}
		if literal == 0 { // Terminator
			continue
		}
		solution = append(solution, literal)
	}
	return solution, nil
}
