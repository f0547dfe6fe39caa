package csp

import "context"

type Status int

const (
	Unknown    Status = iota // The budget ran out before feasibility was decided
	Infeasible               // The constraints admit no assignment
	Feasible
	Optimal // Without an objective every feasible assignment is optimal
)

var statusNames = map[Status]string{
	Unknown:    "unknown",
	Infeasible: "infeasible",
	Feasible:   "feasible",
	Optimal:    "optimal",
}

func (status Status) String() string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return "invalid"
}

// Solved reports whether the status carries an assignment
func (status Status) Solved() bool {
	return status == Feasible || status == Optimal
}

// Solution maps every variable of a solved model to a value within its domain
type Solution struct {
	ints  []int
	bools []bool
}

func NewSolution(ints []int, bools []bool) *Solution {
	return &Solution{ints: ints, bools: bools}
}

func (solution *Solution) Value(variable IntVar) int {
	return solution.ints[variable]
}

func (solution *Solution) BoolValue(variable BoolVar) bool {
	return solution.bools[variable]
}

type Result struct {
	Status   Status
	Solution *Solution // Only set when Status.Solved()

	// Size of the instance handed to the underlying engine
	Variables uint64
	Clauses   uint64
}

// Solver decides a Model within the deadline carried by ctx.
// Infeasible and Unknown outcomes are results, not errors; errors are reserved for engine failures.
type Solver interface {
	Solve(ctx context.Context, model *Model) (Result, error)
}
