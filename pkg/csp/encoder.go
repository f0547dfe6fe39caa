package csp

import (
	"github.com/limaJavier/regatta/pkg/sat"
	"github.com/samber/lo"
)

// encoder translates a Model into CNF using the order encoding: an integer x in [min, max]
// is represented by the propositions "x <= v" for v in [min, max-1]
type encoder struct {
	model         *Model
	indexer       *orderIndexer
	clauses       [][]int64
	next          int64 // Last allocated SAT variable
	unsatisfiable bool  // An empty clause was derived while encoding
}

func newEncoder(model *Model) *encoder {
	indexer := newOrderIndexer(model)
	return &encoder{
		model:   model,
		indexer: indexer,
		next:    indexer.Variables(),
	}
}

// encode returns the SAT instance, or false when the model was proven infeasible while encoding
func (encoder *encoder) encode() (sat.SAT, bool) {
	//** Domain axioms: x <= v implies x <= v+1
	for i, domain := range encoder.model.ints {
		variable := IntVar(i)
		for value := domain.min; value < domain.max-1; value++ {
			encoder.clause(-encoder.le(variable, value), encoder.le(variable, value+1))
		}
	}

	//** Constraints
	for _, constraint := range encoder.model.constraints {
		constraint.encode(encoder)
	}

	instance := sat.SAT{
		Variables: uint64(encoder.next),
		Clauses:   encoder.clauses,
	}
	return instance, !encoder.unsatisfiable
}

// decode reads the model's variables back from a SAT assignment
func (encoder *encoder) decode(solution sat.SATSolution) *Solution {
	assignment := solution.Assignment()

	ints := make([]int, len(encoder.model.ints))
	for i := range ints {
		ints[i] = encoder.indexer.Value(assignment, IntVar(i))
	}
	bools := lo.Times(len(encoder.model.bools), func(i int) bool {
		return assignment[encoder.indexer.Bool(BoolVar(i))]
	})

	return NewSolution(ints, bools)
}

func (encoder *encoder) le(variable IntVar, value int) int64 {
	return encoder.indexer.LessOrEqual(variable, value)
}

func (encoder *encoder) fresh() int64 {
	encoder.next++
	return encoder.next
}

// clause adds the disjunction of literals after simplifying the constant ones
func (encoder *encoder) clause(literals ...int64) {
	clause := make([]int64, 0, len(literals))
	for _, literal := range literals {
		if literal == top {
			return // Already satisfied
		} else if literal != bottom {
			clause = append(clause, literal)
		}
	}

	if len(clause) == 0 {
		encoder.unsatisfiable = true
		return
	}
	encoder.clauses = append(encoder.clauses, clause)
}

// atMost bounds the number of true literals using Sinz's sequential counter
func (encoder *encoder) atMost(literals []int64, k int) {
	n := len(literals)
	if n <= k {
		return
	} else if k == 0 {
		for _, literal := range literals {
			encoder.clause(-literal)
		}
		return
	}

	// counter[i][j] holds when at least j+1 of the first i+1 literals are true
	counter := make([][]int64, n-1)
	for i := range counter {
		counter[i] = lo.Times(k, func(_ int) int64 { return encoder.fresh() })
	}

	encoder.clause(-literals[0], counter[0][0])
	for j := 1; j < k; j++ {
		encoder.clause(-counter[0][j])
	}
	for i := 1; i < n-1; i++ {
		encoder.clause(-literals[i], counter[i][0])
		encoder.clause(-counter[i-1][0], counter[i][0])
		for j := 1; j < k; j++ {
			encoder.clause(-literals[i], -counter[i-1][j-1], counter[i][j])
			encoder.clause(-counter[i-1][j], counter[i][j])
		}
		encoder.clause(-literals[i], -counter[i-1][k-1])
	}
	encoder.clause(-literals[n-1], -counter[n-2][k-1])
}

func (c Equal) encode(encoder *encoder) {
	encoder.clause(encoder.le(c.X, c.Value))
	encoder.clause(-encoder.le(c.X, c.Value-1))
}

func (c Offset) encode(encoder *encoder) {
	xMin, xMax := encoder.model.Bounds(c.X)
	yMin, yMax := encoder.model.Bounds(c.Y)

	// X <= v <=> Y <= v + delta, over every threshold of both variables
	for value := min(xMin, yMin-c.Delta) - 1; value <= max(xMax, yMax-c.Delta); value++ {
		x, y := encoder.le(c.X, value), encoder.le(c.Y, value+c.Delta)
		encoder.clause(-x, y)
		encoder.clause(-y, x)
	}
}

func (c LessThan) encode(encoder *encoder) {
	encoder.clause(encoder.le(c.X, c.Bound-1))
}

func (c ReifiedLessThan) encode(encoder *encoder) {
	b, below := encoder.indexer.Bool(c.B), encoder.le(c.X, c.Bound-1)
	encoder.clause(-b, below)
	encoder.clause(b, -below)
}

func (c AllDifferent) encode(encoder *encoder) {
	// Pigeonhole: fail before search when there are fewer values than variables
	values := make(map[int]bool)
	for _, variable := range c.Vars {
		low, high := encoder.model.Bounds(variable)
		for value := low; value <= high && len(values) <= len(c.Vars); value++ {
			values[value] = true
		}
	}
	if len(values) < len(c.Vars) {
		encoder.unsatisfiable = true
		return
	}

	for i := range len(c.Vars) - 1 {
		for j := i + 1; j < len(c.Vars); j++ {
			x, y := c.Vars[i], c.Vars[j]
			xMin, xMax := encoder.model.Bounds(x)
			yMin, yMax := encoder.model.Bounds(y)

			// not (x = v and y = v)
			for value := max(xMin, yMin); value <= min(xMax, yMax); value++ {
				encoder.clause(
					-encoder.le(x, value), encoder.le(x, value-1),
					-encoder.le(y, value), encoder.le(y, value-1),
				)
			}
		}
	}
}

func (c Cumulative) encode(encoder *encoder) {
	for instant := c.From; instant <= c.To; instant++ {
		// Only tasks whose domain allows them to run at the instant can contribute
		candidates := lo.Filter(c.Starts, func(start IntVar, _ int) bool {
			low, high := encoder.model.Bounds(start)
			return low <= instant && high > instant-c.Duration
		})
		if len(candidates) <= c.Capacity {
			continue
		}

		running := make([]int64, 0, len(candidates))
		for _, start := range candidates {
			// running <=> start <= instant and not start <= instant - duration
			started, finished := encoder.le(start, instant), encoder.le(start, instant-c.Duration)
			literal := encoder.fresh()
			encoder.clause(-literal, started)
			encoder.clause(-literal, -finished)
			encoder.clause(literal, -started, finished)
			running = append(running, literal)
		}
		encoder.atMost(running, c.Capacity)
	}
}
