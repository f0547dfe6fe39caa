package csp

import "math"

// Constant literals. They never reach the SAT instance: clauses containing top are dropped and bottom literals are removed.
const (
	top    int64 = math.MaxInt64
	bottom int64 = -math.MaxInt64
)

// orderIndexer gives a unique SAT variable to every "x <= v" proposition of the order encoding and to every boolean variable
type orderIndexer struct {
	domains []intDomain
	offsets []int64 // First SAT variable of each integer variable
	bools   int64   // First SAT variable of the boolean variables
	total   int64
}

func newOrderIndexer(model *Model) *orderIndexer {
	indexer := &orderIndexer{
		domains: model.ints,
		offsets: make([]int64, len(model.ints)),
	}

	next := int64(1)
	for i, domain := range model.ints {
		indexer.offsets[i] = next
		next += int64(domain.max - domain.min) // Thresholds min..max-1
	}
	indexer.bools = next
	next += int64(len(model.bools))
	indexer.total = next - 1

	return indexer
}

// LessOrEqual returns the literal for "variable <= value"
func (indexer *orderIndexer) LessOrEqual(variable IntVar, value int) int64 {
	domain := indexer.domains[variable]
	if value < domain.min {
		return bottom
	} else if value >= domain.max {
		return top
	}
	return indexer.offsets[variable] + int64(value-domain.min)
}

func (indexer *orderIndexer) Bool(variable BoolVar) int64 {
	return indexer.bools + int64(variable)
}

// Value decodes the integer value of variable: the smallest v such that "variable <= v" holds
func (indexer *orderIndexer) Value(assignment map[int64]bool, variable IntVar) int {
	domain := indexer.domains[variable]
	for value := domain.min; value < domain.max; value++ {
		if assignment[indexer.LessOrEqual(variable, value)] {
			return value
		}
	}
	return domain.max
}

// Variables returns the number of SAT variables used by the model's own variables (auxiliary variables come after)
func (indexer *orderIndexer) Variables() int64 {
	return indexer.total
}
