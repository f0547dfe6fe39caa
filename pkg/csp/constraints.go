package csp

import (
	"errors"
	"fmt"
)

// Constraint is one of the constraint types declared in this package
type Constraint interface {
	fmt.Stringer
	validate(model *Model) error
	encode(encoder *encoder)
}

// Equal fixes X to Value
type Equal struct {
	X     IntVar
	Value int
}

// Offset enforces Y = X + Delta
type Offset struct {
	X, Y  IntVar
	Delta int
}

// LessThan enforces X < Bound
type LessThan struct {
	X     IntVar
	Bound int
}

// ReifiedLessThan enforces B <=> X < Bound
type ReifiedLessThan struct {
	B     BoolVar
	X     IntVar
	Bound int
}

// AllDifferent enforces pairwise distinct values
type AllDifferent struct {
	Vars []IntVar
}

// Cumulative bounds the number of tasks running at every instant t in [From, To].
// Task i runs at t when Starts[i] <= t < Starts[i] + Duration.
type Cumulative struct {
	Starts   []IntVar
	Duration int
	Capacity int
	From, To int
}

func (c Equal) String() string { return fmt.Sprintf("v%d = %d", c.X, c.Value) }

func (c Offset) String() string { return fmt.Sprintf("v%d = v%d + %d", c.Y, c.X, c.Delta) }

func (c LessThan) String() string { return fmt.Sprintf("v%d < %d", c.X, c.Bound) }

func (c ReifiedLessThan) String() string {
	return fmt.Sprintf("b%d <=> v%d < %d", c.B, c.X, c.Bound)
}

func (c AllDifferent) String() string { return fmt.Sprintf("AllDifferent%v", c.Vars) }

func (c Cumulative) String() string {
	return fmt.Sprintf("Cumulative(%v, duration=%d, capacity=%d, [%d, %d])", c.Starts, c.Duration, c.Capacity, c.From, c.To)
}

func (c Equal) validate(model *Model) error { return model.checkInt(c.X) }

func (c Offset) validate(model *Model) error {
	return errors.Join(model.checkInt(c.X), model.checkInt(c.Y))
}

func (c LessThan) validate(model *Model) error { return model.checkInt(c.X) }

func (c ReifiedLessThan) validate(model *Model) error {
	return errors.Join(model.checkBool(c.B), model.checkInt(c.X))
}

func (c AllDifferent) validate(model *Model) error {
	var errs []error
	for _, variable := range c.Vars {
		errs = append(errs, model.checkInt(variable))
	}
	return errors.Join(errs...)
}

func (c Cumulative) validate(model *Model) error {
	var errs []error
	for _, variable := range c.Starts {
		errs = append(errs, model.checkInt(variable))
	}
	if c.Duration < 1 {
		errs = append(errs, fmt.Errorf("duration must be positive: %d", c.Duration))
	}
	if c.Capacity < 0 {
		errs = append(errs, fmt.Errorf("capacity must not be negative: %d", c.Capacity))
	}
	if c.From > c.To {
		errs = append(errs, fmt.Errorf("empty horizon [%d, %d]", c.From, c.To))
	}
	return errors.Join(errs...)
}
