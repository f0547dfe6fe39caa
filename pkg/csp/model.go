// Package csp describes finite-domain constraint models and solves them.
//
// A Model is built once, submitted to a Solver once and read once through the
// returned Solution. Adding constraints to a submitted model panics.
package csp

import (
	"fmt"
	"log"
)

// IntVar is an integer decision variable of a Model
type IntVar int

// BoolVar is a boolean decision variable of a Model
type BoolVar int

type intDomain struct {
	name     string
	min, max int
}

type Model struct {
	ints        []intDomain
	bools       []string
	constraints []Constraint
	submitted   bool
}

func NewModel() *Model {
	return &Model{}
}

// NewIntVar declares a variable with the closed domain [min, max]
func (model *Model) NewIntVar(min, max int, name string) IntVar {
	model.mustBeOpen()
	if min > max {
		log.Panicf("empty domain [%d, %d] for variable %q", min, max, name)
	}
	model.ints = append(model.ints, intDomain{name: name, min: min, max: max})
	return IntVar(len(model.ints) - 1)
}

func (model *Model) NewBoolVar(name string) BoolVar {
	model.mustBeOpen()
	model.bools = append(model.bools, name)
	return BoolVar(len(model.bools) - 1)
}

func (model *Model) Add(constraint Constraint) {
	model.mustBeOpen()
	if err := constraint.validate(model); err != nil {
		log.Panicf("invalid constraint %v: %v", constraint, err)
	}
	model.constraints = append(model.constraints, constraint)
}

// Bounds returns the declared domain of variable
func (model *Model) Bounds(variable IntVar) (min, max int) {
	domain := model.ints[variable]
	return domain.min, domain.max
}

func (model *Model) Name(variable IntVar) string {
	return model.ints[variable].name
}

func (model *Model) BoolName(variable BoolVar) string {
	return model.bools[variable]
}

func (model *Model) IntVars() int {
	return len(model.ints)
}

func (model *Model) BoolVars() int {
	return len(model.bools)
}

func (model *Model) Constraints() []Constraint {
	return model.constraints
}

// Submitted reports whether the model was already handed to a solver
func (model *Model) Submitted() bool {
	return model.submitted
}

// submit freezes the model. A model can only be solved once.
func (model *Model) submit() {
	if model.submitted {
		log.Panic("model has already been submitted to a solver")
	}
	model.submitted = true
}

func (model *Model) mustBeOpen() {
	if model.submitted {
		log.Panic("model cannot be modified after being submitted to a solver")
	}
}

func (model *Model) checkInt(variable IntVar) error {
	if variable < 0 || int(variable) >= len(model.ints) {
		return fmt.Errorf("unknown integer variable %d", variable)
	}
	return nil
}

func (model *Model) checkBool(variable BoolVar) error {
	if variable < 0 || int(variable) >= len(model.bools) {
		return fmt.Errorf("unknown boolean variable %d", variable)
	}
	return nil
}
