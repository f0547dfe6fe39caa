package sat

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// GiniBackend names the in-process solver
const GiniBackend = "gini"

// Default executable names, overridable through the solver paths configuration
var defaultPaths = map[string]string{
	"kissat":        "kissat",
	"cadical":       "cadical",
	"cryptominisat": "cryptominisat5",
	"minisat":       "minisat",
	"glucosesimp":   "glucose-simp",
	"slime":         "slime",
	"ortoolsat":     "ortoolsat",
}

func NewKissatSolver(path string) SATSolver {
	return NewExternalSolver(Binary{Name: "kissat", Path: path, Args: []string{"-q", "--relaxed"}})
}

func NewCadicalSolver(path string) SATSolver {
	return NewExternalSolver(Binary{Name: "cadical", Path: path, Args: []string{"-q"}})
}

func NewCryptominisatSolver(path string) SATSolver {
	return NewExternalSolver(Binary{Name: "cryptominisat", Path: path, Args: []string{"--verb", "0"}})
}

func NewMinisatSolver(path string) SATSolver {
	return NewExternalSolver(Binary{Name: "minisat", Path: path, Args: []string{"-verb=0"}, FileOutput: true})
}

func NewGlucoseSimpSolver(path string) SATSolver {
	return NewExternalSolver(Binary{Name: "glucose-simp", Path: path, Args: []string{"-verb=0"}, FileOutput: true})
}

func NewSlimeSolver(path string) SATSolver {
	return NewExternalSolver(Binary{Name: "slime", Path: path, FileInput: true})
}

func NewOrtoolsatSolver(path string) SATSolver {
	return NewExternalSolver(Binary{Name: "ortoolsat", Path: path, FileInput: true})
}

var externalSolvers = map[string]func(path string) SATSolver{
	"kissat":        NewKissatSolver,
	"cadical":       NewCadicalSolver,
	"cryptominisat": NewCryptominisatSolver,
	"minisat":       NewMinisatSolver,
	"glucosesimp":   NewGlucoseSimpSolver,
	"slime":         NewSlimeSolver,
	"ortoolsat":     NewOrtoolsatSolver,
}

// Backends lists every solver name accepted by New, "gini" (in-process) first
func Backends() []string {
	names := lo.Keys(externalSolvers)
	slices.Sort(names)
	return append([]string{GiniBackend}, names...)
}

// New builds the solver registered under name. paths maps solver names to executables and may be nil
func New(name string, paths map[string]string) (SATSolver, error) {
	if name == GiniBackend {
		return NewGiniSolver(), nil
	}

	constructor, ok := externalSolvers[name]
	if !ok {
		return nil, fmt.Errorf("unknown SAT solver %q, allowed values are %v", name, Backends())
	}

	path, ok := paths[name]
	if !ok || path == "" {
		path = defaultPaths[name]
	}
	return constructor(path), nil
}

// DefaultPath returns the executable looked up for name when no path is configured
func DefaultPath(name string) string {
	return defaultPaths[name]
}
