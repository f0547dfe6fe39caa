package sat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Binary describes how an external competition-style SAT solver is invoked
type Binary struct {
	Name       string   // Used in error messages
	Path       string   // Executable name or absolute path
	Args       []string // Fixed arguments placed before the file arguments
	FileInput  bool     // The DIMACS instance is passed as a file argument instead of through the standard input
	FileOutput bool     // The assignment is written into a file given as the last argument (minisat style)
}

type externalSolver struct {
	binary Binary
}

// NewExternalSolver wraps an arbitrary solver binary that follows the SAT-competition exit-code convention
func NewExternalSolver(binary Binary) SATSolver {
	return &externalSolver{binary: binary}
}

func (solver *externalSolver) Solve(ctx context.Context, sat SAT) (SATSolution, error) {
	binary := solver.binary
	args := append([]string{}, binary.Args...)

	var stdin bytes.Buffer
	if binary.FileInput || binary.FileOutput {
		// Create a temporary file to hold the DIMACS content
		inputFile, err := os.CreateTemp("", "dimacs-*.cnf")
		if err != nil {
			return nil, fmt.Errorf("failed to create temporary file: %w", err)
		}
		defer os.Remove(inputFile.Name())

		if err := sat.WriteDIMACS(inputFile); err != nil {
			inputFile.Close()
			return nil, fmt.Errorf("failed to write DIMACS to temporary file: %w", err)
		}
		if err := inputFile.Close(); err != nil {
			return nil, fmt.Errorf("failed to close temporary file: %w", err)
		}
		args = append(args, inputFile.Name())
	} else if err := sat.WriteDIMACS(&stdin); err != nil {
		return nil, fmt.Errorf("failed to serialize DIMACS: %w", err)
	}

	var outputPath string
	if binary.FileOutput {
		outputFile, err := os.CreateTemp("", binary.Name+"-output-*.txt")
		if err != nil {
			return nil, fmt.Errorf("failed to create temporary file: %w", err)
		}
		outputFile.Close()
		outputPath = outputFile.Name()
		defer os.Remove(outputPath)
		args = append(args, outputPath)
	}

	cmd := exec.CommandContext(ctx, binary.Path, args...)
	if !binary.FileInput && !binary.FileOutput {
		cmd.Stdin = &stdin // Feed dimacs into the solver's standard input
	}

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%v: %w", binary.Name, ErrTimeout)
	} else if cmd.ProcessState == nil {
		return nil, fmt.Errorf("cannot start %v: %w", binary.Name, err)
	}

	// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
	exitCode := cmd.ProcessState.ExitCode()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, fmt.Errorf("an error occurred during %v execution: %w", binary.Name, err)
	} else if exitCode == exitUnsatisfiable {
		return nil, nil
	} else if exitCode != exitSatisfiable {
		return nil, fmt.Errorf("an error occurred during %v execution: exit code %d: %v", binary.Name, exitCode, stderr.String())
	}

	if binary.FileOutput {
		output, err := os.ReadFile(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read output file: %w", err)
		}
		return parseSolutionFile(string(output))
	}
	return parseSolution(stdout.String())
}
