package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes of the schedule command when no schedule is produced
const (
	exitInfeasible = 20
	exitUnknown    = 30
)

// exitError ends the process with a specific code once its message has been printed
type exitError struct {
	code    int
	message string
}

func (err exitError) Error() string {
	return err.message
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var exit exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		os.Exit(1)
	}
}
