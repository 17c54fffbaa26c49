package main

import (
	"fmt"
	"os"

	"github.com/temirov/gemote/cmd/cli"
)

const (
	exitErrorTemplateConstant = "Error: %v\n"
)

// main executes the gemote command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
