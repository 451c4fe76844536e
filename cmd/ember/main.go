// Command ember is a minimal host for Ember's tree-walking evaluator.
// It exists to give eval.Evaluator somewhere to run from the command
// line; it is explicitly not part of the evaluator's core contract.
package main

import (
	"fmt"
	"os"

	"github.com/emberlang/ember/cmd/ember/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
