package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ember",
	Short: "Host CLI for Ember's tree-walking evaluator",
	Long: `ember hosts Ember, an embeddable scripting engine's evaluator core.

This binary is a thin demo shell: it wires a default eval.Library,
builtins.Resolver, and module resolver together and drives hand-built
programs through eval.Evaluator.Run. Lexing, parsing, and compiling
real Ember source text are outside this core's scope -- see the "demo"
subcommand for runnable sample programs.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
