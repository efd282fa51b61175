package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	traceFlag            bool
	dumpInstructionsFlag bool
	stackFileFlag        string
)

var rootCmd = &cobra.Command{
	Use:   "forth <file> [stack-size=N]",
	Short: "A small Forth-like line-oriented interpreter",
	Long: `forth runs programs in a small Forth-like concatenative language:
arithmetic, stack manipulation, boolean/relational combinators, console
output, and user-defined, redefinable, nested and conditional word
definitions.

Usage:
  forth path/to/script.fs
  forth path/to/script.fs stack-size=256

The first argument is the path to a source file. The second, optional,
argument sets the operand stack's capacity in bytes (default 128).`,
	// No minimum enforced here: a missing path is reported as a typed
	// MissingPath error from runScript, not a generic cobra usage error,
	// so the CLI's failure taxonomy stays precise.
	Args: cobra.MaximumNArgs(2),
	RunE: runScript,
}

// Execute runs the root command, returning any error for main to report.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
	rootCmd.Version = Version

	rootCmd.Flags().BoolVar(&traceFlag, "trace", false, "print each logical source line to stderr before it is executed (instructions are not traced individually)")
	rootCmd.Flags().BoolVar(&dumpInstructionsFlag, "dump-instructions", false, "print the parsed instruction stream for each line, to stderr")
	rootCmd.Flags().StringVar(&stackFileFlag, "stack-file", "stack.fth", "path to the auxiliary stack-snapshot file")
}
