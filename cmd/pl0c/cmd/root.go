package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagDump        bool
	flagLexOnly     bool
	flagPrecompiled bool
	flagVerbose     bool
)

var rootCmd = &cobra.Command{
	Use:     "pl0c [-dhlpv] input [output]",
	Short:   "Compile and run an extended PL/0 program",
	Version: Version,
	Long: `pl0c lexes, compiles, and executes programs written in an extended
PL/0 dialect: nested procedures with parameters and a single return slot,
a small stack VM, and a 44-entry numbered parser diagnostic catalog.

input is a source file, or (with -p) a pre-assembled VM code file of
whitespace-separated "op l m" triples. output, used only with -d,
defaults to output.txt.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPL0C,
}

// Execute runs the root command and returns its error, if any, so main
// can choose the process exit status.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("pl0c version %%s\nCommit: %s\nBuilt:  %s\n", GitCommit, BuildDate))

	// Cobra's default --help exits 0; spec.md section 6 requires -h to
	// exit non-zero after printing usage.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		cmd.Println(cmd.UsageString())
		os.Exit(1)
	})

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.Flags().BoolVarP(&flagDump, "dump", "d", false, "write the VM code to output as whitespace-separated triples")
	rootCmd.Flags().BoolVarP(&flagLexOnly, "lex", "l", false, "lex only (implies -v); exit after lexing")
	rootCmd.Flags().BoolVarP(&flagPrecompiled, "precompiled", "p", false, "treat input as a pre-assembled VM code file")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "print source, lexeme lists, instruction listing, and a per-step VM trace")
}
