// Package cmd implements the lox command-line interface: run, tokenize,
// parse, and check, on top of the internal/lox pipeline.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sdecook/golox/internal/config"
)

var cfg = config.Load()

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "lox",
	Short: "A tree-walking interpreter for Lox",
	Long: `lox is a tree-walking interpreter for the Lox language:
lexer, recursive-descent parser, static resolver, and evaluator,
with closures, classes, inheritance, and a REPL.`,
	// With no subcommand, lox behaves like `lox run`: no argument starts the
	// REPL, one argument runs that file.
	Args: cobra.MaximumNArgs(1),
	RunE: runLox,
	// A failing Lox script is not a CLI misuse: the subcommands already write
	// their diagnostics to stderr (bag.Report, or exitWithError for an
	// unreadable file), so cobra's own "Error: ..." line and full usage dump
	// are silenced. Argument-count errors are silenced along with them: they
	// exit non-zero without printing a message.
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", cfg.NoColor, "disable colored output")
	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
	})
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
}
