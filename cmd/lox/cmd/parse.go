package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdecook/golox/internal/lox"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the parsed AST for a Lox source file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: lox parse <file>")
		}
		source, err := os.ReadFile(args[0])
		if err != nil {
			exitWithError("%v", err)
			return err
		}

		prog, bag := lox.ParseTree(source)
		if prog != nil {
			fmt.Print(prog.String())
		}
		if !bag.Empty() {
			bag.Report(os.Stderr, !noColor)
			return fmt.Errorf("parse failed with %d error(s)", bag.Len())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
