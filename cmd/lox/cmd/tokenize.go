package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdecook/golox/internal/lox"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file>",
	Short: "Print the token stream for a Lox source file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: lox tokenize <file>")
		}
		source, err := os.ReadFile(args[0])
		if err != nil {
			exitWithError("%v", err)
			return err
		}

		tokens, bag := lox.Tokenize(source)
		for _, tok := range tokens {
			fmt.Println(tok.String())
		}
		if !bag.Empty() {
			bag.Report(os.Stderr, !noColor)
			return fmt.Errorf("tokenize failed with %d error(s)", bag.Len())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
}
