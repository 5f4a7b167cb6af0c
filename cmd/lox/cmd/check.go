package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdecook/golox/internal/diagnostic"
	"github.com/sdecook/golox/internal/lox"
)

var (
	checkFormat string
	checkFields string
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Lex, parse, and resolve a Lox source file without running it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: lox check <file>")
		}
		source, err := os.ReadFile(args[0])
		if err != nil {
			exitWithError("%v", err)
			return err
		}

		bag := lox.Check(source)

		if checkFormat == "json" {
			doc, err := bag.JSON()
			if err != nil {
				return err
			}
			if checkFields != "" {
				fields := strings.Split(checkFields, ",")
				for i, f := range fields {
					fields[i] = strings.TrimSpace(f)
				}
				doc, err = diagnostic.ProjectFields(doc, fields)
				if err != nil {
					return err
				}
			}
			fmt.Println(doc)
		} else {
			bag.Report(os.Stdout, !noColor)
		}

		if !bag.Empty() {
			return fmt.Errorf("check found %d error(s)", bag.Len())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkFormat, "format", "text", `output format: "text" or "json"`)
	checkCmd.Flags().StringVar(&checkFields, "fields", "", "comma-separated diagnostic fields to include with --format=json")
}
