package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sdecook/golox/internal/lox"
)

var (
	evalExpr  string
	traceExec bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lox script, or start the REPL with no file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLox,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from a file")
	runCmd.Flags().BoolVar(&traceExec, "trace", false, "trace each executed statement to stderr")
}

func runLox(_ *cobra.Command, args []string) error {
	switch {
	case evalExpr != "":
		return runSource([]byte(evalExpr), os.Stdout)
	case len(args) == 1:
		source, err := os.ReadFile(args[0])
		if err != nil {
			exitWithError("%v", err)
			return err
		}
		return runSource(source, os.Stdout)
	default:
		return repl()
	}
}

func runSource(source []byte, out *os.File) error {
	bag := lox.RunTraced(source, out, traceFn())
	if !bag.Empty() {
		bag.Report(os.Stderr, !noColor)
		return fmt.Errorf("run failed with %d error(s)", bag.Len())
	}
	return nil
}

// traceFn returns the --trace callback, or nil when tracing is off. The
// prefix is colorized via fatih/color, which already honors --no-color
// through the package-level color.NoColor switch set in root.go.
func traceFn() func(lox.Stmt) {
	if !traceExec {
		return nil
	}
	tag := color.New(color.FgCyan, color.Bold)
	return func(stmt lox.Stmt) {
		fmt.Fprintf(os.Stderr, "%s %s\n", tag.Sprint("[trace]"), stmt.String())
	}
}

// repl reads one line at a time, running each against a single Interpreter
// so variables and functions persist across lines within the process.
// History, if LOX_HISTORY_FILE is set, gets each non-empty line as it is read.
func repl() error {
	interp := lox.NewInterpreter(os.Stdout)
	interp.SetTrace(traceFn())
	scanner := bufio.NewScanner(os.Stdin)

	var history *os.File
	if cfg.HistoryFile != "" {
		f, err := os.OpenFile(cfg.HistoryFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			history = f
			defer history.Close()
		}
	}

	for {
		fmt.Print(cfg.Prompt)
		if !scanner.Scan() {
			return nil
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		if history != nil {
			fmt.Fprintln(history, line)
		}

		tokens, lexErrs := lox.Tokenize([]byte(line))
		if !lexErrs.Empty() {
			lexErrs.Report(os.Stderr, !noColor)
			continue
		}
		prog, parseErrs := lox.NewParser(tokens).Parse()
		if !parseErrs.Empty() {
			parseErrs.Report(os.Stderr, !noColor)
			continue
		}
		resolver := lox.NewResolver()
		resolveErrs := resolver.Resolve(prog)
		if !resolveErrs.Empty() {
			resolveErrs.Report(os.Stderr, !noColor)
			continue
		}
		interp.MergeLocals(resolver.Locals)
		if runErrs := interp.Run(prog); !runErrs.Empty() {
			runErrs.Report(os.Stderr, !noColor)
		}
	}
}
