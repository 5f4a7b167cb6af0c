package lox

import (
	"io"

	"github.com/sdecook/golox/internal/diagnostic"
)

// Run drives the full lex -> parse -> resolve -> evaluate pipeline over
// source, writing `print` output to out. It stops at the first stage that
// produced any diagnostic, mirroring the CLI's "fail fast per stage" rule
// from spec §7 (a syntax error means resolution and evaluation never run).
func Run(source []byte, out io.Writer) *diagnostic.Bag {
	return RunTraced(source, out, nil)
}

// RunTraced is Run, but invokes trace for every statement the interpreter
// executes — the underlying hook for the `lox run --trace` CLI flag. A nil
// trace behaves exactly like Run.
func RunTraced(source []byte, out io.Writer, trace func(Stmt)) *diagnostic.Bag {
	tokens, lexErrs := NewLexer(source).Scan()
	if !lexErrs.Empty() {
		return lexErrs
	}

	prog, parseErrs := NewParser(tokens).Parse()
	if !parseErrs.Empty() {
		return parseErrs
	}

	resolver := NewResolver()
	resolveErrs := resolver.Resolve(prog)
	if !resolveErrs.Empty() {
		return resolveErrs
	}

	interp := NewInterpreter(out)
	interp.MergeLocals(resolver.Locals)
	interp.SetTrace(trace)
	return interp.Run(prog)
}

// Tokenize runs only the lexer, for the `lox tokenize` CLI subcommand.
func Tokenize(source []byte) ([]Token, *diagnostic.Bag) {
	return NewLexer(source).Scan()
}

// ParseTree runs the lexer and parser, for the `lox parse` CLI subcommand.
func ParseTree(source []byte) (*Program, *diagnostic.Bag) {
	tokens, lexErrs := NewLexer(source).Scan()
	if !lexErrs.Empty() {
		return nil, lexErrs
	}
	return NewParser(tokens).Parse()
}

// Check runs lex, parse, and resolve (but not evaluation), for the `lox
// check` CLI subcommand — a pure static-analysis pass.
func Check(source []byte) *diagnostic.Bag {
	tokens, lexErrs := NewLexer(source).Scan()
	if !lexErrs.Empty() {
		return lexErrs
	}
	prog, parseErrs := NewParser(tokens).Parse()
	if !parseErrs.Empty() {
		return parseErrs
	}
	return NewResolver().Resolve(prog)
}
