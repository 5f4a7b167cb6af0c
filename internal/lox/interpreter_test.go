package lox

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runProgram(t *testing.T, src string) string {
	t.Helper()
	var out bytes.Buffer
	bag := Run([]byte(src), &out)
	require.True(t, bag.Empty(), "unexpected runtime diagnostics: %v", bag.Diagnostics())
	return out.String()
}

// runLines simulates the REPL: each line is lexed, parsed, and resolved
// independently but run against one shared Interpreter, with every line's
// locals merged in rather than replacing the prior lines'.
func runLines(t *testing.T, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	interp := NewInterpreter(&out)
	for _, line := range lines {
		toks, lexErrs := NewLexer([]byte(line)).Scan()
		require.True(t, lexErrs.Empty())
		prog, parseErrs := NewParser(toks).Parse()
		require.True(t, parseErrs.Empty())
		resolver := NewResolver()
		resolveErrs := resolver.Resolve(prog)
		require.True(t, resolveErrs.Empty())
		interp.MergeLocals(resolver.Locals)
		runErrs := interp.Run(prog)
		require.True(t, runErrs.Empty(), "line %q: %v", line, runErrs.Diagnostics())
	}
	return out.String()
}

func TestInterpreterReplRetainsEarlierLinesLocals(t *testing.T) {
	out := runLines(t,
		`fun outer() { var x = 10; fun inner() { print x; } return inner; }`,
		`var i = outer();`,
		`i();`,
	)
	assert.Equal(t, "10\n", out)
}

func TestInterpreterClosureCapturesByReference(t *testing.T) {
	out := runProgram(t, `
		fun makeCounter() {
			var i = 0;
			fun count() {
				i = i + 1;
				print i;
			}
			return count;
		}
		var counter = makeCounter();
		counter();
		counter();
	`)
	assert.Equal(t, "1\n2\n", out)
}

func TestInterpreterThisSurvivesMethodExtraction(t *testing.T) {
	out := runProgram(t, `
		class Thing {
			getName() { return this.name; }
		}
		var t = Thing();
		t.name = "tin";
		var m = t.getName;
		print m();
	`)
	assert.Equal(t, "tin\n", out)
}

func TestInterpreterInitAlwaysReturnsThis(t *testing.T) {
	out := runProgram(t, `
		class Thing {
			init(n) { this.n = n; }
		}
		var t = Thing(5);
		print t.n;
		print t.init(7) == t;
	`)
	assert.Equal(t, "5\ntrue\n", out)
}

func TestInterpreterInheritanceAndSuper(t *testing.T) {
	out := runProgram(t, `
		class A {
			method() { print "A method"; }
		}
		class B < A {
			method() {
				super.method();
				print "B method";
			}
		}
		B().method();
	`)
	assert.Equal(t, "A method\nB method\n", out)
}

func TestInterpreterNaNIsNotEqualToItself(t *testing.T) {
	out := runProgram(t, `
		var nan = 0.0 / 0.0;
		print nan == nan;
	`)
	assert.Equal(t, "false\n", out)
}

func TestInterpreterShortCircuitOr(t *testing.T) {
	out := runProgram(t, `
		fun sideEffect() { print "called"; return true; }
		print true or sideEffect();
	`)
	assert.Equal(t, "true\n", out)
	assert.False(t, strings.Contains(out, "called"))
}

func TestInterpreterTruthiness(t *testing.T) {
	out := runProgram(t, `
		if (nil) { print "wrong"; } else { print "nil is falsey"; }
		if (0) { print "zero is truthy"; }
		if ("") { print "empty string is truthy"; }
	`)
	assert.Equal(t, "nil is falsey\nzero is truthy\nempty string is truthy\n", out)
}

func TestInterpreterFibonacci(t *testing.T) {
	out := runProgram(t, `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	assert.Equal(t, "55\n", out)
}

func TestInterpreterIntegralNumberPrintsWithoutTrailingZero(t *testing.T) {
	out := runProgram(t, `print 1 + 1;`)
	assert.Equal(t, "2\n", out)
}

func TestInterpreterUndefinedVariableIsRuntimeError(t *testing.T) {
	var out bytes.Buffer
	bag := Run([]byte("print undefined;"), &out)
	require.False(t, bag.Empty())
	assert.Equal(t, "RuntimeError", bag.Diagnostics()[0].Code)
}
