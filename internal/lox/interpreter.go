package lox

import (
	"fmt"
	"io"

	"github.com/sdecook/golox/internal/diagnostic"
)

// returnSignal is panicked by a `return` statement and recovered by the
// nearest enclosing LoxFunction.Call, per spec §4.4: a non-local control
// transfer, not an error, so it must unwind through arbitrarily nested
// blocks/loops without being caught by anything else.
type returnSignal struct{ value Value }

// Interpreter walks a resolved Program, evaluating statements for effect
// and expressions for value. One Interpreter can run multiple top-level
// programs in sequence (each Run call), which is what the REPL does to
// keep globals alive across lines.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  map[Expr]int
	out     io.Writer
	trace   func(Stmt)
}

// NewInterpreter builds an Interpreter writing `print` output to out, with
// the native globals (currently just `clock`) already defined.
func NewInterpreter(out io.Writer) *Interpreter {
	globals := NewEnvironment()
	interp := &Interpreter{globals: globals, env: globals, locals: map[Expr]int{}, out: out}
	interp.defineNatives()
	return interp
}

// MergeLocals folds in the scope-distance map a Resolver computed for the
// program about to run. It merges rather than replaces: the REPL resolves
// and runs one line at a time against a single long-lived Interpreter, so a
// closure declared on an earlier line must keep the distances computed for
// it when a later line calls it (spec §6's REPL-persistence requirement) —
// replacing the whole map on each line would drop them. Entries are never
// pruned, so a long REPL/piped session keeps every line's AST nodes
// reachable for the process's lifetime; acceptable for an interactive tool,
// not for embedding this Interpreter in a long-running service.
func (interp *Interpreter) MergeLocals(locals map[Expr]int) {
	for expr, distance := range locals {
		interp.locals[expr] = distance
	}
}

// SetTrace installs a callback invoked with every statement immediately
// before it executes, for the `lox run --trace` CLI flag (SPEC_FULL §9).
// Pass nil to disable tracing.
func (interp *Interpreter) SetTrace(trace func(Stmt)) { interp.trace = trace }

// Run executes every top-level declaration, returning the first runtime
// error encountered (if any) as a *diagnostic.Bag of exactly one item, to
// keep the CLI's error-handling path uniform across pipeline stages.
func (interp *Interpreter) Run(prog *Program) *diagnostic.Bag {
	bag := &diagnostic.Bag{}
	for _, stmt := range prog.Decls {
		if err := interp.execute(stmt); err != nil {
			bag.Add(runtimeDiagnostic(err))
			break
		}
	}
	return bag
}

func runtimeDiagnostic(err error) diagnostic.Diagnostic {
	if rerr, ok := err.(*RuntimeError); ok {
		return diagnostic.Diagnostic{Kind: diagnostic.Runtime, Code: "RuntimeError", Line: rerr.Token.Line, Message: rerr.Message}
	}
	return diagnostic.Diagnostic{Kind: diagnostic.Runtime, Code: "RuntimeError", Message: err.Error()}
}

func (interp *Interpreter) execute(stmt Stmt) error {
	if interp.trace != nil {
		interp.trace(stmt)
	}
	switch s := stmt.(type) {
	case *Block:
		return interp.executeBlock(s.Decls, NewEnclosedEnvironment(interp.env))
	case *VarDecl:
		var value Value
		if s.Init != nil {
			v, err := interp.eval(s.Init)
			if err != nil {
				return err
			}
			value = v
		}
		interp.env.Define(s.Name.Lexeme, value)
		return nil
	case *ClassDecl:
		return interp.executeClassDecl(s)
	case *FunDecl:
		fn := &LoxFunction{decl: s, closure: interp.env}
		interp.env.Define(s.Name.Lexeme, fn)
		return nil
	case *ExprStmt:
		_, err := interp.eval(s.Expr)
		return err
	case *IfStmt:
		cond, err := interp.eval(s.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return interp.execute(s.ThenBranch)
		} else if s.ElseBranch != nil {
			return interp.execute(s.ElseBranch)
		}
		return nil
	case *PrintStmt:
		v, err := interp.eval(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(interp.out, stringify(v))
		return nil
	case *ReturnStmt:
		var value Value
		if s.Value != nil {
			v, err := interp.eval(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		panic(returnSignal{value: value})
	case *WhileStmt:
		for {
			cond, err := interp.eval(s.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := interp.execute(s.Body); err != nil {
				return err
			}
		}
	default:
		panic("lox: interpreter: unhandled statement type")
	}
}

func (interp *Interpreter) executeBlock(stmts []Stmt, env *Environment) error {
	previous := interp.env
	interp.env = env
	defer func() { interp.env = previous }()

	for _, stmt := range stmts {
		if err := interp.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// executeClassDecl binds the class name to nil first so methods that
// recursively reference the class by name (rare, but legal) resolve to
// something, mirroring spec §4.4's two-step class construction.
func (interp *Interpreter) executeClassDecl(s *ClassDecl) error {
	var superclass *LoxClass
	if s.Superclass != nil {
		v, err := interp.eval(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*LoxClass)
		if !ok {
			return &RuntimeError{Token: s.Superclass.Name, Message: "Superclass must be a class."}
		}
		superclass = sc
	}

	interp.env.Define(s.Name.Lexeme, nil)

	if s.Superclass != nil {
		interp.env = NewEnclosedEnvironment(interp.env)
		interp.env.Define("super", superclass)
	}

	methods := make(map[string]*LoxFunction, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &LoxFunction{
			decl: m, closure: interp.env, isInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &LoxClass{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}

	if s.Superclass != nil {
		interp.env = interp.env.enclosing
	}

	return interp.env.Assign(s.Name, class)
}

func (interp *Interpreter) eval(expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil
	case *GroupExpr:
		return interp.eval(e.Expr)
	case *VariableExpr:
		return interp.lookupVariable(e.Name, e)
	case *AssignExpr:
		value, err := interp.eval(e.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := interp.locals[e]; ok {
			interp.env.AssignAt(distance, e.Name, value)
		} else if err := interp.globals.Assign(e.Name, value); err != nil {
			return nil, err
		}
		return value, nil
	case *LogicalExpr:
		return interp.evalLogical(e)
	case *UnaryExpr:
		return interp.evalUnary(e)
	case *BinaryExpr:
		return interp.evalBinary(e)
	case *CallExpr:
		return interp.evalCall(e)
	case *GetExpr:
		obj, err := interp.eval(e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*LoxInstance)
		if !ok {
			return nil, &RuntimeError{Token: e.Name, Message: "Only instances have properties."}
		}
		return instance.Get(e.Name)
	case *SetExpr:
		obj, err := interp.eval(e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*LoxInstance)
		if !ok {
			return nil, &RuntimeError{Token: e.Name, Message: "Only instances have fields."}
		}
		value, err := interp.eval(e.Value)
		if err != nil {
			return nil, err
		}
		instance.Set(e.Name, value)
		return value, nil
	case *ThisExpr:
		return interp.lookupVariable(e.Keyword, e)
	case *SuperExpr:
		return interp.evalSuper(e)
	default:
		panic("lox: interpreter: unhandled expression type")
	}
}

func (interp *Interpreter) lookupVariable(name Token, expr Expr) (Value, error) {
	if distance, ok := interp.locals[expr]; ok {
		return interp.env.GetAt(distance, name.Lexeme)
	}
	return interp.globals.Get(name)
}

func (interp *Interpreter) evalLogical(e *LogicalExpr) (Value, error) {
	left, err := interp.eval(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op.Type == OR {
		if isTruthy(left) {
			return left, nil
		}
	} else if !isTruthy(left) {
		return left, nil
	}
	return interp.eval(e.Right)
}

func (interp *Interpreter) evalUnary(e *UnaryExpr) (Value, error) {
	right, err := interp.eval(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op.Type {
	case MINUS:
		n, ok := right.(float64)
		if !ok {
			return nil, &RuntimeError{Token: e.Op, Message: "Operand must be a number."}
		}
		return -n, nil
	case BANG:
		return !isTruthy(right), nil
	default:
		panic("lox: interpreter: unhandled unary operator")
	}
}

func (interp *Interpreter) evalBinary(e *BinaryExpr) (Value, error) {
	left, err := interp.eval(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := interp.eval(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case PLUS:
		if ln, ok := left.(float64); ok {
			if rn, ok := right.(float64); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, &RuntimeError{Token: e.Op, Message: "Operands must be two numbers or two strings."}
	case MINUS, SLASH, STAR, GREATER, GREATER_EQUAL, LESS, LESS_EQUAL:
		ln, lok := left.(float64)
		rn, rok := right.(float64)
		if !lok || !rok {
			return nil, &RuntimeError{Token: e.Op, Message: "Operands must be numbers."}
		}
		switch e.Op.Type {
		case MINUS:
			return ln - rn, nil
		case SLASH:
			return ln / rn, nil
		case STAR:
			return ln * rn, nil
		case GREATER:
			return ln > rn, nil
		case GREATER_EQUAL:
			return ln >= rn, nil
		case LESS:
			return ln < rn, nil
		case LESS_EQUAL:
			return ln <= rn, nil
		}
	case BANG_EQUAL:
		return !isEqual(left, right), nil
	case EQUAL_EQUAL:
		return isEqual(left, right), nil
	}
	panic("lox: interpreter: unhandled binary operator")
}

func (interp *Interpreter) evalCall(e *CallExpr) (Value, error) {
	callee, err := interp.eval(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := interp.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, &RuntimeError{Token: e.Paren, Message: "Can only call functions and classes."}
	}
	if len(args) != fn.Arity() {
		return nil, &RuntimeError{Token: e.Paren, Message: fmt.Sprintf(
			"Expected %d arguments but got %d.", fn.Arity(), len(args))}
	}
	return fn.Call(interp, args)
}

// evalSuper resolves `super.method`: the resolver placed `super` at the
// current distance and `this` exactly one scope closer in, per spec §4.4's
// two-level this/super layering.
func (interp *Interpreter) evalSuper(e *SuperExpr) (Value, error) {
	distance := interp.locals[e]
	superVal, err := interp.env.GetAt(distance, "super")
	if err != nil {
		return nil, err
	}
	superclass := superVal.(*LoxClass)

	thisVal, err := interp.env.GetAt(distance-1, "this")
	if err != nil {
		return nil, err
	}
	instance := thisVal.(*LoxInstance)

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, &RuntimeError{Token: e.Method, Message: "Undefined property '" + e.Method.Lexeme + "'."}
	}
	return method.bind(instance), nil
}
