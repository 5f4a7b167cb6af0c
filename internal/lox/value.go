package lox

import (
	"fmt"
	"strconv"
)

// Value is any runtime Lox value: nil, bool, float64, string, *LoxFunction,
// *NativeFunction, *LoxClass, or *LoxInstance. Kept as `any` rather than a
// closed interface so literals need no boxing wrapper.
type Value = any

// Callable is implemented by anything that can appear as a call's callee.
type Callable interface {
	Arity() int
	Call(interp *Interpreter, args []Value) (Value, error)
	String() string
}

// isTruthy follows Ruby's rule, per spec §6: everything is truthy except
// nil and false.
func isTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual implements Lox's `==`: no implicit conversions, NaN is not equal
// to itself (IEEE 754, inherited straight from Go's float64 ==).
func isEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// stringify renders a Value the way `print` and the REPL echo it, per
// spec §6: integral numbers print without a trailing ".0".
func stringify(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// LoxFunction is a user-defined function or method, closing over the
// environment active at its definition site.
type LoxFunction struct {
	decl          *FunDecl
	closure       *Environment
	isInitializer bool
}

func (f *LoxFunction) Arity() int { return len(f.decl.Params) }

func (f *LoxFunction) String() string { return "<fn " + f.decl.Name.Lexeme + ">" }

// bind returns a copy of f whose closure has `this` bound to instance, used
// both for normal method lookup and for resolving `super.method()`.
func (f *LoxFunction) bind(instance *LoxInstance) *LoxFunction {
	env := NewEnclosedEnvironment(f.closure)
	env.Define("this", instance)
	return &LoxFunction{decl: f.decl, closure: env, isInitializer: f.isInitializer}
}

func (f *LoxFunction) Call(interp *Interpreter, args []Value) (result Value, err error) {
	env := NewEnclosedEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	defer func() {
		if r := recover(); r != nil {
			if ret, ok := r.(returnSignal); ok {
				if f.isInitializer {
					result, _ = f.closure.GetAt(0, "this")
				} else {
					result = ret.value
				}
				return
			}
			panic(r)
		}
	}()

	if execErr := interp.executeBlock(f.decl.Body, env); execErr != nil {
		return nil, execErr
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this")
	}
	return nil, nil
}

// NativeFunction wraps a Go function as a Lox-callable value (e.g. the
// global `clock`), replacing string-name special-casing in the evaluator
// with ordinary global-environment lookup.
type NativeFunction struct {
	name  string
	arity int
	fn    func(interp *Interpreter, args []Value) (Value, error)
}

func (n *NativeFunction) Arity() int      { return n.arity }
func (n *NativeFunction) String() string  { return "<native fn " + n.name + ">" }
func (n *NativeFunction) Call(interp *Interpreter, args []Value) (Value, error) {
	return n.fn(interp, args)
}

// LoxClass is a runtime class value: callable to construct instances, and
// carrying its own method table plus an optional superclass link for
// FindMethod to walk.
type LoxClass struct {
	Name       string
	Superclass *LoxClass
	Methods    map[string]*LoxFunction
}

func (c *LoxClass) String() string { return c.Name }

func (c *LoxClass) FindMethod(name string) *LoxFunction {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

func (c *LoxClass) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

func (c *LoxClass) Call(interp *Interpreter, args []Value) (Value, error) {
	instance := &LoxInstance{class: c, fields: make(map[string]Value)}
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// LoxInstance is an object: a class pointer plus its own field table.
// Fields are a plain map (not swiss.Map) since per-instance field sets are
// small and created per object; Environment uses swiss.Map where lookups
// are on the hot path of every variable read (see environment.go).
type LoxInstance struct {
	class  *LoxClass
	fields map[string]Value
}

func (i *LoxInstance) String() string { return i.class.Name + " instance" }

// Get looks up fields before methods, per spec §4.2: a field can shadow a
// method of the same name. A found method is bound to this instance before
// being returned so later calls see the right `this`.
func (i *LoxInstance) Get(name Token) (Value, error) {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v, nil
	}
	if m := i.class.FindMethod(name.Lexeme); m != nil {
		return m.bind(i), nil
	}
	return nil, &RuntimeError{Token: name, Message: "Undefined property '" + name.Lexeme + "'."}
}

func (i *LoxInstance) Set(name Token, value Value) {
	i.fields[name.Lexeme] = value
}

// RuntimeError is a Lox-level failure during evaluation, carrying the token
// whose line identifies where it happened (spec §7).
type RuntimeError struct {
	Token   Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }
