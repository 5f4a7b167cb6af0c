package lox

import "github.com/sdecook/golox/internal/diagnostic"

type funcType int

const (
	funcNone funcType = iota
	funcFunction
	funcMethod
	funcInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// varState tracks a declared local through its declare -> define lifecycle,
// so `var a = a;` can be flagged as reading a binding before it exists.
type varState int

const (
	declared varState = iota
	defined
)

// Resolver performs a single static pass over the parsed tree, computing the
// scope distance of every variable read/assignment (stored in Locals, keyed
// by the *VariableExpr/*AssignExpr/*ThisExpr/*SuperExpr node itself) and
// flagging the static errors from spec §4.3/§7: self-referential
// initializers, top-level return, return-with-value inside init, this/super
// outside a class, and inheriting from oneself.
type Resolver struct {
	scopes      []map[string]varState
	Locals      map[Expr]int
	errs        *diagnostic.Bag
	currentFunc funcType
	currentCls  classType
}

func NewResolver() *Resolver {
	return &Resolver{Locals: make(map[Expr]int), errs: &diagnostic.Bag{}}
}

func (r *Resolver) Resolve(prog *Program) *diagnostic.Bag {
	r.resolveStmts(prog.Decls)
	return r.errs
}

func (r *Resolver) error(line int, code, message string) {
	r.errs.Add(diagnostic.Diagnostic{Kind: diagnostic.Resolve, Code: code, Line: line, Message: message})
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, map[string]varState{}) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) declare(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.error(name.Line, "DuplicateLocal", "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = declared
}

func (r *Resolver) define(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = defined
}

func (r *Resolver) resolveLocal(expr Expr, name Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.Locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any scope: treated as global, resolved dynamically at
	// call time against the interpreter's global environment.
}

func (r *Resolver) resolveStmts(stmts []Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *Block:
		r.beginScope()
		r.resolveStmts(s.Decls)
		r.endScope()
	case *VarDecl:
		r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)
	case *ClassDecl:
		r.resolveClassDecl(s)
	case *FunDecl:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, funcFunction)
	case *ExprStmt:
		r.resolveExpr(s.Expr)
	case *IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.ThenBranch)
		if s.ElseBranch != nil {
			r.resolveStmt(s.ElseBranch)
		}
	case *PrintStmt:
		r.resolveExpr(s.Expr)
	case *ReturnStmt:
		if r.currentFunc == funcNone {
			r.error(s.Keyword.Line, "ReturnOutsideFunction", "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunc == funcInitializer {
				r.error(s.Keyword.Line, "ReturnValueFromInit", "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}
	case *WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	default:
		panic("lox: resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveClassDecl(s *ClassDecl) {
	enclosingCls := r.currentCls
	r.currentCls = classClass

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.error(s.Superclass.Name.Line, "InheritFromSelf", "A class can't inherit from itself.")
		} else {
			r.currentCls = classSubclass
			r.resolveExpr(s.Superclass)
		}

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = defined
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = defined

	for _, m := range s.Methods {
		ft := funcMethod
		if m.Name.Lexeme == "init" {
			ft = funcInitializer
		}
		r.resolveFunction(m, ft)
	}

	r.endScope()
	if s.Superclass != nil {
		r.endScope()
	}

	r.currentCls = enclosingCls
}

func (r *Resolver) resolveFunction(fn *FunDecl, ft funcType) {
	enclosing := r.currentFunc
	r.currentFunc = ft

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunc = enclosing
}

func (r *Resolver) resolveExpr(expr Expr) {
	switch e := expr.(type) {
	case *VariableExpr:
		if len(r.scopes) > 0 {
			if state, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && state == declared {
				r.error(e.Name.Line, "ReadOwnInitializer", "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	case *AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *UnaryExpr:
		r.resolveExpr(e.Right)
	case *CallExpr:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *GetExpr:
		r.resolveExpr(e.Object)
	case *SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ThisExpr:
		if r.currentCls == classNone {
			r.error(e.Keyword.Line, "ThisOutsideClass", "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *SuperExpr:
		if r.currentCls == classNone {
			r.error(e.Keyword.Line, "SuperOutsideClass", "Can't use 'super' outside of a class.")
		} else if r.currentCls != classSubclass {
			r.error(e.Keyword.Line, "SuperWithoutSuperclass", "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, e.Keyword)
	case *GroupExpr:
		r.resolveExpr(e.Expr)
	case *LiteralExpr:
		// no sub-expressions, nothing to resolve
	default:
		panic("lox: resolver: unhandled expression type")
	}
}
