// Package semantics implements Zero's two-pass semantic analysis: first
// collecting every top-level function's signature, then walking each
// function body with a stack of lexical scopes to resolve names and
// check types. Grounded on the original sema pass's collect/check split.
package semantics

import (
	"fmt"
	"strings"

	"github.com/LetsZero/zero-compiler/internal/diagnostics"
	"github.com/LetsZero/zero-compiler/internal/frontend/ast"
	"github.com/LetsZero/zero-compiler/internal/source"
	"github.com/LetsZero/zero-compiler/internal/types"
)

// Result is the outcome of analyzing a program: the accumulated
// diagnostics and, per function, the resolved signature table a later
// lowering stage needs to know call shapes without re-deriving them.
type Result struct {
	Diagnostics *diagnostics.Bag
	Signatures  map[string]FnSignature
}

// Analyzer runs Zero's two-pass semantic check over a parsed program.
type Analyzer struct {
	sigs *signatureTable
	bag  *diagnostics.Bag

	// currentReturnType tracks the enclosing function's declared return
	// type while walking its body, so return statements can be checked
	// against it. It is Unknown for a function with no return annotation,
	// which lets any return value through.
	currentReturnType types.Type
}

// New returns an Analyzer with no functions registered yet. Callers that
// embed built-ins (print, log, ...) must call RegisterBuiltin for each
// one before calling Analyze, since Zero's own syntax cannot declare a
// variadic function.
func New() *Analyzer {
	return &Analyzer{sigs: newSignatureTable(), bag: diagnostics.NewBag()}
}

// RegisterBuiltin pre-declares a signature for a host-provided function
// that Zero source code cannot itself define, such as a variadic print.
func (a *Analyzer) RegisterBuiltin(sig FnSignature) {
	a.sigs.fns[sig.Name] = sig
}

// Analyze runs both passes over prog and returns the combined result.
// Pass 1 never needs a prior pass's output, so collection failures
// (duplicate names) don't prevent pass 2 from still checking bodies
// against whatever signatures did register cleanly.
func (a *Analyzer) Analyze(prog *ast.Program) Result {
	a.collectFunctions(prog)
	for _, fn := range prog.Functions {
		a.checkFn(fn)
	}
	return Result{Diagnostics: a.bag, Signatures: a.sigs.fns}
}

// ---------------------------------------------------------------------
// Pass 1: collect signatures
// ---------------------------------------------------------------------

func (a *Analyzer) collectFunctions(prog *ast.Program) {
	for _, fn := range prog.Functions {
		sig := FnSignature{Name: fn.Name, ReturnType: types.TVoid}
		if fn.ReturnType != nil {
			sig.ReturnType = types.FromName(fn.ReturnType.Name)
		}
		for _, p := range fn.Params {
			pt := types.TUnknown
			if p.Type != nil {
				pt = types.FromName(p.Type.Name)
			}
			sig.ParamTypes = append(sig.ParamTypes, pt)
		}
		if !a.sigs.declare(sig) {
			a.report(diagnostics.DuplicateDefinition,
				fmt.Sprintf("duplicate definition: %s", fn.Name), fn.Sp)
		}
	}
}

// ---------------------------------------------------------------------
// Pass 2: check each function body
// ---------------------------------------------------------------------

func (a *Analyzer) checkFn(fn *ast.FnDecl) {
	sig, ok := a.sigs.lookup(fn.Name)
	if !ok {
		// Pass 1 registers every name (a duplicate keeps the first
		// declaration's signature), so this is only a defensive fallback
		// that still lets the body be checked.
		sig = FnSignature{Name: fn.Name, ReturnType: types.TVoid}
	}
	a.currentReturnType = sig.ReturnType
	if fn.ReturnType == nil {
		a.currentReturnType = types.TUnknown
	}

	fnScope := newScope(nil)
	for i, p := range fn.Params {
		pt := types.TUnknown
		if i < len(sig.ParamTypes) {
			pt = sig.ParamTypes[i]
		}
		if !fnScope.declareLocal(p.Name, pt) {
			a.report(diagnostics.DuplicateDefinition,
				fmt.Sprintf("duplicate definition: %s", p.Name), p.Sp)
		}
	}
	a.checkStmts(fn.Body, fnScope)
}

func (a *Analyzer) checkStmts(stmts []ast.Stmt, sc *scope) {
	for _, s := range stmts {
		a.checkStmt(s, sc)
	}
}

func (a *Analyzer) checkStmt(s ast.Stmt, sc *scope) {
	switch st := s.(type) {
	case *ast.LetStmt:
		var initType types.Type
		if st.Init != nil {
			initType = a.checkExpr(st.Init, sc)
		}
		declared := initType
		if st.Type != nil {
			declared = types.FromName(st.Type.Name)
			if st.Init != nil && !types.Compatible(initType, declared) {
				a.report(diagnostics.TypeMismatch,
					fmt.Sprintf("cannot assign %s to %s: %s", initType, declared, st.Name), st.Sp)
			}
		}
		if !sc.declareLocal(st.Name, declared) {
			a.report(diagnostics.DuplicateDefinition,
				fmt.Sprintf("duplicate definition: %s", st.Name), st.Sp)
		}

	case *ast.ReturnStmt:
		var valueType types.Type = types.TVoid
		if st.Value != nil {
			valueType = a.checkExpr(st.Value, sc)
		}
		if !types.Compatible(valueType, a.currentReturnType) {
			a.report(diagnostics.ReturnTypeMismatch,
				fmt.Sprintf("expected return type %s, got %s", a.currentReturnType, valueType), st.Sp)
		}

	case *ast.ExprStmt:
		if st.Expr != nil {
			a.checkExpr(st.Expr, sc)
		}

	case *ast.IfStmt:
		a.checkExpr(st.Condition, sc)
		a.checkStmts(st.Then, newScope(sc))
		if st.Else != nil {
			a.checkStmts(st.Else, newScope(sc))
		}

	case *ast.WhileStmt:
		a.checkExpr(st.Condition, sc)
		a.checkStmts(st.Body, newScope(sc))

	case *ast.Block:
		a.checkStmts(st.Stmts, newScope(sc))
	}
}

func (a *Analyzer) checkExpr(e ast.Expr, sc *scope) types.Type {
	switch ex := e.(type) {
	case *ast.IntLiteral:
		return types.TInt

	case *ast.FloatLiteral:
		return types.TFloat

	case *ast.StringLiteral:
		return types.TUnknown

	case *ast.Identifier:
		if t, ok := sc.lookup(ex.Name); ok {
			return t
		}
		a.report(diagnostics.UndefinedVariable,
			fmt.Sprintf("undefined variable: %s", ex.Name), ex.Sp)
		return types.TUnknown

	case *ast.GroupExpr:
		return a.checkExpr(ex.Inner, sc)

	case *ast.UnaryExpr:
		if ex.Operand == nil {
			return types.TUnknown
		}
		return a.checkExpr(ex.Operand, sc)

	case *ast.BinaryExpr:
		var lt, rt types.Type = types.TUnknown, types.TUnknown
		if ex.Left != nil {
			lt = a.checkExpr(ex.Left, sc)
		}
		if ex.Right != nil {
			rt = a.checkExpr(ex.Right, sc)
		}
		if !types.Compatible(lt, rt) {
			a.report(diagnostics.TypeMismatch,
				fmt.Sprintf("incompatible operand types: %s %s %s", lt, ex.Op, rt), ex.Sp)
			return types.TUnknown
		}
		switch ex.Op {
		case ast.CmpEq, ast.CmpNe, ast.CmpLt, ast.CmpLe, ast.CmpGt, ast.CmpGe:
			return types.TInt
		default:
			return types.Promote(lt, rt)
		}

	case *ast.CallExpr:
		return a.checkCall(ex, sc)
	}
	return types.TUnknown
}

func (a *Analyzer) checkCall(call *ast.CallExpr, sc *scope) types.Type {
	argTypes := make([]types.Type, len(call.Args))
	for i, arg := range call.Args {
		argTypes[i] = a.checkExpr(arg, sc)
	}

	sig, ok := a.sigs.lookup(call.Callee)
	if !ok {
		msg := fmt.Sprintf("undefined function: %s", call.Callee)
		if known := a.sigs.names(); len(known) > 0 {
			msg += fmt.Sprintf(" (known: %s)", strings.Join(known, ", "))
		}
		a.report(diagnostics.UndefinedFunction, msg, call.Sp)
		return types.TUnknown
	}

	if sig.Variadic {
		if len(call.Args) < len(sig.ParamTypes) {
			a.report(diagnostics.WrongArgCount,
				fmt.Sprintf("%s expects at least %d argument(s), got %d", call.Callee, len(sig.ParamTypes), len(call.Args)), call.Sp)
			return sig.ReturnType
		}
	} else if len(call.Args) != len(sig.ParamTypes) {
		a.report(diagnostics.WrongArgCount,
			fmt.Sprintf("%s expects %d argument(s), got %d", call.Callee, len(sig.ParamTypes), len(call.Args)), call.Sp)
		return sig.ReturnType
	}

	for i := 0; i < len(sig.ParamTypes) && i < len(argTypes); i++ {
		if !types.Compatible(argTypes[i], sig.ParamTypes[i]) {
			a.report(diagnostics.TypeMismatch,
				fmt.Sprintf("argument %d to %s: expected %s, got %s", i+1, call.Callee, sig.ParamTypes[i], argTypes[i]), call.Sp)
		}
	}

	return sig.ReturnType
}

func (a *Analyzer) report(kind diagnostics.Kind, message string, span source.Span) {
	a.bag.Add(diagnostics.New(kind, message, span))
}
