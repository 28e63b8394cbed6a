package ir

import (
	"github.com/LetsZero/zero-compiler/internal/frontend/ast"
	"github.com/LetsZero/zero-compiler/internal/semantics"
	"github.com/LetsZero/zero-compiler/internal/types"
)

// Lowering rewrites a parsed, analyzed ast.Program into an ir.Module.
// Grounded on the original lowering pass: no phi nodes, a variable
// reference resolves to whatever SSA value its name was last bound to
// in the lowering-time symbol table, so a definition that only runs
// down one branch of a prior `if` is visible to code after the merge
// even though at runtime it may never have executed. That's the
// documented SSA-without-phi-nodes simplification; it is preserved
// exactly rather than "fixed", per how the original resolves it.
type Lowering struct {
	sigs    map[string]semantics.FnSignature
	symbols map[string]Value
}

// NewLowering returns a Lowering that resolves call return types from
// sigs, the signature table semantic analysis already computed.
func NewLowering(sigs map[string]semantics.FnSignature) *Lowering {
	return &Lowering{sigs: sigs}
}

// Lower lowers every function in prog into a fresh Module.
func (l *Lowering) Lower(prog *ast.Program) *Module {
	mod := &Module{}
	for _, fnAST := range prog.Functions {
		l.lowerFunction(mod, fnAST)
	}
	return mod
}

func astTypeOf(t *ast.TypeAnnotation) types.Type {
	if t == nil {
		return types.TUnknown
	}
	return types.FromName(t.Name)
}

func (l *Lowering) lowerFunction(mod *Module, fnAST *ast.FnDecl) {
	paramTypes := make([]types.Type, len(fnAST.Params))
	for i, p := range fnAST.Params {
		paramTypes[i] = astTypeOf(p.Type)
	}
	retType := types.TVoid
	if fnAST.ReturnType != nil {
		retType = astTypeOf(fnAST.ReturnType)
	}

	fn := mod.AddFunction(fnAST.Name, paramTypes, retType)
	builder := NewBuilder(fn)

	l.symbols = make(map[string]Value)
	for i, p := range fnAST.Params {
		l.symbols[p.Name] = fn.NewValue(paramTypes[i])
	}

	for _, stmt := range fnAST.Body {
		l.lowerStmt(builder, stmt)
	}

	if needsImplicitReturn(fn) {
		builder.Ret()
	}
}

func needsImplicitReturn(fn *Function) bool {
	if len(fn.Blocks) == 0 {
		return true
	}
	last := fn.Blocks[len(fn.Blocks)-1]
	if len(last.Instrs) == 0 {
		return true
	}
	return last.Instrs[len(last.Instrs)-1].Op != Ret
}

func (l *Lowering) lowerStmt(b *Builder, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		if s.Init != nil {
			l.symbols[s.Name] = l.lowerExpr(b, s.Init)
		}

	case *ast.ReturnStmt:
		if s.Value != nil {
			b.RetValue(l.lowerExpr(b, s.Value))
		} else {
			b.Ret()
		}

	case *ast.ExprStmt:
		if s.Expr != nil {
			l.lowerExpr(b, s.Expr)
		}

	case *ast.IfStmt:
		l.lowerIf(b, s)

	case *ast.WhileStmt:
		l.lowerWhile(b, s)

	case *ast.Block:
		for _, inner := range s.Stmts {
			l.lowerStmt(b, inner)
		}
	}
}

func (l *Lowering) lowerExpr(b *Builder, expr ast.Expr) Value {
	switch e := expr.(type) {
	case *ast.Identifier:
		if v, ok := l.symbols[e.Name]; ok {
			return v
		}
		return Value{}

	case *ast.IntLiteral:
		return b.ConstInt(e.Value)

	case *ast.FloatLiteral:
		return b.ConstFloat(e.Value)

	case *ast.StringLiteral:
		return b.ConstStr(e.Value)

	case *ast.BinaryExpr:
		var lhs, rhs Value
		if e.Left != nil {
			lhs = l.lowerExpr(b, e.Left)
		}
		if e.Right != nil {
			rhs = l.lowerExpr(b, e.Right)
		}
		switch e.Op {
		case ast.Add:
			return b.Add(lhs, rhs)
		case ast.Sub:
			return b.Sub(lhs, rhs)
		case ast.Mul:
			return b.Mul(lhs, rhs)
		case ast.Div:
			return b.Div(lhs, rhs)
		case ast.CmpEq:
			return b.CmpEq(lhs, rhs)
		case ast.CmpNe:
			return b.CmpNe(lhs, rhs)
		case ast.CmpLt:
			return b.CmpLt(lhs, rhs)
		case ast.CmpLe:
			return b.CmpLe(lhs, rhs)
		case ast.CmpGt:
			return b.CmpGt(lhs, rhs)
		case ast.CmpGe:
			return b.CmpGe(lhs, rhs)
		default:
			return Value{}
		}

	case *ast.UnaryExpr:
		var operand Value
		if e.Operand != nil {
			operand = l.lowerExpr(b, e.Operand)
		}
		if e.Op == ast.Neg {
			return b.Neg(operand)
		}
		return operand

	case *ast.CallExpr:
		args := make([]Value, len(e.Args))
		for i, arg := range e.Args {
			args[i] = l.lowerExpr(b, arg)
		}
		retType := types.TVoid
		if sig, ok := l.sigs[e.Callee]; ok {
			retType = sig.ReturnType
		}
		return b.Call(e.Callee, args, retType)

	case *ast.GroupExpr:
		if e.Inner != nil {
			return l.lowerExpr(b, e.Inner)
		}
		return Value{}

	default:
		return Value{}
	}
}

func (l *Lowering) lowerIf(b *Builder, ifStmt *ast.IfStmt) {
	cond := l.lowerExpr(b, ifStmt.Condition)

	thenBB := b.CreateBlock("if.then")
	mergeBB := b.CreateBlock("if.end")

	if len(ifStmt.Else) == 0 {
		b.CondBr(cond, thenBB, mergeBB)
	} else {
		elseBB := b.CreateBlock("if.else")
		b.CondBr(cond, thenBB, elseBB)

		b.SetInsertPoint(elseBB)
		for _, s := range ifStmt.Else {
			l.lowerStmt(b, s)
		}
		b.Br(mergeBB)
	}

	b.SetInsertPoint(thenBB)
	for _, s := range ifStmt.Then {
		l.lowerStmt(b, s)
	}
	b.Br(mergeBB)

	b.SetInsertPoint(mergeBB)
}

func (l *Lowering) lowerWhile(b *Builder, whileStmt *ast.WhileStmt) {
	condBB := b.CreateBlock("while.cond")
	bodyBB := b.CreateBlock("while.body")
	endBB := b.CreateBlock("while.end")

	b.Br(condBB)

	b.SetInsertPoint(condBB)
	cond := l.lowerExpr(b, whileStmt.Condition)
	b.CondBr(cond, bodyBB, endBB)

	b.SetInsertPoint(bodyBB)
	for _, s := range whileStmt.Body {
		l.lowerStmt(b, s)
	}
	b.Br(condBB)

	b.SetInsertPoint(endBB)
}
