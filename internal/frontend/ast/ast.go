// Package ast defines Zero's abstract syntax tree: a small set of
// tagged-sum node kinds owned as a forest of trees. Every node carries
// its source Span; children are exclusively owned by their parent.
package ast

import "github.com/LetsZero/zero-compiler/internal/source"

// BinOp is a binary operator.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	CmpEq
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

func (op BinOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case CmpEq:
		return "=="
	case CmpNe:
		return "!="
	case CmpLt:
		return "<"
	case CmpLe:
		return "<="
	case CmpGt:
		return ">"
	case CmpGe:
		return ">="
	default:
		return "?"
	}
}

// UnaryOp is a unary operator.
type UnaryOp int

const (
	Neg UnaryOp = iota
	Not
)

// Expr is the tagged sum of expression node kinds. Dispatch is exhaustive
// type-switch over the concrete type, never an open hierarchy.
type Expr interface {
	exprNode()
	Span() source.Span
}

// Identifier is a bare name reference.
type Identifier struct {
	Name string
	Sp   source.Span
}

// IntLiteral is a decimal integer literal.
type IntLiteral struct {
	Value int64
	Sp    source.Span
}

// FloatLiteral is a decimal float literal.
type FloatLiteral struct {
	Value float64
	Sp    source.Span
}

// StringLiteral is a double-quoted string literal with escapes already
// interpreted.
type StringLiteral struct {
	Value string
	Sp    source.Span
}

// BinaryExpr applies a binary operator to two owned operands.
type BinaryExpr struct {
	Op    BinOp
	Left  Expr
	Right Expr
	Sp    source.Span
}

// UnaryExpr applies a unary operator to one owned operand.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
	Sp      source.Span
}

// CallExpr calls a named function with positional and/or keyword
// arguments. Keyword names are accepted syntactically and discarded; only
// the expression values survive into the AST.
type CallExpr struct {
	Callee string
	Args   []Expr
	Sp     source.Span
}

// GroupExpr is a parenthesized sub-expression, kept distinct from its
// inner expression so span coverage stays exact.
type GroupExpr struct {
	Inner Expr
	Sp    source.Span
}

func (*Identifier) exprNode()    {}
func (*IntLiteral) exprNode()    {}
func (*FloatLiteral) exprNode()  {}
func (*StringLiteral) exprNode() {}
func (*BinaryExpr) exprNode()    {}
func (*UnaryExpr) exprNode()     {}
func (*CallExpr) exprNode()      {}
func (*GroupExpr) exprNode()     {}

func (e *Identifier) Span() source.Span    { return e.Sp }
func (e *IntLiteral) Span() source.Span    { return e.Sp }
func (e *FloatLiteral) Span() source.Span  { return e.Sp }
func (e *StringLiteral) Span() source.Span { return e.Sp }
func (e *BinaryExpr) Span() source.Span    { return e.Sp }
func (e *UnaryExpr) Span() source.Span     { return e.Sp }
func (e *CallExpr) Span() source.Span      { return e.Sp }
func (e *GroupExpr) Span() source.Span     { return e.Sp }

// Stmt is the tagged sum of statement node kinds.
type Stmt interface {
	stmtNode()
	Span() source.Span
}

// TypeAnnotation names a declared type at some source location.
type TypeAnnotation struct {
	Name string
	Sp   source.Span
}

// LetStmt binds a name to the value of an initializer, with an optional
// type annotation.
type LetStmt struct {
	Name string
	Type *TypeAnnotation // nil if unannotated
	Init Expr             // nil if recovery dropped it
	Sp   source.Span
}

// ReturnStmt returns from the enclosing function, optionally with a value.
type ReturnStmt struct {
	Value Expr // nil for a bare return
	Sp    source.Span
}

// ExprStmt evaluates an expression for its side effects and discards the
// result.
type ExprStmt struct {
	Expr Expr
	Sp   source.Span
}

// IfStmt is a conditional with an optional else branch.
type IfStmt struct {
	Condition Expr
	Then      []Stmt
	Else      []Stmt // nil if there is no else branch
	Sp        source.Span
}

// WhileStmt is a pre-tested loop.
type WhileStmt struct {
	Condition Expr
	Body      []Stmt
	Sp        source.Span
}

// Block is a bare brace-delimited statement list, introducing a new
// lexical scope during semantic analysis.
type Block struct {
	Stmts []Stmt
	Sp    source.Span
}

func (*LetStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode() {}
func (*ExprStmt) stmtNode()   {}
func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*Block) stmtNode()      {}

func (s *LetStmt) Span() source.Span    { return s.Sp }
func (s *ReturnStmt) Span() source.Span { return s.Sp }
func (s *ExprStmt) Span() source.Span   { return s.Sp }
func (s *IfStmt) Span() source.Span     { return s.Sp }
func (s *WhileStmt) Span() source.Span  { return s.Sp }
func (s *Block) Span() source.Span      { return s.Sp }

// Param is one function parameter: a name with an optional type
// annotation (absent annotations resolve to types.Unknown downstream).
type Param struct {
	Name string
	Type *TypeAnnotation
	Sp   source.Span
}

// FnDecl is a top-level function definition.
type FnDecl struct {
	Name       string
	Params     []Param
	ReturnType *TypeAnnotation // nil defaults to void
	Body       []Stmt
	Sp         source.Span
}

// Program is an ordered list of top-level function declarations; `use`
// directives are recognized and skipped by the parser and leave no trace
// in the AST.
type Program struct {
	Functions []*FnDecl
}
