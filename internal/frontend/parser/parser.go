// Package parser builds a Zero AST from a token stream via recursive
// descent with precedence climbing, recovering from syntax errors in
// panic mode so a single run can report more than one.
package parser

import (
	"strconv"
	"strings"

	"github.com/LetsZero/zero-compiler/internal/frontend/ast"
	"github.com/LetsZero/zero-compiler/internal/frontend/lexer"
	"github.com/LetsZero/zero-compiler/internal/source"
	"github.com/LetsZero/zero-compiler/internal/tokens"
)

// Error is one recorded syntax or lexical error.
type Error struct {
	Message string
	Span    source.Span
}

// Parser consumes a Lexer's token stream and builds an ast.Program,
// recording errors rather than stopping at the first one.
type Parser struct {
	lex *lexer.Lexer

	current  tokens.Token
	previous tokens.Token

	errors    []Error
	hadError  bool
	panicMode bool
}

// New returns a Parser positioned at the first token of src.
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex}
	p.advance()
	return p
}

// Errors returns every error recorded during parsing, in source order.
func (p *Parser) Errors() []Error { return p.errors }

// HadError reports whether any error was recorded.
func (p *Parser) HadError() bool { return p.hadError }

// ---------------------------------------------------------------------
// Token handling
// ---------------------------------------------------------------------

func (p *Parser) advance() {
	p.previous = p.current
	for {
		p.current = p.lex.Next()
		if p.current.Kind != tokens.Error {
			break
		}
		p.errorAt(p.current, p.current.Text)
	}
}

func (p *Parser) check(kind tokens.Kind) bool {
	return p.current.Kind == kind
}

func (p *Parser) match(kind tokens.Kind) bool {
	if !p.check(kind) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) consume(kind tokens.Kind, message string) {
	if p.check(kind) {
		p.advance()
		return
	}
	p.errorHere(message)
}

func (p *Parser) skipNewlines() {
	for p.match(tokens.Newline) {
	}
}

func (p *Parser) atEnd() bool {
	return p.current.Kind == tokens.EOF
}

// ---------------------------------------------------------------------
// Error handling
// ---------------------------------------------------------------------

func (p *Parser) errorHere(message string) {
	p.errorAt(p.current, message)
}

func (p *Parser) errorAt(tok tokens.Token, message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true
	p.errors = append(p.errors, Error{Message: message, Span: tok.Span})
}

// synchronize advances past the offending construct until the previous
// token is a statement terminator, or the current token can start a new
// declaration or statement.
func (p *Parser) synchronize() {
	p.panicMode = false
	for !p.atEnd() {
		if p.previous.IsTerminator() {
			return
		}
		if p.current.StartsStatement() {
			return
		}
		p.advance()
	}
}

// ---------------------------------------------------------------------
// Program
// ---------------------------------------------------------------------

// Parse consumes the entire token stream and returns the resulting
// program. Errors are collected on the Parser, not returned here.
func (p *Parser) Parse() *ast.Program {
	prog := &ast.Program{}

	p.skipNewlines()
	for !p.atEnd() {
		if p.check(tokens.Use) {
			p.advance()
			if p.check(tokens.Identifier) {
				p.advance()
			}
			p.skipNewlines()
			continue
		}

		if p.check(tokens.Fn) {
			if fn := p.parseFnDecl(); fn != nil {
				prog.Functions = append(prog.Functions, fn)
			}
		} else {
			p.errorHere("Expected function declaration")
			p.synchronize()
		}
		p.skipNewlines()
	}

	return prog
}

func (p *Parser) parseFnDecl() *ast.FnDecl {
	fn := &ast.FnDecl{}
	start := p.current.Span

	p.consume(tokens.Fn, "Expected 'fn'")

	if !p.check(tokens.Identifier) {
		p.errorHere("Expected function name")
		return nil
	}
	fn.Name = p.current.Text
	p.advance()

	p.consume(tokens.LParen, "Expected '(' after function name")
	fn.Params = p.parseParams()
	p.consume(tokens.RParen, "Expected ')' after parameters")

	if p.match(tokens.Arrow) {
		fn.ReturnType = p.parseType()
	}

	p.skipNewlines()
	p.consume(tokens.LBrace, "Expected '{' before function body")
	p.skipNewlines()

	for !p.check(tokens.RBrace) && !p.atEnd() {
		if stmt := p.parseStmt(); stmt != nil {
			fn.Body = append(fn.Body, stmt)
		}
		p.skipNewlines()
	}
	p.consume(tokens.RBrace, "Expected '}' after function body")

	fn.Sp = start.Merge(p.previous.Span)
	return fn
}

func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	if p.check(tokens.RParen) {
		return params
	}

	for {
		if !p.check(tokens.Identifier) {
			p.errorHere("Expected parameter name")
			break
		}
		param := ast.Param{Name: p.current.Text, Sp: p.current.Span}
		p.advance()

		if p.match(tokens.Colon) {
			param.Type = p.parseType()
		}

		params = append(params, param)
		if !p.match(tokens.Comma) {
			break
		}
	}
	return params
}

func (p *Parser) parseType() *ast.TypeAnnotation {
	sp := p.current.Span
	if p.check(tokens.Identifier) {
		name := p.current.Text
		p.advance()
		return &ast.TypeAnnotation{Name: name, Sp: sp}
	}
	p.errorHere("Expected type")
	return &ast.TypeAnnotation{Name: "unknown", Sp: sp}
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

func (p *Parser) parseStmt() ast.Stmt {
	p.skipNewlines()

	switch {
	case p.check(tokens.Let):
		return p.parseLetStmt()
	case p.check(tokens.Return):
		return p.parseReturnStmt()
	case p.check(tokens.If):
		return p.parseIfStmt()
	case p.check(tokens.While):
		return p.parseWhileStmt()
	case p.check(tokens.LBrace):
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseLetStmt() ast.Stmt {
	start := p.current.Span
	p.consume(tokens.Let, "Expected 'let'")

	if !p.check(tokens.Identifier) {
		p.errorHere("Expected variable name")
		return nil
	}
	name := p.current.Text
	p.advance()

	var typeAnnot *ast.TypeAnnotation
	if p.match(tokens.Colon) {
		typeAnnot = p.parseType()
	}

	p.consume(tokens.Assign, "Expected '=' after variable name")
	init := p.parseExpr()
	p.match(tokens.Semicolon)

	return &ast.LetStmt{Name: name, Type: typeAnnot, Init: init, Sp: start.Merge(p.previous.Span)}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.current.Span
	p.consume(tokens.Return, "Expected 'return'")

	var value ast.Expr
	if !p.check(tokens.Semicolon) && !p.check(tokens.Newline) && !p.check(tokens.RBrace) && !p.atEnd() {
		value = p.parseExpr()
	}
	p.match(tokens.Semicolon)

	return &ast.ReturnStmt{Value: value, Sp: start.Merge(p.previous.Span)}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.current.Span
	p.consume(tokens.If, "Expected 'if'")
	cond := p.parseExpr()

	p.skipNewlines()
	p.consume(tokens.LBrace, "Expected '{' after if condition")
	p.skipNewlines()

	var thenBranch []ast.Stmt
	for !p.check(tokens.RBrace) && !p.atEnd() {
		if stmt := p.parseStmt(); stmt != nil {
			thenBranch = append(thenBranch, stmt)
		}
		p.skipNewlines()
	}
	p.consume(tokens.RBrace, "Expected '}' after if body")

	var elseBranch []ast.Stmt
	p.skipNewlines()
	if p.match(tokens.Else) {
		p.skipNewlines()
		p.consume(tokens.LBrace, "Expected '{' after else")
		p.skipNewlines()
		for !p.check(tokens.RBrace) && !p.atEnd() {
			if stmt := p.parseStmt(); stmt != nil {
				elseBranch = append(elseBranch, stmt)
			}
			p.skipNewlines()
		}
		p.consume(tokens.RBrace, "Expected '}' after else body")
	}

	return &ast.IfStmt{Condition: cond, Then: thenBranch, Else: elseBranch, Sp: start.Merge(p.previous.Span)}
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.current.Span
	p.consume(tokens.While, "Expected 'while'")
	cond := p.parseExpr()

	p.skipNewlines()
	p.consume(tokens.LBrace, "Expected '{' after while condition")
	p.skipNewlines()

	var body []ast.Stmt
	for !p.check(tokens.RBrace) && !p.atEnd() {
		if stmt := p.parseStmt(); stmt != nil {
			body = append(body, stmt)
		}
		p.skipNewlines()
	}
	p.consume(tokens.RBrace, "Expected '}' after while body")

	return &ast.WhileStmt{Condition: cond, Body: body, Sp: start.Merge(p.previous.Span)}
}

func (p *Parser) parseBlock() ast.Stmt {
	start := p.current.Span
	p.consume(tokens.LBrace, "Expected '{'")
	p.skipNewlines()

	var stmts []ast.Stmt
	for !p.check(tokens.RBrace) && !p.atEnd() {
		if stmt := p.parseStmt(); stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.skipNewlines()
	}
	p.consume(tokens.RBrace, "Expected '}'")

	return &ast.Block{Stmts: stmts, Sp: start.Merge(p.previous.Span)}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.current.Span
	expr := p.parseExpr()
	p.match(tokens.Semicolon)

	sp := start
	if expr != nil {
		sp = expr.Span()
	}
	return &ast.ExprStmt{Expr: expr, Sp: sp}
}

// ---------------------------------------------------------------------
// Expressions (precedence climbing)
// ---------------------------------------------------------------------

func (p *Parser) parseExpr() ast.Expr {
	return p.parseEquality()
}

func (p *Parser) parseEquality() ast.Expr {
	expr := p.parseComparison()
	for p.check(tokens.Eq) || p.check(tokens.NotEq) {
		op := ast.CmpEq
		if p.current.Kind == tokens.NotEq {
			op = ast.CmpNe
		}
		p.advance()
		right := p.parseComparison()
		expr = mergeBinary(op, expr, right)
	}
	return expr
}

func (p *Parser) parseComparison() ast.Expr {
	expr := p.parseTerm()
	for p.check(tokens.Less) || p.check(tokens.Greater) || p.check(tokens.LessEq) || p.check(tokens.GreaterEq) {
		var op ast.BinOp
		switch p.current.Kind {
		case tokens.Less:
			op = ast.CmpLt
		case tokens.Greater:
			op = ast.CmpGt
		case tokens.LessEq:
			op = ast.CmpLe
		default:
			op = ast.CmpGe
		}
		p.advance()
		right := p.parseTerm()
		expr = mergeBinary(op, expr, right)
	}
	return expr
}

func (p *Parser) parseTerm() ast.Expr {
	expr := p.parseFactor()
	for p.check(tokens.Plus) || p.check(tokens.Minus) {
		op := ast.Add
		if p.current.Kind == tokens.Minus {
			op = ast.Sub
		}
		p.advance()
		right := p.parseFactor()
		expr = mergeBinary(op, expr, right)
	}
	return expr
}

func (p *Parser) parseFactor() ast.Expr {
	expr := p.parseUnary()
	for p.check(tokens.Star) || p.check(tokens.Slash) {
		op := ast.Mul
		if p.current.Kind == tokens.Slash {
			op = ast.Div
		}
		p.advance()
		right := p.parseUnary()
		expr = mergeBinary(op, expr, right)
	}
	return expr
}

func mergeBinary(op ast.BinOp, left, right ast.Expr) ast.Expr {
	sp := source.InvalidSpan
	if left != nil && right != nil {
		sp = left.Span().Merge(right.Span())
	} else if left != nil {
		sp = left.Span()
	} else if right != nil {
		sp = right.Span()
	}
	return &ast.BinaryExpr{Op: op, Left: left, Right: right, Sp: sp}
}

func (p *Parser) parseUnary() ast.Expr {
	if p.check(tokens.Minus) || p.check(tokens.Bang) {
		op := ast.Neg
		if p.current.Kind == tokens.Bang {
			op = ast.Not
		}
		start := p.current.Span
		p.advance()
		operand := p.parseUnary()

		sp := start
		if operand != nil {
			sp = start.Merge(operand.Span())
		}
		return &ast.UnaryExpr{Op: op, Operand: operand, Sp: sp}
	}
	return p.parseCall()
}

func (p *Parser) parseCall() ast.Expr {
	expr := p.parsePrimary()

	if id, ok := expr.(*ast.Identifier); ok && p.match(tokens.LParen) {
		call := &ast.CallExpr{Callee: id.Name, Sp: id.Span()}

		if !p.check(tokens.RParen) {
			for {
				// Keyword argument: `name =` — peek ahead over the lexer to
				// tell it apart from a positional identifier expression.
				if p.check(tokens.Identifier) && p.lex.Peek().Kind == tokens.Assign {
					p.advance() // keyword name, discarded
					p.advance() // '='
				}
				call.Args = append(call.Args, p.parseExpr())
				if !p.match(tokens.Comma) {
					break
				}
			}
		}

		p.consume(tokens.RParen, "Expected ')' after arguments")
		call.Sp = call.Sp.Merge(p.previous.Span)
		return call
	}

	return expr
}

func (p *Parser) parsePrimary() ast.Expr {
	switch {
	case p.match(tokens.IntLiteral):
		value, _ := strconv.ParseInt(p.previous.Text, 10, 64)
		return &ast.IntLiteral{Value: value, Sp: p.previous.Span}

	case p.match(tokens.FloatLiteral):
		value, _ := strconv.ParseFloat(p.previous.Text, 64)
		return &ast.FloatLiteral{Value: value, Sp: p.previous.Span}

	case p.match(tokens.StringLiteral):
		return &ast.StringLiteral{Value: unquote(p.previous.Text), Sp: p.previous.Span}

	case p.match(tokens.Identifier):
		return &ast.Identifier{Name: p.previous.Text, Sp: p.previous.Span}

	case p.match(tokens.LParen):
		start := p.previous.Span
		inner := p.parseExpr()
		p.consume(tokens.RParen, "Expected ')' after expression")
		return &ast.GroupExpr{Inner: inner, Sp: start.Merge(p.previous.Span)}
	}

	p.errorHere("Expected expression")
	return nil
}

// unquote strips the surrounding quotes from a string literal's raw text
// and interprets its escape sequences.
func unquote(text string) string {
	if len(text) < 2 {
		return ""
	}
	body := text[1 : len(text)-1]

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(body[i])
		}
	}
	return b.String()
}
