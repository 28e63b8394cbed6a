// Package tokens defines the closed set of lexical token kinds recognized
// by the Zero lexer and the Token value that carries one through the
// parser.
package tokens

import (
	"fmt"

	"github.com/LetsZero/zero-compiler/internal/source"
)

// Kind identifies the lexical category of a token.
type Kind int

const (
	// Special
	EOF Kind = iota
	Error
	Newline

	// Literals and names
	Identifier
	IntLiteral
	FloatLiteral
	StringLiteral

	// Keywords
	Fn
	Let
	Return
	If
	Else
	While
	Use

	// Punctuation and operators
	Plus
	Minus
	Star
	Slash
	Assign
	Eq
	Bang
	NotEq
	Less
	Greater
	LessEq
	GreaterEq
	Arrow
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Semicolon
)

var kindNames = map[Kind]string{
	EOF:           "eof",
	Error:         "error",
	Newline:       "newline",
	Identifier:    "identifier",
	IntLiteral:    "int",
	FloatLiteral:  "float",
	StringLiteral: "string",
	Fn:            "fn",
	Let:           "let",
	Return:        "return",
	If:            "if",
	Else:          "else",
	While:         "while",
	Use:           "use",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Assign:        "=",
	Eq:            "==",
	Bang:          "!",
	NotEq:         "!=",
	Less:          "<",
	Greater:       ">",
	LessEq:        "<=",
	GreaterEq:     ">=",
	Arrow:         "->",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	Comma:         ",",
	Colon:         ":",
	Semicolon:     ";",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Keywords maps reserved identifier spellings to their keyword Kind.
var Keywords = map[string]Kind{
	"fn":     Fn,
	"let":    Let,
	"return": Return,
	"if":     If,
	"else":   Else,
	"while":  While,
	"use":    Use,
}

// LookupIdent classifies name as a keyword Kind or, failing that, as a
// plain Identifier.
func LookupIdent(name string) Kind {
	if k, ok := Keywords[name]; ok {
		return k
	}
	return Identifier
}

// Token is one lexical unit: its kind, the span of source it came from,
// and a text view into that source (string literals keep their quotes
// and escape sequences; the parser strips and interprets them).
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// IsTerminator reports whether t can end a statement during panic-mode
// resynchronization.
func (t Token) IsTerminator() bool {
	return t.Kind == Semicolon || t.Kind == Newline
}

// StartsStatement reports whether t's kind can begin a new statement or
// declaration, used as a resynchronization anchor by the parser.
func (t Token) StartsStatement() bool {
	switch t.Kind {
	case Fn, Let, If, While, Return:
		return true
	default:
		return false
	}
}
