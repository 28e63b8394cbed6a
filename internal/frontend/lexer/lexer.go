// Package lexer turns a loaded source file into a stream of tokens.
package lexer

import (
	"github.com/LetsZero/zero-compiler/internal/source"
	"github.com/LetsZero/zero-compiler/internal/tokens"
)

// Lexer scans one source file into tokens.Token values on demand.
type Lexer struct {
	sm      *source.Manager
	id      source.ID
	content []byte
	start   int
	current int
	peeked  *tokens.Token
}

// New returns a Lexer over the source registered under id.
func New(sm *source.Manager, id source.ID) *Lexer {
	f := sm.Get(id)
	var content []byte
	if f != nil {
		content = f.Content
	}
	return &Lexer{sm: sm, id: id, content: content}
}

// Next consumes and returns the next token, draining any peeked token first.
func (l *Lexer) Next() tokens.Token {
	if l.peeked != nil {
		t := *l.peeked
		l.peeked = nil
		return t
	}
	return l.scanToken()
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() tokens.Token {
	if l.peeked == nil {
		t := l.scanToken()
		l.peeked = &t
	}
	return *l.peeked
}

// AtEnd reports whether the lexer has reached end-of-file.
func (l *Lexer) AtEnd() bool {
	if l.peeked != nil {
		return l.peeked.Kind == tokens.EOF
	}
	return l.isAtEnd()
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.content)
}

func (l *Lexer) peekChar() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.content[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.content) {
		return 0
	}
	return l.content[l.current+1]
}

func (l *Lexer) advance() byte {
	if l.isAtEnd() {
		return 0
	}
	c := l.content[l.current]
	l.current++
	return c
}

func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.peekChar() != expected {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		switch l.peekChar() {
		case ' ', '\r', '\t':
			l.advance()
		case '/':
			if l.peekNext() == '/' {
				l.skipLineComment()
			} else {
				return
			}
		default:
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	l.advance()
	l.advance()
	for !l.isAtEnd() && l.peekChar() != '\n' {
		l.advance()
	}
}

func (l *Lexer) span(start, end int) source.Span {
	return source.Span{SourceID: l.id, Start: start, End: end}
}

func (l *Lexer) makeToken(kind tokens.Kind) tokens.Token {
	text := ""
	if l.content != nil {
		text = string(l.content[l.start:l.current])
	}
	return tokens.Token{Kind: kind, Span: l.span(l.start, l.current), Text: text}
}

func (l *Lexer) errorToken(message string) tokens.Token {
	return tokens.Token{Kind: tokens.Error, Span: l.span(l.current, l.current+1), Text: message}
}

func (l *Lexer) scanToken() tokens.Token {
	l.skipWhitespace()
	l.start = l.current

	if l.isAtEnd() {
		return l.makeToken(tokens.EOF)
	}

	c := l.advance()

	if isAlpha(c) {
		return l.scanIdentifier()
	}
	if isDigit(c) {
		return l.scanNumber()
	}
	if c == '"' {
		return l.scanString()
	}

	switch c {
	case '(':
		return l.makeToken(tokens.LParen)
	case ')':
		return l.makeToken(tokens.RParen)
	case '{':
		return l.makeToken(tokens.LBrace)
	case '}':
		return l.makeToken(tokens.RBrace)
	case '[':
		return l.makeToken(tokens.LBracket)
	case ']':
		return l.makeToken(tokens.RBracket)
	case ',':
		return l.makeToken(tokens.Comma)
	case ':':
		return l.makeToken(tokens.Colon)
	case ';':
		return l.makeToken(tokens.Semicolon)
	case '\n':
		return l.makeToken(tokens.Newline)
	case '+':
		return l.makeToken(tokens.Plus)
	case '*':
		return l.makeToken(tokens.Star)
	case '/':
		return l.makeToken(tokens.Slash)
	case '-':
		if l.match('>') {
			return l.makeToken(tokens.Arrow)
		}
		return l.makeToken(tokens.Minus)
	case '=':
		if l.match('=') {
			return l.makeToken(tokens.Eq)
		}
		return l.makeToken(tokens.Assign)
	case '!':
		if l.match('=') {
			return l.makeToken(tokens.NotEq)
		}
		return l.makeToken(tokens.Bang)
	case '<':
		if l.match('=') {
			return l.makeToken(tokens.LessEq)
		}
		return l.makeToken(tokens.Less)
	case '>':
		if l.match('=') {
			return l.makeToken(tokens.GreaterEq)
		}
		return l.makeToken(tokens.Greater)
	}

	return l.errorToken("Unexpected character")
}

func (l *Lexer) scanIdentifier() tokens.Token {
	for isAlnum(l.peekChar()) {
		l.advance()
	}
	text := string(l.content[l.start:l.current])
	return l.makeToken(tokens.LookupIdent(text))
}

func (l *Lexer) scanNumber() tokens.Token {
	for isDigit(l.peekChar()) {
		l.advance()
	}
	if l.peekChar() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peekChar()) {
			l.advance()
		}
		return l.makeToken(tokens.FloatLiteral)
	}
	return l.makeToken(tokens.IntLiteral)
}

// scanString consumes a double-quoted literal, preserving escape
// sequences verbatim in the text view. The parser strips the surrounding
// quotes; escape interpretation happens when materializing the literal's
// value.
func (l *Lexer) scanString() tokens.Token {
	for !l.isAtEnd() && l.peekChar() != '"' {
		if l.peekChar() == '\\' && l.peekNext() != 0 {
			l.advance()
		}
		l.advance()
	}
	if l.isAtEnd() {
		return l.errorToken("Unterminated string")
	}
	l.advance() // closing quote
	return l.makeToken(tokens.StringLiteral)
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
