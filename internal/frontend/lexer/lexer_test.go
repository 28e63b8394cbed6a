package lexer

import (
	"testing"

	"github.com/LetsZero/zero-compiler/internal/source"
	"github.com/LetsZero/zero-compiler/internal/tokens"
)

func scanAll(t *testing.T, src string) []tokens.Token {
	t.Helper()
	sm := source.NewManager()
	id := sm.LoadFromString("t.zero", src)
	l := New(sm, id)
	var out []tokens.Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Kind == tokens.EOF {
			break
		}
	}
	return out
}

func kinds(toks []tokens.Token) []tokens.Kind {
	ks := make([]tokens.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestLexKeywordsAndPunctuation(t *testing.T) {
	toks := scanAll(t, "fn main() -> int { return 1; }")
	want := []tokens.Kind{
		tokens.Fn, tokens.Identifier, tokens.LParen, tokens.RParen, tokens.Arrow,
		tokens.Identifier, tokens.LBrace, tokens.Return, tokens.IntLiteral,
		tokens.Semicolon, tokens.RBrace, tokens.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexFloatVsIntVsDot(t *testing.T) {
	toks := scanAll(t, "1.5 1 1.")
	if toks[0].Kind != tokens.FloatLiteral || toks[0].Text != "1.5" {
		t.Fatalf("expected float 1.5, got %+v", toks[0])
	}
	if toks[1].Kind != tokens.IntLiteral || toks[1].Text != "1" {
		t.Fatalf("expected int 1, got %+v", toks[1])
	}
	// "1." has no digit after the dot, so it's an int followed by an
	// unexpected-character error for the dot (no dot token in the grammar).
	if toks[2].Kind != tokens.IntLiteral || toks[2].Text != "1" {
		t.Fatalf("expected int 1 before bare dot, got %+v", toks[2])
	}
	if toks[3].Kind != tokens.Error {
		t.Fatalf("expected error token for bare dot, got %+v", toks[3])
	}
}

func TestLexComparisonOperators(t *testing.T) {
	toks := scanAll(t, "= == ! != < > <= >=")
	want := []tokens.Kind{
		tokens.Assign, tokens.Eq, tokens.Bang, tokens.NotEq,
		tokens.Less, tokens.Greater, tokens.LessEq, tokens.GreaterEq, tokens.EOF,
	}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexStringLiteralPreservesEscapes(t *testing.T) {
	toks := scanAll(t, `"a\"b"`)
	if toks[0].Kind != tokens.StringLiteral {
		t.Fatalf("expected string literal, got %+v", toks[0])
	}
	if toks[0].Text != `"a\"b"` {
		t.Fatalf("text = %q, want quotes+escapes preserved", toks[0].Text)
	}
}

func TestLexLineCommentsAndNewlines(t *testing.T) {
	toks := scanAll(t, "let x = 1 // comment\nlet y = 2")
	var newlineCount int
	for _, tok := range toks {
		if tok.Kind == tokens.Newline {
			newlineCount++
		}
		if tok.Kind == tokens.Error {
			t.Fatalf("unexpected error token: %+v", tok)
		}
	}
	if newlineCount != 1 {
		t.Fatalf("expected exactly one newline token, got %d", newlineCount)
	}
}

func TestLexUnexpectedCharacter(t *testing.T) {
	toks := scanAll(t, "@")
	if toks[0].Kind != tokens.Error || toks[0].Text != "Unexpected character" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestLexPeekDoesNotConsume(t *testing.T) {
	sm := source.NewManager()
	id := sm.LoadFromString("t.zero", "let x")
	l := New(sm, id)

	first := l.Peek()
	second := l.Peek()
	if first != second {
		t.Fatalf("peek should be idempotent: %+v vs %+v", first, second)
	}
	consumed := l.Next()
	if consumed != first {
		t.Fatalf("next after peek should return the peeked token")
	}
}

func TestLexEOFIsRepeatable(t *testing.T) {
	sm := source.NewManager()
	id := sm.LoadFromString("t.zero", "")
	l := New(sm, id)
	for i := 0; i < 3; i++ {
		tok := l.Next()
		if tok.Kind != tokens.EOF {
			t.Fatalf("expected repeated EOF, got %+v", tok)
		}
	}
}

func TestSpanMonotonicity(t *testing.T) {
	toks := scanAll(t, "fn main() { return 1 + 2; }")
	for _, tok := range toks {
		if tok.Span.Start > tok.Span.End {
			t.Fatalf("token %+v has start > end", tok)
		}
	}
}
