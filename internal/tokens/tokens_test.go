package tokens

import "testing"

func TestLookupIdentKeywords(t *testing.T) {
	cases := map[string]Kind{
		"fn":     Fn,
		"let":    Let,
		"return": Return,
		"if":     If,
		"else":   Else,
		"while":  While,
		"use":    Use,
		"foobar": Identifier,
	}
	for text, want := range cases {
		if got := LookupIdent(text); got != want {
			t.Errorf("LookupIdent(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestStartsStatement(t *testing.T) {
	for _, k := range []Kind{Fn, Let, If, While, Return} {
		if !(Token{Kind: k}).StartsStatement() {
			t.Errorf("%v should start a statement", k)
		}
	}
	if (Token{Kind: Identifier}).StartsStatement() {
		t.Errorf("identifier should not start a statement")
	}
}
