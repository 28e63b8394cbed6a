package diagnostics

import (
	"strings"
	"testing"

	"github.com/LetsZero/zero-compiler/internal/source"
)

func TestBagHasErrorsOnlyWithErrorSeverity(t *testing.T) {
	b := NewBag()
	if b.HasErrors() {
		t.Fatalf("empty bag should have no errors")
	}
	b.Add(Diagnostic{Kind: UndefinedVariable, Severity: Warning, Message: "shadowed"})
	if b.HasErrors() {
		t.Fatalf("warning-only bag should report no errors")
	}
	b.Add(New(UndefinedVariable, "no such variable: x", source.InvalidSpan))
	if !b.HasErrors() {
		t.Fatalf("expected bag to report errors after adding one")
	}
	if len(b.All()) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(b.All()))
	}
}

func TestBagMergePreservesOrder(t *testing.T) {
	a := NewBag()
	a.Add(New(SyntaxError, "first", source.InvalidSpan))
	other := NewBag()
	other.Add(New(TypeMismatch, "second", source.InvalidSpan))
	a.Merge(other)
	all := a.All()
	if len(all) != 2 || all[0].Message != "first" || all[1].Message != "second" {
		t.Fatalf("unexpected merge order: %+v", all)
	}
}

func TestBagErrCombinesMessages(t *testing.T) {
	b := NewBag()
	b.Add(New(UndefinedFunction, "no such function: foo", source.InvalidSpan))
	b.Add(New(WrongArgCount, "expected 1 argument, got 2", source.InvalidSpan))
	err := b.Err()
	if err == nil {
		t.Fatalf("expected non-nil error")
	}
	if !strings.Contains(err.Error(), "foo") || !strings.Contains(err.Error(), "expected 1 argument") {
		t.Fatalf("combined error missing detail: %v", err)
	}
}

func TestRenderIncludesFileAndCaret(t *testing.T) {
	sm := source.NewManager()
	id := sm.LoadFromString("t.zero", "fn main() { return x; }")
	span := source.Span{SourceID: id, Start: 19, End: 20} // the 'x'
	d := New(UndefinedVariable, "no such variable: x", span)
	out := Render(sm, d)
	if !strings.Contains(out, "t.zero") {
		t.Fatalf("expected rendered diagnostic to name the file, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected a caret under the span, got %q", out)
	}
}
