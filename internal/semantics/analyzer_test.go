package semantics

import (
	"testing"

	"github.com/LetsZero/zero-compiler/internal/frontend/lexer"
	"github.com/LetsZero/zero-compiler/internal/frontend/parser"
	"github.com/LetsZero/zero-compiler/internal/source"
	"github.com/LetsZero/zero-compiler/internal/types"
)

func analyze(t *testing.T, src string, setup func(*Analyzer)) Result {
	t.Helper()
	sm := source.NewManager()
	id := sm.LoadFromString("t.zero", src)
	p := parser.New(lexer.New(sm, id))
	prog := p.Parse()
	if p.HadError() {
		t.Fatalf("unexpected parse errors: %+v", p.Errors())
	}
	a := New()
	if setup != nil {
		setup(a)
	}
	return a.Analyze(prog)
}

func TestAnalyzeCleanProgram(t *testing.T) {
	res := analyze(t, `
fn add(a: int, b: int) -> int {
	return a + b;
}
fn main() -> int {
	let x = add(1, 2);
	return x;
}`, nil)
	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Diagnostics.All())
	}
}

func TestAnalyzeUndefinedVariable(t *testing.T) {
	res := analyze(t, `fn main() -> int { return y; }`, nil)
	assertHasKind(t, res, "undefined_variable")
}

func TestAnalyzeUndefinedFunction(t *testing.T) {
	res := analyze(t, `fn main() -> int { return missing(1); }`, nil)
	assertHasKind(t, res, "undefined_function")
}

func TestAnalyzeWrongArgCount(t *testing.T) {
	res := analyze(t, `
fn one(a: int) -> int { return a; }
fn main() -> int { return one(1, 2); }`, nil)
	assertHasKind(t, res, "wrong_arg_count")
}

func TestAnalyzeTypeMismatch(t *testing.T) {
	res := analyze(t, `
fn needsInt(a: int) -> int { return a; }
fn main() -> int { return needsInt(1.5); }`, nil)
	assertHasKind(t, res, "type_mismatch")
}

func TestAnalyzeReturnTypeMismatch(t *testing.T) {
	res := analyze(t, `fn main() -> int { return 1.5; }`, nil)
	assertHasKind(t, res, "return_type_mismatch")
}

func TestAnalyzeDuplicateDefinition(t *testing.T) {
	res := analyze(t, `
fn main() -> int { return 1; }
fn main() -> int { return 2; }`, nil)
	assertHasKind(t, res, "duplicate_definition")
}

func TestAnalyzeVariadicBuiltin(t *testing.T) {
	res := analyze(t, `fn main() -> int { print(1, 2, 3); return 0; }`, func(a *Analyzer) {
		a.RegisterBuiltin(FnSignature{Name: "print", ParamTypes: nil, ReturnType: types.TVoid, Variadic: true})
	})
	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics for variadic builtin call: %+v", res.Diagnostics.All())
	}
}

func TestAnalyzeScopesNestUnderIf(t *testing.T) {
	res := analyze(t, `
fn main() -> int {
	if 1 {
		let inner = 1;
	}
	return inner;
}`, nil)
	assertHasKind(t, res, "undefined_variable")
}

func assertHasKind(t *testing.T, res Result, kind string) {
	t.Helper()
	for _, d := range res.Diagnostics.All() {
		if d.Kind.String() == kind {
			return
		}
	}
	t.Fatalf("expected a %s diagnostic, got: %+v", kind, res.Diagnostics.All())
}
