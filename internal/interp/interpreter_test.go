package interp

import (
	"testing"

	"github.com/LetsZero/zero-compiler/internal/frontend/lexer"
	"github.com/LetsZero/zero-compiler/internal/frontend/parser"
	"github.com/LetsZero/zero-compiler/internal/ir"
	"github.com/LetsZero/zero-compiler/internal/semantics"
	"github.com/LetsZero/zero-compiler/internal/source"
	"github.com/LetsZero/zero-compiler/internal/types"
)

func compile(t *testing.T, src string) *ir.Module {
	return compileWith(t, src, nil)
}

func compileWith(t *testing.T, src string, setup func(*semantics.Analyzer)) *ir.Module {
	t.Helper()
	sm := source.NewManager()
	id := sm.LoadFromString("t.zero", src)
	p := parser.New(lexer.New(sm, id))
	prog := p.Parse()
	if p.HadError() {
		t.Fatalf("unexpected parse errors: %+v", p.Errors())
	}
	an := semantics.New()
	if setup != nil {
		setup(an)
	}
	res := an.Analyze(prog)
	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected semantic errors: %+v", res.Diagnostics.All())
	}
	return ir.NewLowering(res.Signatures).Lower(prog)
}

func TestExecuteSimpleArithmetic(t *testing.T) {
	mod := compile(t, "fn main() -> int { return 1 + 2 * 3; }")
	in := New()
	result, err := in.Execute(mod, "main")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ToInt() != 7 {
		t.Fatalf("expected 7, got %v", result)
	}
	if in.ExitCode() != 7 {
		t.Fatalf("expected exit code 7, got %d", in.ExitCode())
	}
}

func TestExecuteArgumentsBindPositionally(t *testing.T) {
	mod := compile(t, `
fn sub(a: int, b: int) -> int { return a - b; }
fn main() -> int { return sub(10, 3); }`)
	in := New()
	result, err := in.Execute(mod, "main")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ToInt() != 7 {
		t.Fatalf("expected sub(10,3) == 7, got %v", result)
	}
}

func TestExecuteRecursiveCallDoesNotClobberCallerFrame(t *testing.T) {
	mod := compile(t, `
fn fact(n: int) -> int {
	if n < 2 {
		return 1;
	}
	return n * fact(n - 1);
}
fn main() -> int { return fact(5); }`)
	in := New()
	result, err := in.Execute(mod, "main")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ToInt() != 120 {
		t.Fatalf("expected fact(5) == 120, got %v", result)
	}
}

func TestExecuteIfElseBranches(t *testing.T) {
	mod := compile(t, `
fn sign(n: int) -> int {
	if n < 0 {
		return -1;
	} else {
		return 1;
	}
}
fn main() -> int { return sign(-5); }`)
	in := New()
	result, err := in.Execute(mod, "main")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ToInt() != -1 {
		t.Fatalf("expected -1, got %v", result)
	}
}

// TestExecuteWhileLoopDrivenByExternal demonstrates a while loop whose
// condition is re-evaluated by calling an external function each pass,
// which is unaffected by the no-phi-node limitation below: CALL always
// re-executes, where a plain local variable mutated inside the loop body
// would not be visible to the condition on the next pass (see
// TestExecuteWhileConditionDoesNotObserveBodyMutation).
func TestExecuteWhileLoopDrivenByExternal(t *testing.T) {
	mod := compileWith(t, `
fn main() -> int {
	while remaining() {
		tick();
	}
	return 0;
}`, func(a *semantics.Analyzer) {
		a.RegisterBuiltin(semantics.FnSignature{Name: "remaining", ReturnType: types.TInt})
		a.RegisterBuiltin(semantics.FnSignature{Name: "tick", ReturnType: types.TVoid})
	})
	in := New()
	count := 3
	ticks := 0
	in.RegisterExternal("remaining", func(args []Value) (Value, error) {
		if count > 0 {
			count--
			return IntValue(1), nil
		}
		return IntValue(0), nil
	})
	in.RegisterExternal("tick", func(args []Value) (Value, error) {
		ticks++
		return Void, nil
	})
	_, err := in.Execute(mod, "main")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticks != 3 {
		t.Fatalf("expected 3 ticks, got %d", ticks)
	}
}

// TestExecuteWhileConditionDoesNotObserveBodyMutation pins down the
// documented SSA-without-phi-nodes simplification inherited from the
// original lowering: a while condition is lowered once, before its
// body, so it keeps referencing the pre-loop SSA value of any variable
// the body goes on to rebind. A condition that starts false therefore
// runs the body zero times regardless of what the body would have done
// to that variable.
func TestExecuteWhileConditionDoesNotObserveBodyMutation(t *testing.T) {
	mod := compile(t, `
fn main() -> int {
	let x = 0;
	while x > 10 {
		let x = x + 100;
		return x;
	}
	return x;
}`)
	in := New()
	result, err := in.Execute(mod, "main")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ToInt() != 0 {
		t.Fatalf("expected the false condition to skip the body entirely, got %v", result)
	}
}

func TestExecuteDivisionByZeroIsContainedNotFatal(t *testing.T) {
	mod := compile(t, "fn main() -> int { return 1 / 0; }")
	in := New()
	result, err := in.Execute(mod, "main")
	if err != nil {
		t.Fatalf("division by zero should be contained, not fatal: %v", err)
	}
	if result.ToInt() != 0 {
		t.Fatalf("expected substitute value 0, got %v", result)
	}
	if len(in.ContainedErrors()) != 1 {
		t.Fatalf("expected 1 contained error, got %d", len(in.ContainedErrors()))
	}
}

func TestExecuteUnresolvedCallIsContainedNotFatal(t *testing.T) {
	mod := compileWith(t, "fn main() -> int { missing_external(); return 0; }", func(a *semantics.Analyzer) {
		a.RegisterBuiltin(semantics.FnSignature{Name: "missing_external", ReturnType: types.TVoid})
	})
	in := New()
	_, err := in.Execute(mod, "main")
	if err != nil {
		t.Fatalf("unresolved call should be contained, not fatal: %v", err)
	}
	if len(in.ContainedErrors()) != 1 {
		t.Fatalf("expected 1 contained error, got %d", len(in.ContainedErrors()))
	}
}

func TestExecuteExternalPanicBecomesFatalError(t *testing.T) {
	mod := compileWith(t, "fn main() -> int { explode(); return 0; }", func(a *semantics.Analyzer) {
		a.RegisterBuiltin(semantics.FnSignature{Name: "explode", ReturnType: types.TVoid})
	})
	in := New()
	in.RegisterExternal("explode", func(args []Value) (Value, error) {
		panic("host bug")
	})
	_, err := in.Execute(mod, "main")
	if err == nil {
		t.Fatalf("expected a fatal error from the panicking external")
	}
	if _, ok := err.(FatalError); !ok {
		t.Fatalf("expected a FatalError, got %T: %v", err, err)
	}
}

func TestExecuteEntryFunctionNotFound(t *testing.T) {
	mod := compile(t, "fn main() -> int { return 0; }")
	in := New()
	_, err := in.Execute(mod, "nonexistent")
	if err == nil {
		t.Fatalf("expected an error for a missing entry function")
	}
}
