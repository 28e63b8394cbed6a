package pipeline

import (
	"strings"
	"testing"

	"github.com/LetsZero/zero-compiler/internal/builtins"
)

func TestCompileSimpleArithmeticSucceeds(t *testing.T) {
	res := Compile(Options{Code: "fn main() -> int { return 1 + 2 * 3; }"})
	if !res.Success {
		t.Fatalf("expected success, got diagnostics: %s", res.Diagnostics)
	}
	if res.ExitCode != 7 {
		t.Fatalf("expected exit code 7, got %d", res.ExitCode)
	}
}

func TestCompileDumpIRReturnsTextualModuleWithoutRunning(t *testing.T) {
	res := Compile(Options{Code: "fn main() -> int { return 1; }", DumpIR: true})
	if !res.Success {
		t.Fatalf("expected success, got diagnostics: %s", res.Diagnostics)
	}
	if !strings.Contains(res.IRDump, "fn @main(") {
		t.Fatalf("expected a textual IR dump, got %q", res.IRDump)
	}
}

func TestCompileSyntaxErrorFails(t *testing.T) {
	res := Compile(Options{Code: "fn main() -> int { return 1 + ; }"})
	if res.Success {
		t.Fatalf("expected a syntax error to fail compilation")
	}
	if res.Diagnostics == "" {
		t.Fatalf("expected rendered diagnostics")
	}
}

func TestCompileSemanticErrorFails(t *testing.T) {
	res := Compile(Options{Code: "fn main() -> int { return undefined_name; }"})
	if res.Success {
		t.Fatalf("expected an undefined-variable error to fail compilation")
	}
	if !strings.Contains(res.Diagnostics, "undefined") {
		t.Fatalf("expected the rendering to mention the undefined name, got %q", res.Diagnostics)
	}
}

func TestCompileWithBuiltinsRunsPrint(t *testing.T) {
	var out strings.Builder
	reg := &builtins.Registry{Stdout: &out, Stderr: &out}
	res := Compile(Options{
		Code:     `fn main() -> int { print("hello"); return 0; }`,
		Builtins: reg,
	})
	if !res.Success {
		t.Fatalf("expected success, got diagnostics: %s", res.Diagnostics)
	}
	if got := out.String(); got != "hello\n" {
		t.Fatalf("expected print to write through the registry, got %q", got)
	}
}

func TestCompileMissingFileFails(t *testing.T) {
	res := Compile(Options{EntryPath: "/nonexistent/path/to/a/file.zero"})
	if res.Success {
		t.Fatalf("expected a missing entry file to fail compilation")
	}
}

func TestCompileContainedErrorSurfacesAsWarningNotFailure(t *testing.T) {
	res := Compile(Options{Code: "fn main() -> int { return 1 / 0; }"})
	if !res.Success {
		t.Fatalf("a contained division by zero should not fail compilation, got diagnostics: %s", res.Diagnostics)
	}
	if !strings.Contains(res.Diagnostics, "division") {
		t.Fatalf("expected a warning naming the contained condition, got %q", res.Diagnostics)
	}
}
