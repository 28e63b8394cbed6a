// Package pipeline drives one Zero compilation end to end: load source,
// lex, parse, analyze, lower to IR, then either dump the IR or run it.
// Grounded on the original compiler's Compile entry point: an Options
// struct in, a Result struct out, with every stage's state owned
// exclusively by this one call — no package-level globals survive
// between invocations, so concurrent or repeated Compile calls never
// share state.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/LetsZero/zero-compiler/internal/builtins"
	"github.com/LetsZero/zero-compiler/internal/diagnostics"
	"github.com/LetsZero/zero-compiler/internal/frontend/lexer"
	"github.com/LetsZero/zero-compiler/internal/frontend/parser"
	"github.com/LetsZero/zero-compiler/internal/interp"
	"github.com/LetsZero/zero-compiler/internal/ir"
	"github.com/LetsZero/zero-compiler/internal/semantics"
	"github.com/LetsZero/zero-compiler/internal/source"
	"github.com/LetsZero/zero-compiler/internal/tensorrt"
)

// Options configures one Compile call.
type Options struct {
	// EntryPath is the file read from disk when Code is empty. When Code
	// is non-empty it is only the display name used in diagnostics
	// ("<code>" if EntryPath is also empty).
	EntryPath string
	// Code is the source text to compile. When empty, EntryPath is read
	// from disk instead.
	Code string
	// EntryFunction names the function Execute calls; defaults to "main".
	EntryFunction string
	// DumpIR, when true, skips interpretation and returns the textual IR
	// dump instead.
	DumpIR bool
	// Builtins registers the standard print/log/... external functions
	// when non-nil. A caller that wants a bare interpreter with no
	// embedder-provided functions passes nil.
	Builtins *builtins.Registry
	// Tensors optionally backs the tensor.* opcodes; nil leaves them at
	// the null-pointer placeholder.
	Tensors tensorrt.Runtime
}

// Result is the outcome of one Compile call.
type Result struct {
	Success     bool
	IRDump      string
	Value       interp.Value
	ExitCode    int
	Diagnostics string
}

// Compile runs the full pipeline for opts, returning a Result. It never
// panics: an uncaught interpreter fault surfaces as Result.Success ==
// false with a diagnostics string describing it.
func Compile(opts Options) Result {
	sm := source.NewManager()

	var id source.ID
	if opts.Code != "" {
		name := opts.EntryPath
		if name == "" {
			name = "<code>"
		}
		id = sm.LoadFromString(name, opts.Code)
	} else {
		loaded, err := sm.Load(opts.EntryPath)
		if err != nil {
			return Result{Success: false, Diagnostics: fmt.Sprintf("error: %v\n", err)}
		}
		id = loaded
	}

	p := parser.New(lexer.New(sm, id))
	prog := p.Parse()
	if p.HadError() {
		return Result{Success: false, Diagnostics: renderParseErrors(sm, p.Errors())}
	}

	an := semantics.New()
	if opts.Builtins != nil {
		for _, sig := range opts.Builtins.Signatures() {
			an.RegisterBuiltin(sig)
		}
	}
	res := an.Analyze(prog)
	if res.Diagnostics.HasErrors() {
		return Result{Success: false, Diagnostics: diagnostics.RenderAll(sm, res.Diagnostics)}
	}

	mod := ir.NewLowering(res.Signatures).Lower(prog)

	if opts.DumpIR {
		return Result{Success: true, IRDump: ir.PrintModule(mod)}
	}

	in := interp.New()
	if opts.Builtins != nil {
		opts.Builtins.RegisterAll(an, in)
	}
	if opts.Tensors != nil {
		in.RegisterTensorRuntime(opts.Tensors)
	}

	entry := opts.EntryFunction
	if entry == "" {
		entry = "main"
	}
	value, err := in.Execute(mod, entry)
	if err != nil {
		return Result{Success: false, Diagnostics: fmt.Sprintf("error: %v\n", err)}
	}

	var diagText string
	if len(in.ContainedErrors()) > 0 {
		var b strings.Builder
		for _, c := range in.ContainedErrors() {
			fmt.Fprintf(&b, "warning: %v\n", c)
		}
		diagText = b.String()
	}

	return Result{
		Success:     true,
		Value:       value,
		ExitCode:    in.ExitCode(),
		Diagnostics: diagText,
	}
}

func renderParseErrors(sm *source.Manager, errs []parser.Error) string {
	var b strings.Builder
	for _, e := range errs {
		b.WriteString(diagnostics.Render(sm, diagnostics.New(diagnostics.SyntaxError, e.Message, e.Span)))
	}
	return b.String()
}
