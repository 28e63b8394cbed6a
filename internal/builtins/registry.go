// Package builtins provides the embedder-supplied external functions
// the spec's running example programs call by name: print, log, and a
// handful of tracing/piping variants. None of these exist in the
// language itself — Zero has no print statement — so an embedder wires
// them in by registering this package's Registry against both the
// semantic analyzer (so calls type-check) and the interpreter (so calls
// actually run), the same two-sided registration RegisterBuiltin and
// RegisterExternal exist to support.
package builtins

import (
	"fmt"
	"io"
	"os"

	"github.com/LetsZero/zero-compiler/colors"
	"github.com/LetsZero/zero-compiler/internal/interp"
	"github.com/LetsZero/zero-compiler/internal/semantics"
	"github.com/LetsZero/zero-compiler/internal/types"
)

// Registry is the standard set of built-in runtime functions. Stdout
// and Stderr default to os.Stdout/os.Stderr; tests substitute buffers.
type Registry struct {
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Registry writing to the process's real stdout/stderr.
func New() *Registry {
	return &Registry{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *Registry) out() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Registry) errOut() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}

// Signatures returns the FnSignature for every built-in this registry
// provides, for RegisterBuiltin-ing against a semantic analyzer.
func (r *Registry) Signatures() []semantics.FnSignature {
	return []semantics.FnSignature{
		{Name: "print", ReturnType: types.TVoid, Variadic: true},
		{Name: "log", ParamTypes: []types.Type{types.TUnknown}, ReturnType: types.TVoid, Variadic: true},
		{Name: "print_traced", ParamTypes: []types.Type{types.TUnknown, types.TInt}, ReturnType: types.TVoid},
		{Name: "print_piped", ParamTypes: []types.Type{types.TUnknown}, ReturnType: types.TVoid, Variadic: true},
		{Name: "print_fstring", ReturnType: types.TVoid, Variadic: true},
		{Name: "print_ex", ParamTypes: []types.Type{types.TUnknown, types.TInt}, ReturnType: types.TVoid, Variadic: true},
	}
}

// RegisterAll registers every built-in's FnSignature with an and its
// ExternalFn with in, so a program can both type-check and run calls to
// them.
func (r *Registry) RegisterAll(an *semantics.Analyzer, in *interp.Interpreter) {
	for _, sig := range r.Signatures() {
		an.RegisterBuiltin(sig)
	}
	in.RegisterExternal("print", r.print)
	in.RegisterExternal("log", r.log)
	in.RegisterExternal("print_traced", r.printTraced)
	in.RegisterExternal("print_piped", r.printPiped)
	in.RegisterExternal("print_fstring", r.printFstring)
	in.RegisterExternal("print_ex", r.printEx)
}

func stringify(v interp.Value) string {
	return v.String()
}

func (r *Registry) degrade(format string, args ...any) (interp.Value, error) {
	fmt.Fprintf(r.errOut(), "builtins: "+format+"\n", args...)
	return interp.Void, nil
}

// print writes every argument, space-separated, followed by a newline —
// the one built-in a hosting program is expected to always provide.
func (r *Registry) print(args []interp.Value) (interp.Value, error) {
	parts := make([]any, len(args))
	for i, a := range args {
		parts[i] = stringify(a)
	}
	fmt.Fprintln(r.out(), parts...)
	return interp.Void, nil
}

// colorByName maps the spec's color-name vocabulary to ANSI codes.
var colorByName = map[string]colors.COLOR{
	"red":     colors.RED,
	"green":   colors.GREEN,
	"yellow":  colors.YELLOW,
	"blue":    colors.BLUE,
	"magenta": colors.MAGENTA,
	"cyan":    colors.CYAN,
	"white":   colors.WHITE,
	"reset":   colors.RESET,
}

// log(message, color?, ansi?) prints message in the named color, or
// plain if color is absent or not a string. An unrecognized color name
// degrades to a stderr diagnostic and prints nothing. The ansi argument
// is accepted but not read.
func (r *Registry) log(args []interp.Value) (interp.Value, error) {
	if len(args) == 0 {
		return r.degrade("log called with no message")
	}
	message := stringify(args[0])
	if len(args) < 2 || !args[1].IsStr() {
		fmt.Fprintln(r.out(), message)
		return interp.Void, nil
	}
	c, ok := colorByName[args[1].S]
	if !ok {
		return r.degrade("log: unrecognized color %q", args[1].S)
	}
	colors.FprintWithColor(r.out(), c, message)
	fmt.Fprintln(r.out())
	return interp.Void, nil
}

// printTraced(message, trace_flag) prepends "[TRACE]" when trace_flag
// is nonzero.
func (r *Registry) printTraced(args []interp.Value) (interp.Value, error) {
	if len(args) < 2 {
		return r.degrade("print_traced requires (message, trace_flag)")
	}
	message := stringify(args[0])
	if args[1].ToInt() != 0 {
		fmt.Fprintf(r.out(), "[TRACE] %s\n", message)
	} else {
		fmt.Fprintln(r.out(), message)
	}
	return interp.Void, nil
}

// printPiped(value, label?) prints "label: value" when label is
// non-empty, else just value.
func (r *Registry) printPiped(args []interp.Value) (interp.Value, error) {
	if len(args) == 0 {
		return r.degrade("print_piped called with no value")
	}
	value := stringify(args[0])
	if len(args) >= 2 && args[1].IsStr() && args[1].S != "" {
		fmt.Fprintf(r.out(), "%s: %s\n", args[1].S, value)
		return interp.Void, nil
	}
	fmt.Fprintln(r.out(), value)
	return interp.Void, nil
}

// printFstring concatenates every argument and prints the result, the
// runtime half of the language's f-string interpolation syntax.
func (r *Registry) printFstring(args []interp.Value) (interp.Value, error) {
	var out string
	for _, a := range args {
		out += stringify(a)
	}
	fmt.Fprintln(r.out(), out)
	return interp.Void, nil
}

// printEx(message, mode, extra?) dispatches to plain print (mode 0),
// log with a color (mode 1, extra is the color name), or print_traced
// (mode 2, extra is the trace flag).
func (r *Registry) printEx(args []interp.Value) (interp.Value, error) {
	if len(args) < 2 {
		return r.degrade("print_ex requires (message, mode, extra?)")
	}
	message := args[0]
	mode := args[1].ToInt()
	var extra interp.Value
	if len(args) >= 3 {
		extra = args[2]
	}
	switch mode {
	case 0:
		return r.print([]interp.Value{message})
	case 1:
		return r.log([]interp.Value{message, extra})
	case 2:
		return r.printTraced([]interp.Value{message, extra})
	default:
		return r.degrade("print_ex: unrecognized mode %d", mode)
	}
}
