// Package diagnostics defines the compiler's (kind, message, span) error
// triple and the accumulator the semantic analyzer uses to keep checking
// after an error instead of stopping at the first one.
package diagnostics

import "github.com/LetsZero/zero-compiler/internal/source"

// Kind is the closed taxonomy of diagnostics a Zero compilation can
// produce, spanning the lexical, syntax, and semantic stages.
type Kind int

const (
	UnexpectedCharacter Kind = iota
	SyntaxError
	UndefinedVariable
	UndefinedFunction
	WrongArgCount
	TypeMismatch
	ReturnTypeMismatch
	DuplicateDefinition
)

func (k Kind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "unexpected_character"
	case SyntaxError:
		return "syntax_error"
	case UndefinedVariable:
		return "undefined_variable"
	case UndefinedFunction:
		return "undefined_function"
	case WrongArgCount:
		return "wrong_arg_count"
	case TypeMismatch:
		return "type_mismatch"
	case ReturnTypeMismatch:
		return "return_type_mismatch"
	case DuplicateDefinition:
		return "duplicate_definition"
	default:
		return "unknown"
	}
}

// Severity classifies how serious a diagnostic is. Zero's core only ever
// emits Error-severity diagnostics; Severity exists so a renderer that
// wants to grow warnings later has somewhere to put them.
type Severity int

const (
	Error Severity = iota
	Warning
)

// Diagnostic is one reported problem: its kind, a human-readable message,
// and the span it applies to.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Message  string
	Span     source.Span
}

// New returns an Error-severity diagnostic.
func New(kind Kind, message string, span source.Span) Diagnostic {
	return Diagnostic{Kind: kind, Severity: Error, Message: message, Span: span}
}
