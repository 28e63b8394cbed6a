package diagnostics

import (
	"fmt"
	"strings"

	"github.com/LetsZero/zero-compiler/colors"
	"github.com/LetsZero/zero-compiler/internal/source"
)

// Render formats one diagnostic as a "Frame & Focus" block: the file
// position, the offending source line, a caret under the exact span, and
// a one-line focus message. Modeled on the original reporter's
// file:line:col header plus underlined source excerpt.
func Render(sm *source.Manager, d Diagnostic) string {
	lc := sm.GetLineCol(d.Span)
	path := sm.GetPath(d.Span.SourceID)

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s:%d:%d: %s\n",
		colors.SprintWithColor(colors.RED, severityLabel(d.Severity)),
		path, lc.Line, lc.Column, d.Message)

	file := sm.Get(d.Span.SourceID)
	if file == nil {
		return b.String()
	}
	lineText := file.LineText(lc.Line)
	b.WriteString("  ")
	b.WriteString(lineText)
	b.WriteByte('\n')

	caretCol := lc.Column - 1
	if caretCol < 0 {
		caretCol = 0
	}
	width := d.Span.End - d.Span.Start
	if width < 1 {
		width = 1
	}
	b.WriteString("  ")
	b.WriteString(strings.Repeat(" ", caretCol))
	b.WriteString(colors.SprintWithColor(colors.YELLOW, strings.Repeat("^", width)))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "  = %s: %s\n", colors.SprintWithColor(colors.CYAN, "focus"), focusFor(d.Kind))
	return b.String()
}

// RenderAll renders every diagnostic in a bag, in report order.
func RenderAll(sm *source.Manager, bag *Bag) string {
	var b strings.Builder
	for _, d := range bag.All() {
		b.WriteString(Render(sm, d))
	}
	return b.String()
}

func severityLabel(s Severity) string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

func focusFor(k Kind) string {
	switch k {
	case UnexpectedCharacter:
		return "the lexer does not recognize this character"
	case SyntaxError:
		return "the parser could not make sense of this token"
	case UndefinedVariable:
		return "no binding for this name is visible here"
	case UndefinedFunction:
		return "no function with this name was declared"
	case WrongArgCount:
		return "this call passes the wrong number of arguments"
	case TypeMismatch:
		return "the operand types are not compatible here"
	case ReturnTypeMismatch:
		return "the returned value does not match the declared return type"
	case DuplicateDefinition:
		return "this name was already declared (as a function, or as a variable in the same scope)"
	default:
		return "see message above"
	}
}
