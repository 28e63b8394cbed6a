package semantics

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/LetsZero/zero-compiler/internal/types"
)

// FnSignature is a function's callable shape: its parameter types in
// order, its return type, and whether trailing arguments beyond
// ParamTypes are accepted (used for embedder-registered built-ins like
// print/log, which the language itself has no syntax to declare).
type FnSignature struct {
	Name       string
	ParamTypes []types.Type
	ReturnType types.Type
	Variadic   bool
}

// signatureTable holds every callable name visible to semantic analysis:
// user-defined functions collected in pass 1, plus any built-ins the
// embedder pre-registered before analysis starts.
type signatureTable struct {
	fns map[string]FnSignature
}

func newSignatureTable() *signatureTable {
	return &signatureTable{fns: make(map[string]FnSignature)}
}

func (t *signatureTable) declare(sig FnSignature) bool {
	if _, exists := t.fns[sig.Name]; exists {
		return false
	}
	t.fns[sig.Name] = sig
	return true
}

func (t *signatureTable) lookup(name string) (FnSignature, bool) {
	sig, ok := t.fns[name]
	return sig, ok
}

// names returns every declared/registered function name, sorted, for
// use in diagnostic messages that want to suggest what is in scope.
func (t *signatureTable) names() []string {
	names := maps.Keys(t.fns)
	sort.Strings(names)
	return names
}
