package semantics

import "github.com/LetsZero/zero-compiler/internal/types"

// scope is one lexical level of variable bindings, chained to its parent
// so lookup can search innermost-first.
type scope struct {
	parent *scope
	vars   map[string]types.Type
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: make(map[string]types.Type)}
}

// declareLocal binds name in this exact scope and reports whether it was
// new: false means name was already bound here (not in a parent) and
// the existing binding is kept — the caller turns that into a duplicate
// error.
func (s *scope) declareLocal(name string, t types.Type) bool {
	if _, exists := s.vars[name]; exists {
		return false
	}
	s.vars[name] = t
	return true
}

// lookup searches this scope, then each parent in turn.
func (s *scope) lookup(name string) (types.Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.vars[name]; ok {
			return t, true
		}
	}
	return types.Type{}, false
}
