package inference

import "github.com/Gabie-of-the-Bo/nessa-core/internal/types"

// Env binds variable names to their declared type within one lexical
// scope, chained to an enclosing scope (spec.md §4.4 "Variable binding").
// Declared types are stored unwrapped; Lookup applies the
// Ref/MutRef-or-wrap rule on read.
type Env struct {
	parent *Env
	vars   map[string]types.Type
}

// NewEnv returns an empty top-level scope.
func NewEnv() *Env {
	return &Env{vars: make(map[string]types.Type)}
}

// Child opens a nested scope, e.g. for a block or lambda body.
func (e *Env) Child() *Env {
	return &Env{parent: e, vars: make(map[string]types.Type)}
}

// Define binds name to its declared type in this scope, shadowing any
// outer binding of the same name.
func (e *Env) Define(name string, declared types.Type) {
	e.vars[name] = declared
}

// Declared returns the raw declared type of name, without the
// Ref/MutRef wrapping rule applied, walking outward through enclosing
// scopes.
func (e *Env) Declared(name string) (types.Type, bool) {
	for s := e; s != nil; s = s.parent {
		if t, ok := s.vars[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// Lookup returns the inferred type of a variable reference: the
// declared type as-is if it is already Ref/MutRef, else MutRef(declared)
// (spec.md §4.4 "variables are mutable places").
func (e *Env) Lookup(name string) (types.Type, bool) {
	declared, ok := e.Declared(name)
	if !ok {
		return nil, false
	}
	switch declared.(type) {
	case types.Ref, types.MutRef:
		return declared, true
	default:
		return types.MutRef{Inner: declared}, true
	}
}
