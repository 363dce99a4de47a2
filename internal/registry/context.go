// Package registry implements the mutable world in which types, operators,
// functions, interfaces and interface implementations are declared
// (spec.md §4.2). It is read-only once checking begins (spec.md §5); all
// mutation happens during a prior declaration-collection pass external to
// this core.
//
// Grounded on the teacher's symbols.SymbolTable (internal/symbols):
// a single struct holding parallel maps/slices per entity kind, with
// define_* methods guarding uniqueness the way
// symbol_table_operations.go's Define* family does, generalized from
// funxy's name-keyed single-overload symbols to Nessa's antichain-checked
// multi-overload operator/function sets.
package registry

import (
	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

// Context is the registry threaded by reference through every operation
// in the core (spec.md §9 "Global mutable state... modeled as an explicit
// configuration record threaded by reference").
type Context struct {
	Types       []TypeTemplate
	typesByName map[string]int

	UnaryOps      []UnaryOperator
	unaryOpByRep  map[string]int
	BinaryOps     []BinaryOperator
	binaryOpByRep map[string]int
	NaryOps       []NaryOperator
	naryOpenReps  map[string]int
	naryCloseReps map[string]int

	Functions      []Function
	functionByName map[string]int

	Interfaces      []Interface
	interfaceByName map[string]int
	InterfaceImpls  []InterfaceImpl
	implsByIface    map[int][]int // interface id -> indices into InterfaceImpls
}

// NewContext returns an empty registry.
func NewContext() *Context {
	return &Context{
		typesByName:    map[string]int{},
		unaryOpByRep:   map[string]int{},
		binaryOpByRep:  map[string]int{},
		naryOpenReps:   map[string]int{},
		naryCloseReps:  map[string]int{},
		functionByName: map[string]int{},
		interfaceByName: map[string]int{},
		implsByIface:   map[int][]int{},
	}
}

// TypeTemplateName implements types.NameResolver for diagnostics.
func (c *Context) TypeTemplateName(id int) string {
	if id < 0 || id >= len(c.Types) {
		return ""
	}
	return c.Types[id].Name
}

var _ types.NameResolver = (*Context)(nil)
