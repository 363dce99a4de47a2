package registry

import (
	"fmt"

	"github.com/Gabie-of-the-Bo/nessa-core/internal/diagnostics"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/token"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

// Function is a named overload set (spec.md §3 "Function: name,
// overloads").
type Function struct {
	ID        int
	Name      string
	Overloads []Operation
}

// DefineFunction registers a new, initially empty, function name. Fails
// if name collides with an existing function (spec.md §4.2 invariant:
// names unique per symbol kind).
func (c *Context) DefineFunction(name string) (int, error) {
	if _, exists := c.functionByName[name]; exists {
		return -1, diagnostics.Newf(diagnostics.ErrDuplicateName, token.Location{}, "function %q is already defined", name)
	}
	id := len(c.Functions)
	c.Functions = append(c.Functions, Function{ID: id, Name: name})
	c.functionByName[name] = id
	return id, nil
}

// DefFunctionOverload adds an overload to a function, rejecting
// subsumption in either direction against the existing overload set
// (spec.md §4.2, same rule as operators).
func (c *Context) DefFunctionOverload(funcID int, templates int, args types.Type, ret types.Type, impl interface{}) (int, error) {
	if funcID < 0 || funcID >= len(c.Functions) {
		return -1, fmt.Errorf("unknown function id %d", funcID)
	}
	fn := &c.Functions[funcID]
	if err := c.checkAntichain(fn.Overloads, args); err != nil {
		return -1, err
	}
	idx := len(fn.Overloads)
	fn.Overloads = append(fn.Overloads, Operation{Templates: templates, Args: args, Ret: ret, HasImpl: impl != nil, Impl: impl})
	return idx, nil
}

// LookupFunction resolves a function name to its registry id.
func (c *Context) LookupFunction(name string) (int, bool) {
	id, ok := c.functionByName[name]
	return id, ok
}

// FunctionByID returns the Function for id, if any.
func (c *Context) FunctionByID(id int) (Function, bool) {
	if id < 0 || id >= len(c.Functions) {
		return Function{}, false
	}
	return c.Functions[id], true
}
