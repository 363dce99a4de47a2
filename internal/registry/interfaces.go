package registry

import (
	"fmt"

	"github.com/Gabie-of-the-Bo/nessa-core/internal/diagnostics"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/token"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

// InterfaceMember is one required function/operator of an interface,
// carrying its own template-parameter count relative to the interface's
// parameter frame (spec.md §3 "Interface... each carrying its own
// template parameters relative to the interface's parameter frame").
type InterfaceMember struct {
	Name      string // empty for operator members; see Representation
	Representation string
	Templates int
	Args      types.Type
	Ret       types.Type
}

// Interface is a contract with a default-implementation surface (spec.md
// §3 "Interface").
type Interface struct {
	ID         int
	Name       string
	Params     []string
	Functions  []InterfaceMember
	UnaryOps   []InterfaceMember
	BinaryOps  []InterfaceMember
	NaryOps    []InterfaceMember
}

// InterfaceImpl is one registered implementation of an interface for a
// concrete (possibly still generic) implementing type (spec.md §3
// "InterfaceImpl").
type InterfaceImpl struct {
	InterfaceID      int
	Templates        int // implementation's own template-parameter count
	ImplementingType types.Type
	Args             []types.Type // bound interface arguments
}

// DefineInterface registers a new, initially member-less interface.
func (c *Context) DefineInterface(name string, params []string) (int, error) {
	if _, exists := c.interfaceByName[name]; exists {
		return -1, diagnostics.Newf(diagnostics.ErrDuplicateName, token.Location{}, "interface %q is already defined", name)
	}
	id := len(c.Interfaces)
	c.Interfaces = append(c.Interfaces, Interface{ID: id, Name: name, Params: params})
	c.interfaceByName[name] = id
	return id, nil
}

// AddInterfaceFunction appends a required plain-function member.
func (c *Context) AddInterfaceFunction(ifaceID int, m InterfaceMember) error {
	if ifaceID < 0 || ifaceID >= len(c.Interfaces) {
		return fmt.Errorf("unknown interface id %d", ifaceID)
	}
	c.Interfaces[ifaceID].Functions = append(c.Interfaces[ifaceID].Functions, m)
	return nil
}

// AddInterfaceUnaryOp appends a required unary-operator member.
func (c *Context) AddInterfaceUnaryOp(ifaceID int, m InterfaceMember) error {
	if ifaceID < 0 || ifaceID >= len(c.Interfaces) {
		return fmt.Errorf("unknown interface id %d", ifaceID)
	}
	c.Interfaces[ifaceID].UnaryOps = append(c.Interfaces[ifaceID].UnaryOps, m)
	return nil
}

// AddInterfaceBinaryOp appends a required binary-operator member.
func (c *Context) AddInterfaceBinaryOp(ifaceID int, m InterfaceMember) error {
	if ifaceID < 0 || ifaceID >= len(c.Interfaces) {
		return fmt.Errorf("unknown interface id %d", ifaceID)
	}
	c.Interfaces[ifaceID].BinaryOps = append(c.Interfaces[ifaceID].BinaryOps, m)
	return nil
}

// AddInterfaceNaryOp appends a required n-ary-operator member.
func (c *Context) AddInterfaceNaryOp(ifaceID int, m InterfaceMember) error {
	if ifaceID < 0 || ifaceID >= len(c.Interfaces) {
		return fmt.Errorf("unknown interface id %d", ifaceID)
	}
	c.Interfaces[ifaceID].NaryOps = append(c.Interfaces[ifaceID].NaryOps, m)
	return nil
}

// DefineInterfaceImpl registers an implementation (spec.md §4.2
// define_interface_impl: "append to the respective lists").
func (c *Context) DefineInterfaceImpl(ifaceID int, templates int, implementingType types.Type, args []types.Type) error {
	if ifaceID < 0 || ifaceID >= len(c.Interfaces) {
		return fmt.Errorf("unknown interface id %d", ifaceID)
	}
	idx := len(c.InterfaceImpls)
	c.InterfaceImpls = append(c.InterfaceImpls, InterfaceImpl{
		InterfaceID:      ifaceID,
		Templates:        templates,
		ImplementingType: implementingType,
		Args:             args,
	})
	c.implsByIface[ifaceID] = append(c.implsByIface[ifaceID], idx)
	return nil
}

// LookupInterface resolves an interface name to its registry id.
func (c *Context) LookupInterface(name string) (int, bool) {
	id, ok := c.interfaceByName[name]
	return id, ok
}

// InterfaceByID returns the Interface for id, if any.
func (c *Context) InterfaceByID(id int) (Interface, bool) {
	if id < 0 || id >= len(c.Interfaces) {
		return Interface{}, false
	}
	return c.Interfaces[id], true
}

// ImplsOf returns every registered implementation of the given interface.
func (c *Context) ImplsOf(ifaceID int) []InterfaceImpl {
	idxs := c.implsByIface[ifaceID]
	out := make([]InterfaceImpl, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, c.InterfaceImpls[i])
	}
	return out
}

// Implements decides whether v implements the given interface constraint
// (spec.md §3 bindability rule 2: "every constraint interface must be
// implemented by V"). It is the Context's realization of
// types.ConstraintChecker: search registered implementations of the
// constrained interface for one whose implementing type binds v, then
// verify the implementation's bound arguments are bindable to the
// constraint's requested arguments under the resulting substitution.
func (c *Context) Implements(v types.Type, constraint types.InterfaceConstraint) bool {
	for _, impl := range c.ImplsOf(constraint.InterfaceID) {
		ok, subst := types.BindableToSubst(v, impl.ImplementingType, c)
		if !ok {
			continue
		}
		if len(impl.Args) != len(constraint.Args) {
			continue
		}
		allOK := true
		for i, implArg := range impl.Args {
			substituted := types.SubTemplates(implArg, subst)
			if !types.BindableTo(substituted, constraint.Args[i], c) {
				allOK = false
				break
			}
		}
		if allOK {
			return true
		}
	}
	return false
}

var _ types.ConstraintChecker = (*Context)(nil)
