package registry

import (
	"fmt"

	"github.com/Gabie-of-the-Bo/nessa-core/internal/diagnostics"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/token"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

// UnaryOperator is a prefix or postfix operator, e.g. `!x` or `x++`
// (spec.md §3 "Operator... Unary{prefix, representation, operations}").
type UnaryOperator struct {
	ID             int
	Prefix         bool
	Representation string
	Operations     []Operation
}

// BinaryOperator is an infix operator, e.g. `a + b`.
type BinaryOperator struct {
	ID             int
	Representation string
	Operations     []Operation
}

// NaryOperator is a bracketed n-ary call form, e.g. `a[b, c]`
// (spec.md §3 "Nary{open_rep, close_rep, operations}").
type NaryOperator struct {
	ID         int
	OpenRep    string
	CloseRep   string
	Operations []Operation
}

// DefineUnaryOperator registers a new unary operator representation. Fails
// on representation collision with any existing unary operator (spec.md
// §3 invariant 1, §4.2 define_unary_operator).
func (c *Context) DefineUnaryOperator(representation string, prefix bool) (int, error) {
	if _, exists := c.unaryOpByRep[representation]; exists {
		return -1, diagnostics.Newf(diagnostics.ErrDuplicateName, token.Location{}, "unary operator %q is already defined", representation)
	}
	id := len(c.UnaryOps)
	c.UnaryOps = append(c.UnaryOps, UnaryOperator{ID: id, Prefix: prefix, Representation: representation})
	c.unaryOpByRep[representation] = id
	return id, nil
}

// DefineBinaryOperator registers a new binary operator representation.
func (c *Context) DefineBinaryOperator(representation string) (int, error) {
	if _, exists := c.binaryOpByRep[representation]; exists {
		return -1, diagnostics.Newf(diagnostics.ErrDuplicateName, token.Location{}, "binary operator %q is already defined", representation)
	}
	id := len(c.BinaryOps)
	c.BinaryOps = append(c.BinaryOps, BinaryOperator{ID: id, Representation: representation})
	c.binaryOpByRep[representation] = id
	return id, nil
}

// DefineNaryOperator registers a new n-ary bracket operator. Fails if
// either open or close collides with any existing opener or closer
// (spec.md §4.2 define_nary_operator: "fails if either string collides
// with any existing opener or closer").
func (c *Context) DefineNaryOperator(open, close string) (int, error) {
	if _, exists := c.naryOpenReps[open]; exists {
		return -1, diagnostics.Newf(diagnostics.ErrDuplicateName, token.Location{}, "n-ary opener %q is already defined", open)
	}
	if _, exists := c.naryCloseReps[open]; exists {
		return -1, diagnostics.Newf(diagnostics.ErrDuplicateName, token.Location{}, "n-ary opener %q collides with an existing closer", open)
	}
	if _, exists := c.naryCloseReps[close]; exists {
		return -1, diagnostics.Newf(diagnostics.ErrDuplicateName, token.Location{}, "n-ary closer %q is already defined", close)
	}
	if _, exists := c.naryOpenReps[close]; exists {
		return -1, diagnostics.Newf(diagnostics.ErrDuplicateName, token.Location{}, "n-ary closer %q collides with an existing opener", close)
	}
	id := len(c.NaryOps)
	c.NaryOps = append(c.NaryOps, NaryOperator{ID: id, OpenRep: open, CloseRep: close})
	c.naryOpenReps[open] = id
	c.naryCloseReps[close] = id
	return id, nil
}

// DefUnaryOperation adds an overload to a unary operator, rejecting
// subsumption in either direction against the existing overload set
// (spec.md §4.2 def_unary_operation).
func (c *Context) DefUnaryOperation(opID int, templates int, argT types.Type, ret types.Type, impl interface{}) (int, error) {
	if opID < 0 || opID >= len(c.UnaryOps) {
		return -1, fmt.Errorf("unknown unary operator id %d", opID)
	}
	op := &c.UnaryOps[opID]
	if err := c.checkAntichain(op.Operations, argT); err != nil {
		return -1, err
	}
	idx := len(op.Operations)
	op.Operations = append(op.Operations, Operation{Templates: templates, Args: argT, Ret: ret, HasImpl: impl != nil, Impl: impl})
	return idx, nil
}

// DefBinaryOperation adds an overload to a binary operator. The argument
// pair is stored as And([a_t, b_t]) (spec.md §4.2 def_binary_operation).
func (c *Context) DefBinaryOperation(opID int, templates int, aT, bT types.Type, ret types.Type, impl interface{}) (int, error) {
	if opID < 0 || opID >= len(c.BinaryOps) {
		return -1, fmt.Errorf("unknown binary operator id %d", opID)
	}
	op := &c.BinaryOps[opID]
	args := types.And{Elements: []types.Type{aT, bT}}
	if err := c.checkAntichain(op.Operations, args); err != nil {
		return -1, err
	}
	idx := len(op.Operations)
	op.Operations = append(op.Operations, Operation{Templates: templates, Args: args, Ret: ret, HasImpl: impl != nil, Impl: impl})
	return idx, nil
}

// DefNaryOperation adds an overload to an n-ary operator. The argument
// list is stored as And([first_t, args_t...]) (spec.md §4.2
// def_nary_operation).
func (c *Context) DefNaryOperation(opID int, templates int, firstT types.Type, argsT []types.Type, ret types.Type, impl interface{}) (int, error) {
	if opID < 0 || opID >= len(c.NaryOps) {
		return -1, fmt.Errorf("unknown n-ary operator id %d", opID)
	}
	op := &c.NaryOps[opID]
	elems := append([]types.Type{firstT}, argsT...)
	args := types.And{Elements: elems}
	if err := c.checkAntichain(op.Operations, args); err != nil {
		return -1, err
	}
	idx := len(op.Operations)
	op.Operations = append(op.Operations, Operation{Templates: templates, Args: args, Ret: ret, HasImpl: impl != nil, Impl: impl})
	return idx, nil
}

// LookupUnaryOperator resolves a representation + prefix/postfix flag to
// its registry id.
func (c *Context) LookupUnaryOperator(representation string, prefix bool) (int, bool) {
	id, ok := c.unaryOpByRep[representation]
	if !ok || c.UnaryOps[id].Prefix != prefix {
		return -1, false
	}
	return id, true
}

// LookupBinaryOperator resolves a representation to its registry id.
func (c *Context) LookupBinaryOperator(representation string) (int, bool) {
	id, ok := c.binaryOpByRep[representation]
	return id, ok
}

// LookupNaryOperator resolves an open-bracket representation to its
// registry id.
func (c *Context) LookupNaryOperator(open string) (int, bool) {
	id, ok := c.naryOpenReps[open]
	return id, ok
}
