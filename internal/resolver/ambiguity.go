package resolver

import (
	"github.com/Gabie-of-the-Bo/nessa-core/internal/registry"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

// MatchingOverloads returns the indices of every overload that accepts
// argsType under bindability (with no explicit template arguments),
// regardless of count. Exported for the interface-implementation check
// (spec.md §4.5 item 9), which needs every match, not just ambiguous ones.
func MatchingOverloads(ctx *registry.Context, overloads []registry.Operation, argsType types.Type) []int {
	var matches []int
	for i, ov := range overloads {
		if types.BindableTo(argsType, ov.Args, ctx) {
			matches = append(matches, i)
		}
	}
	return matches
}

// isAmbiguous returns the indices of every overload that accepts argsType
// under bindability (with no explicit template arguments), when two or
// more match (spec.md §4.3 is_ambiguous). A single match, or none, is not
// ambiguous.
func isAmbiguous(ctx *registry.Context, overloads []registry.Operation, argsType types.Type) []int {
	matches := MatchingOverloads(ctx, overloads, argsType)
	if len(matches) < 2 {
		return nil
	}
	return matches
}

// IsAmbiguousUnary checks a unary-operator call site.
func (r *Resolver) IsAmbiguousUnary(opID int, argType types.Type) []int {
	op, ok := indexUnary(r.ctx, opID)
	if !ok {
		return nil
	}
	return isAmbiguous(r.ctx, op.Operations, argType)
}

// IsAmbiguousBinary checks a binary-operator call site.
func (r *Resolver) IsAmbiguousBinary(opID int, aType, bType types.Type) []int {
	op, ok := indexBinary(r.ctx, opID)
	if !ok {
		return nil
	}
	args := types.And{Elements: []types.Type{aType, bType}}
	return isAmbiguous(r.ctx, op.Operations, args)
}

// IsAmbiguousNary checks an n-ary-operator call site.
func (r *Resolver) IsAmbiguousNary(opID int, firstType types.Type, argTypes []types.Type) []int {
	op, ok := indexNary(r.ctx, opID)
	if !ok {
		return nil
	}
	elems := append([]types.Type{firstType}, argTypes...)
	args := types.And{Elements: elems}
	return isAmbiguous(r.ctx, op.Operations, args)
}

// IsAmbiguousFunction checks a function-call site.
func (r *Resolver) IsAmbiguousFunction(funcID int, argTypes []types.Type) []int {
	fn, ok := r.ctx.FunctionByID(funcID)
	if !ok {
		return nil
	}
	args := types.And{Elements: argTypes}
	return isAmbiguous(r.ctx, fn.Overloads, args)
}

// CandidateHints renders each matching overload's argument type as a hint
// string (spec.md §7: ambiguous-call errors "list all candidates as
// hints").
func CandidateHints(ctx *registry.Context, overloads []registry.Operation, indices []int) []string {
	hints := make([]string, 0, len(indices))
	for _, i := range indices {
		hints = append(hints, "candidate: "+types.GetName(overloads[i].Args, ctx))
	}
	return hints
}
