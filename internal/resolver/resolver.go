// Package resolver implements overload resolution (spec.md §4.3): given a
// symbol id, actual argument type(s), optional explicit template
// arguments and a substitute_return flag, pick the first matching
// overload in declaration order or report ambiguity/no-match.
//
// Grounded on the teacher's dispatch/witness-resolution machinery
// (internal/typesystem/dispatch.go's DispatchKind enumeration of how a
// call site's type arguments get resolved) generalized from funxy's
// single-dispatch trait-method lookup to the spec's four symmetric
// unary/binary/n-ary/function entry points plus an explicit antichain
// guarantee instead of a most-specific-instance search.
package resolver

import (
	"fmt"

	"github.com/Gabie-of-the-Bo/nessa-core/internal/diagnostics"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/registry"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/token"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

// Result is what a successful resolution yields (spec.md §4.3 step 5).
type Result struct {
	OverloadIndex int
	ReturnType    types.Type
	HasImpl       bool
	Substitution  []types.Type // length == overload.Templates
}

// Resolver resolves overloads against a fixed registry snapshot (spec.md
// §5: "the registry is read-only during checking").
type Resolver struct {
	ctx   *registry.Context
	cache *Cache
}

// New builds a Resolver over ctx. cache may be nil to disable memoization
// (spec.md §4.3: "implementations may omit the cache without changing
// semantics").
func New(ctx *registry.Context, cache *Cache) *Resolver {
	return &Resolver{ctx: ctx, cache: cache}
}

// resolve is the shared algorithm behind all four entry points (spec.md
// §4.3 "Algorithm (for function; others are identical modulo shape)").
func (r *Resolver) resolve(kind SymbolKind, symbolID int, overloads []registry.Operation, argsType types.Type, explicitTemplateArgs []types.Type, substituteReturn bool, loc token.Location, symbolDesc string) (Result, error) {
	if r.cache != nil {
		if cached, ok := r.cache.Get(kind, symbolID, argsType, explicitTemplateArgs); ok {
			return cached, nil
		}
	}

	for i, ov := range overloads {
		ok, subs := types.BindableToSubst(argsType, ov.Args, r.ctx)
		if !ok {
			continue
		}

		if len(explicitTemplateArgs) > 0 {
			mismatch := false
			for idx, explicit := range explicitTemplateArgs {
				if bound, present := subs[idx]; present {
					if !typesEqual(bound, explicit, r.ctx) {
						mismatch = true
						break
					}
				}
			}
			if mismatch {
				continue
			}
		}

		substVec := make([]types.Type, ov.Templates)
		for idx := 0; idx < ov.Templates; idx++ {
			if bound, present := subs[idx]; present {
				substVec[idx] = bound
			} else if idx < len(explicitTemplateArgs) {
				substVec[idx] = explicitTemplateArgs[idx]
			} else {
				substVec[idx] = types.TemplateParam{Index: idx}
			}
		}

		ret := ov.Ret
		if substituteReturn {
			ret = types.SubTemplates(ret, subs)
		}

		result := Result{OverloadIndex: i, ReturnType: ret, HasImpl: ov.HasImpl, Substitution: substVec}
		if r.cache != nil {
			r.cache.Put(kind, symbolID, argsType, explicitTemplateArgs, result)
		}
		return result, nil
	}

	err := diagnostics.Newf(diagnostics.ErrNoMatchingOverload, loc,
		"no matching overload for %s with argument type %s", symbolDesc, types.GetName(argsType, r.ctx))
	for _, ov := range overloads {
		err = err.WithHints(fmt.Sprintf("candidate: %s", types.GetName(ov.Args, r.ctx)))
	}
	return Result{}, err
}

func typesEqual(a, b types.Type, cc types.ConstraintChecker) bool {
	okAB := types.BindableTo(a, b, cc)
	okBA := types.BindableTo(b, a, cc)
	return okAB && okBA
}

// ResolveUnary resolves a unary-operator call site.
func (r *Resolver) ResolveUnary(opID int, argType types.Type, explicitTemplateArgs []types.Type, substituteReturn bool, loc token.Location) (Result, error) {
	op, ok := indexUnary(r.ctx, opID)
	if !ok {
		return Result{}, diagnostics.Newf(diagnostics.ErrNoMatchingOverload, loc, "unknown unary operator id %d", opID)
	}
	return r.resolve(KindUnaryOp, opID, op.Operations, argType, explicitTemplateArgs, substituteReturn, loc, fmt.Sprintf("unary operator %q", op.Representation))
}

// ResolveBinary resolves a binary-operator call site.
func (r *Resolver) ResolveBinary(opID int, aType, bType types.Type, explicitTemplateArgs []types.Type, substituteReturn bool, loc token.Location) (Result, error) {
	op, ok := indexBinary(r.ctx, opID)
	if !ok {
		return Result{}, diagnostics.Newf(diagnostics.ErrNoMatchingOverload, loc, "unknown binary operator id %d", opID)
	}
	args := types.And{Elements: []types.Type{aType, bType}}
	return r.resolve(KindBinaryOp, opID, op.Operations, args, explicitTemplateArgs, substituteReturn, loc, fmt.Sprintf("binary operator %q", op.Representation))
}

// ResolveNary resolves an n-ary-operator call site.
func (r *Resolver) ResolveNary(opID int, firstType types.Type, argTypes []types.Type, explicitTemplateArgs []types.Type, substituteReturn bool, loc token.Location) (Result, error) {
	op, ok := indexNary(r.ctx, opID)
	if !ok {
		return Result{}, diagnostics.Newf(diagnostics.ErrNoMatchingOverload, loc, "unknown n-ary operator id %d", opID)
	}
	elems := append([]types.Type{firstType}, argTypes...)
	args := types.And{Elements: elems}
	return r.resolve(KindNaryOp, opID, op.Operations, args, explicitTemplateArgs, substituteReturn, loc, fmt.Sprintf("n-ary operator %q%s", op.OpenRep, op.CloseRep))
}

// ResolveFunction resolves a function-call site (spec.md §4.3 the
// canonical walkthrough).
func (r *Resolver) ResolveFunction(funcID int, argTypes []types.Type, explicitTemplateArgs []types.Type, substituteReturn bool, loc token.Location) (Result, error) {
	fn, ok := r.ctx.FunctionByID(funcID)
	if !ok {
		return Result{}, diagnostics.Newf(diagnostics.ErrNoMatchingOverload, loc, "unknown function id %d", funcID)
	}
	args := types.And{Elements: argTypes}
	return r.resolve(KindFunction, funcID, fn.Overloads, args, explicitTemplateArgs, substituteReturn, loc, fmt.Sprintf("function %q", fn.Name))
}

// ResolveOverloadSet resolves against a caller-supplied overload list
// directly, bypassing the by-id lookups of the four typed entry points.
// Exported for the interface-implementation check (spec.md §4.5 item 9),
// which resolves a required member's substituted signature against the
// registered function/operator it names, not against one of the four
// fixed symbol tables by id alone. Caching is keyed under KindFunction
// since interface-member resolution is not on the checker's hot path.
func (r *Resolver) ResolveOverloadSet(symbolID int, overloads []registry.Operation, argsType types.Type, substituteReturn bool, loc token.Location, symbolDesc string) (Result, error) {
	return r.resolve(KindFunction, symbolID, overloads, argsType, nil, substituteReturn, loc, symbolDesc)
}

func indexUnary(ctx *registry.Context, id int) (registry.UnaryOperator, bool) {
	if id < 0 || id >= len(ctx.UnaryOps) {
		return registry.UnaryOperator{}, false
	}
	return ctx.UnaryOps[id], true
}

func indexBinary(ctx *registry.Context, id int) (registry.BinaryOperator, bool) {
	if id < 0 || id >= len(ctx.BinaryOps) {
		return registry.BinaryOperator{}, false
	}
	return ctx.BinaryOps[id], true
}

func indexNary(ctx *registry.Context, id int) (registry.NaryOperator, bool) {
	if id < 0 || id >= len(ctx.NaryOps) {
		return registry.NaryOperator{}, false
	}
	return ctx.NaryOps[id], true
}
