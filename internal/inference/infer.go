// Package inference implements infer_type (spec.md §4.4): a recursive
// function from an AST expression to its type, given a registry snapshot,
// an overload resolver and a lexical variable scope.
//
// Grounded on the teacher's recursive type-inference walk
// (internal/typesystem's interplay with internal/evaluator's expression
// dispatch) but restructured as a plain type switch over internal/ast's
// closed node set, per spec.md §9's explicit "exhaustive case analysis,
// any unimplemented variant must be a hard error" design note.
package inference

import (
	"fmt"

	"github.com/Gabie-of-the-Bo/nessa-core/internal/ast"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/diagnostics"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/registry"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/resolver"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/token"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

// Inferer carries the fixed dependencies needed to infer expression
// types: a frozen registry snapshot and the overload resolver built over
// it (spec.md §5: "the registry is read-only during checking").
type Inferer struct {
	Ctx *registry.Context
	Res *resolver.Resolver
}

// New builds an Inferer over ctx and res.
func New(ctx *registry.Context, res *resolver.Resolver) *Inferer {
	return &Inferer{Ctx: ctx, Res: res}
}

// InferType infers the type of expr under env (spec.md §4.4). Every
// Expression variant defined in internal/ast must have a case here; an
// unrecognized concrete type is a programmer error, not a user-facing
// diagnostic, so it panics rather than returning a CompilerError.
func (inf *Inferer) InferType(env *Env, expr ast.Expression) (types.Type, error) {
	switch e := expr.(type) {

	case *ast.Literal:
		return e.Type, nil

	case *ast.Variable:
		t, ok := env.Lookup(e.Name)
		if !ok {
			return nil, diagnostics.Newf(diagnostics.ErrUnknownIdentifier, e.Loc(), "unknown variable %q", e.Name)
		}
		return t, nil

	case *ast.TupleExpr:
		elems := make([]types.Type, 0, len(e.Elements))
		for _, el := range e.Elements {
			t, err := inf.InferType(env, el)
			if err != nil {
				return nil, err
			}
			elems = append(elems, t)
		}
		return types.And{Elements: elems}, nil

	case *ast.AttributeAccess:
		return inf.inferAttributeAccess(env, e)

	case *ast.UnaryOperationCall:
		argT, err := inf.InferType(env, e.Arg)
		if err != nil {
			return nil, err
		}
		res, err := inf.Res.ResolveUnary(e.OperatorID, argT, e.TemplateArgs, false, e.Loc())
		if err != nil {
			return nil, err
		}
		return composeReturn(res), nil

	case *ast.BinaryOperationCall:
		aT, err := inf.InferType(env, e.Left)
		if err != nil {
			return nil, err
		}
		bT, err := inf.InferType(env, e.Right)
		if err != nil {
			return nil, err
		}
		res, err := inf.Res.ResolveBinary(e.OperatorID, aT, bT, e.TemplateArgs, false, e.Loc())
		if err != nil {
			return nil, err
		}
		return composeReturn(res), nil

	case *ast.NaryOperationCall:
		firstT, err := inf.InferType(env, e.First)
		if err != nil {
			return nil, err
		}
		argTs := make([]types.Type, 0, len(e.Args))
		for _, a := range e.Args {
			t, err := inf.InferType(env, a)
			if err != nil {
				return nil, err
			}
			argTs = append(argTs, t)
		}
		res, err := inf.Res.ResolveNary(e.OperatorID, firstT, argTs, e.TemplateArgs, false, e.Loc())
		if err != nil {
			return nil, err
		}
		return composeReturn(res), nil

	case *ast.FunctionCall:
		argTs := make([]types.Type, 0, len(e.Args))
		for _, a := range e.Args {
			t, err := inf.InferType(env, a)
			if err != nil {
				return nil, err
			}
			argTs = append(argTs, t)
		}
		res, err := inf.Res.ResolveFunction(e.FunctionID, argTs, e.TemplateArgs, false, e.Loc())
		if err != nil {
			return nil, err
		}
		return composeReturn(res), nil

	case *ast.DoBlock:
		return e.ReturnType, nil

	case *ast.Lambda:
		var domain types.Type
		if len(e.Params) == 1 {
			domain = e.Params[0].Type
		} else {
			elems := make([]types.Type, 0, len(e.Params))
			for _, p := range e.Params {
				elems = append(elems, p.Type)
			}
			domain = types.And{Elements: elems}
		}
		return types.Function{Arg: domain, Ret: e.ReturnType}, nil

	case *ast.QualifiedName:
		fn, ok := inf.Ctx.FunctionByID(e.FunctionID)
		if !ok {
			return nil, diagnostics.Newf(diagnostics.ErrUnknownIdentifier, e.Loc(), "unknown function id %d", e.FunctionID)
		}
		var nonGeneric []registry.Operation
		for _, ov := range fn.Overloads {
			if ov.Templates == 0 {
				nonGeneric = append(nonGeneric, ov)
			}
		}
		if len(nonGeneric) != 1 {
			return nil, diagnostics.Newf(diagnostics.ErrAmbiguousCall, e.Loc(),
				"qualified reference to %q requires exactly one non-generic overload, found %d", fn.Name, len(nonGeneric))
		}
		return types.Function{Arg: nonGeneric[0].Args, Ret: nonGeneric[0].Ret}, nil

	default:
		panic(fmt.Sprintf("inference: unhandled expression node %T", expr))
	}
}

// ComposeReturn applies the overload's own substitution vector to its
// return type (spec.md §4.4: "compose substitutions from the overload
// with call-site substitutions applied to the returned type"). Exported
// so the checker package can reuse it when it re-resolves a call site
// itself instead of delegating the whole expression to InferType.
func ComposeReturn(res resolver.Result) types.Type {
	return composeReturn(res)
}

// composeReturn is the unexported implementation.
func composeReturn(res resolver.Result) types.Type {
	if len(res.Substitution) == 0 {
		return res.ReturnType
	}
	m := make(types.Subst, len(res.Substitution))
	for i, t := range res.Substitution {
		m[i] = t
	}
	return types.SubTemplates(res.ReturnType, m)
}

// inferAttributeAccess implements spec.md §4.4's AttributeAccess rule,
// including the container/attribute reference-propagation table.
func (inf *Inferer) inferAttributeAccess(env *Env, e *ast.AttributeAccess) (types.Type, error) {
	objT, err := inf.InferType(env, e.Object)
	if err != nil {
		return nil, err
	}

	attrT, err := LookupAttributeRaw(inf.Ctx, objT, e.Index, e.Loc())
	if err != nil {
		return nil, err
	}

	return propagateAttributeRef(objT, attrT), nil
}

// LookupAttributeRaw resolves the declared (un-propagated) type of the
// index-th attribute of objT's underlying class, substituting template
// arguments when objT derefs to a Template instantiation. Exported so the
// checker package's attribute-assignment check (spec.md §4.5 item 3) can
// reuse the same lookup the read path uses, without the reference-
// propagation table that only applies to reads.
func LookupAttributeRaw(ctx *registry.Context, objT types.Type, index int, loc token.Location) (types.Type, error) {
	deref := types.DerefType(objT)

	var typeID int
	var templateArgs []types.Type
	switch d := deref.(type) {
	case types.Basic:
		typeID = d.ID
	case types.Template:
		typeID = d.ID
		templateArgs = d.Args
	default:
		return nil, diagnostics.Newf(diagnostics.ErrAttributeNotFound, loc,
			"attribute access on non-class type %s", types.GetName(objT, ctx))
	}

	tmpl, ok := ctx.TypeByID(typeID)
	if !ok || index < 0 || index >= len(tmpl.Attributes) {
		return nil, diagnostics.Newf(diagnostics.ErrAttributeNotFound, loc,
			"type %s has no attribute at index %d", types.GetName(objT, ctx), index)
	}

	attrT := tmpl.Attributes[index].Type
	if len(templateArgs) > 0 {
		m := make(types.Subst, len(templateArgs))
		for i, t := range templateArgs {
			m[i] = t
		}
		attrT = types.SubTemplates(attrT, m)
	}
	return attrT, nil
}

// propagateAttributeRef applies spec.md §4.4's container/attribute
// reference-propagation table.
func propagateAttributeRef(container types.Type, attr types.Type) types.Type {
	switch container.(type) {
	case types.MutRef:
		switch attr.(type) {
		case types.Ref, types.MutRef:
			return attr
		default:
			return types.MutRef{Inner: attr}
		}
	case types.Ref:
		switch u := attr.(type) {
		case types.MutRef:
			return types.Ref{Inner: u.Inner}
		case types.Ref:
			return types.Ref{Inner: u.Inner}
		default:
			return types.Ref{Inner: attr}
		}
	default:
		return attr
	}
}
