package checker

import (
	"github.com/Gabie-of-the-Bo/nessa-core/internal/ast"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/diagnostics"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/inference"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/registry"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/resolver"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/token"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

// bodyCtx carries the traversal state spec.md §4.5 items 3, 5 and 6 thread
// through one function/operation/lambda/do-block body: the lexical
// variable scope, the expected return type of the innermost such body, and
// whether break/continue are currently legal (spec.md item 6: "a context
// flag allowed starts false; becomes true inside while/for bodies and
// conditions; false again when entering a function/operation/lambda body").
type bodyCtx struct {
	env            *inference.Env
	expectedReturn types.Type
	breakAllowed   bool
}

// child returns a copy of bc scoped to a nested lexical block (if/while/for
// bodies), inheriting expectedReturn and breakAllowed unchanged.
func (bc *bodyCtx) child() *bodyCtx {
	return &bodyCtx{env: bc.env.Child(), expectedReturn: bc.expectedReturn, breakAllowed: bc.breakAllowed}
}

// checkBody runs passes 3/4/5/6 together over one function/operation/
// lambda/do-block body (spec.md §4.5: type check, ambiguity, return,
// break/continue are all per-node checks over the same recursive descent,
// so this repo implements them as a single traversal rather than four
// literal re-walks of the tree). If expectedReturn is non-Empty, the body
// must definitely return (spec.md §4.5 item 5 "ensured return"); an
// implementation "may relax it only for Empty", which is the relaxation
// this repo takes (spec.md §4.5 item 5, last sentence).
func (c *Checker) checkBody(bc *bodyCtx, body []ast.Statement) error {
	if err := c.checkStatements(bc, body); err != nil {
		return err
	}
	if !isEmptyType(bc.expectedReturn) && !definitelyReturns(body) {
		loc := token.Location{}
		if len(body) > 0 {
			loc = body[len(body)-1].Loc()
		}
		return diagnostics.Newf(diagnostics.ErrNotEnsuredReturn, loc,
			"not every path returns a value of type %s", types.GetName(bc.expectedReturn, c.Ctx))
	}
	return nil
}

func isEmptyType(t types.Type) bool {
	_, ok := t.(types.Empty)
	return ok
}

// definitelyReturns is the structural "definitely returns" property of
// spec.md §4.5 item 5: a body definitely returns iff its last statement is
// return, or an if/else-if/else whose every branch definitely returns.
// Loops and do-blocks never count (spec.md §4.5 item 5; §8 boundary case
// "if with no else never definitely returns even if its then-branch does").
func definitelyReturns(body []ast.Statement) bool {
	if len(body) == 0 {
		return false
	}
	switch s := body[len(body)-1].(type) {
	case *ast.Return:
		return true
	case *ast.If:
		if !s.HasElse {
			return false
		}
		if !definitelyReturns(s.Then) {
			return false
		}
		for _, ei := range s.ElseIf {
			if !definitelyReturns(ei.Body) {
				return false
			}
		}
		return definitelyReturns(s.Else)
	default:
		return false
	}
}

func (c *Checker) checkStatements(bc *bodyCtx, stmts []ast.Statement) error {
	for _, s := range stmts {
		if err := c.checkStatement(bc, s); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkStatement(bc *bodyCtx, stmt ast.Statement) error {
	switch s := stmt.(type) {

	case *ast.ExprStatement:
		_, err := c.checkExpr(bc, s.Expr)
		return err

	case *ast.VariableDefinition:
		return c.checkBinding(bc, s.Name, s.TypeAnnotation, s.Value, s.Loc())

	case *ast.ConstantDefinition:
		return c.checkBinding(bc, s.Name, s.TypeAnnotation, s.Value, s.Loc())

	case *ast.Assignment:
		return c.checkAssignment(bc, s)

	case *ast.If:
		return c.checkIf(bc, s)

	case *ast.While:
		condT, err := c.checkExpr(bc, s.Condition)
		if err != nil {
			return err
		}
		if err := c.requireBool(condT, s.Condition.Loc()); err != nil {
			return err
		}
		loop := bc.child()
		loop.breakAllowed = true
		return c.checkStatements(loop, s.Body)

	case *ast.For:
		if _, err := c.checkExpr(bc, s.Iterable); err != nil {
			return err
		}
		loop := bc.child()
		loop.breakAllowed = true
		loop.env.Define(s.Variable, types.Wildcard{})
		return c.checkStatements(loop, s.Body)

	case *ast.Return:
		return c.checkReturn(bc, s)

	case *ast.Break:
		if !bc.breakAllowed {
			return diagnostics.Newf(diagnostics.ErrBreakOutsideLoop, s.Loc(),
				"break statement is not allowed in this context")
		}
		return nil

	case *ast.Continue:
		if !bc.breakAllowed {
			return diagnostics.Newf(diagnostics.ErrContinueOutsideLoop, s.Loc(),
				"continue statement is not allowed in this context")
		}
		return nil

	default:
		panic("checker: unhandled statement node")
	}
}

func (c *Checker) checkBinding(bc *bodyCtx, name string, annotation types.Type, value ast.Expression, loc token.Location) error {
	valueT, err := c.checkExpr(bc, value)
	if err != nil {
		return err
	}

	declared := annotation
	if declared == nil {
		declared = valueT
	} else {
		if err := c.checkTypeWellFormed(declared, loc); err != nil {
			return err
		}
		if err := c.checkNoSelfType(declared, loc); err != nil {
			return err
		}
		if !types.BindableTo(valueT, declared, c.Ctx) {
			return diagnostics.Newf(diagnostics.ErrNotBindable, loc,
				"value of type %s is not assignable to declared type %s",
				types.GetName(valueT, c.Ctx), types.GetName(declared, c.Ctx))
		}
	}
	bc.env.Define(name, declared)
	return nil
}

// checkAssignment implements spec.md §4.5 item 3's assignment rules: plain
// variable reassignment compares the deref'd value type to the deref'd
// declared type (spec.md §8 boundary case "a = a must type-check when a is
// MutRef(T)": env.Lookup wraps a bare variable reference in MutRef, so the
// comparison must strip that wrapper from both sides to see through to the
// underlying place type); attribute assignment enforces the mutable-
// reference rule of spec.md §3 invariant 5 and scenario §8.3.
func (c *Checker) checkAssignment(bc *bodyCtx, s *ast.Assignment) error {
	switch target := s.Target.(type) {

	case *ast.Variable:
		valueT, err := c.checkExpr(bc, s.Value)
		if err != nil {
			return err
		}
		declared, ok := bc.env.Declared(target.Name)
		if !ok {
			return diagnostics.Newf(diagnostics.ErrUnknownIdentifier, target.Loc(), "unknown variable %q", target.Name)
		}
		if !types.BindableTo(types.DerefType(valueT), types.DerefType(declared), c.Ctx) {
			return diagnostics.Newf(diagnostics.ErrNotBindable, s.Loc(),
				"value of type %s is not assignable to %s",
				types.GetName(valueT, c.Ctx), types.GetName(declared, c.Ctx))
		}
		return nil

	case *ast.AttributeAccess:
		containerT, err := c.checkExpr(bc, target.Object)
		if err != nil {
			return err
		}
		switch containerT.(type) {
		case types.MutRef:
			// ok, proceed below.
		case types.Ref:
			return diagnostics.Newf(diagnostics.ErrAttrConstRef, s.Loc(),
				"attribute assignment target is accessed from a constant reference")
		default:
			return diagnostics.Newf(diagnostics.ErrAttrNotMutRef, s.Loc(),
				"attribute assignment target is not accessed from a mutable reference")
		}

		attrT, err := inference.LookupAttributeRaw(c.Ctx, containerT, target.Index, target.Loc())
		if err != nil {
			return err
		}
		valueT, err := c.checkExpr(bc, s.Value)
		if err != nil {
			return err
		}
		if !types.BindableTo(valueT, attrT, c.Ctx) {
			return diagnostics.Newf(diagnostics.ErrNotBindable, s.Loc(),
				"value of type %s is not assignable to attribute of type %s",
				types.GetName(valueT, c.Ctx), types.GetName(attrT, c.Ctx))
		}
		return nil

	default:
		panic("checker: unhandled assignment target node")
	}
}

func (c *Checker) checkIf(bc *bodyCtx, s *ast.If) error {
	condT, err := c.checkExpr(bc, s.Condition)
	if err != nil {
		return err
	}
	if err := c.requireBool(condT, s.Condition.Loc()); err != nil {
		return err
	}
	if err := c.checkStatements(bc.child(), s.Then); err != nil {
		return err
	}
	for _, ei := range s.ElseIf {
		eiT, err := c.checkExpr(bc, ei.Condition)
		if err != nil {
			return err
		}
		if err := c.requireBool(eiT, ei.Condition.Loc()); err != nil {
			return err
		}
		if err := c.checkStatements(bc.child(), ei.Body); err != nil {
			return err
		}
	}
	if s.HasElse {
		if err := c.checkStatements(bc.child(), s.Else); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkReturn(bc *bodyCtx, s *ast.Return) error {
	var valueT types.Type = types.Empty{}
	if s.Value != nil {
		t, err := c.checkExpr(bc, s.Value)
		if err != nil {
			return err
		}
		valueT = t
	}
	if !types.BindableTo(valueT, bc.expectedReturn, c.Ctx) {
		return diagnostics.Newf(diagnostics.ErrNotBindable, s.Loc(),
			"returned value of type %s is not compatible with return type %s",
			types.GetName(valueT, c.Ctx), types.GetName(bc.expectedReturn, c.Ctx))
	}
	return nil
}

func (c *Checker) requireBool(t types.Type, loc token.Location) error {
	if !c.isBoolType(types.DerefType(t)) {
		return diagnostics.Newf(diagnostics.ErrConditionNotBool, loc,
			"condition must be of type Bool, found %s", types.GetName(t, c.Ctx))
	}
	return nil
}

// checkExpr infers expr's type while additionally enforcing spec.md §4.5
// items 3 (well-formedness, bindability) and 4 (ambiguity) at every call
// site, and recurses into sub-expressions itself (rather than delegating
// whole subtrees to inference.Inferer.InferType) so that nested calls are
// equally checked.
func (c *Checker) checkExpr(bc *bodyCtx, expr ast.Expression) (types.Type, error) {
	switch e := expr.(type) {

	case *ast.Literal:
		if err := c.checkTypeWellFormed(e.Type, e.Loc()); err != nil {
			return nil, err
		}
		return e.Type, nil

	case *ast.Variable:
		return c.Inf.InferType(bc.env, e)

	case *ast.QualifiedName:
		return c.Inf.InferType(bc.env, e)

	case *ast.TupleExpr:
		elems := make([]types.Type, 0, len(e.Elements))
		for _, el := range e.Elements {
			t, err := c.checkExpr(bc, el)
			if err != nil {
				return nil, err
			}
			elems = append(elems, t)
		}
		return types.And{Elements: elems}, nil

	case *ast.AttributeAccess:
		objT, err := c.checkExpr(bc, e.Object)
		if err != nil {
			return nil, err
		}
		attrT, err := inference.LookupAttributeRaw(c.Ctx, objT, e.Index, e.Loc())
		if err != nil {
			return nil, err
		}
		return propagateAttributeRefForChecker(objT, attrT), nil

	case *ast.UnaryOperationCall:
		argT, err := c.checkExpr(bc, e.Arg)
		if err != nil {
			return nil, err
		}
		op, ok := indexUnary(c.Ctx, e.OperatorID)
		if !ok {
			return nil, diagnostics.Newf(diagnostics.ErrNoMatchingOverload, e.Loc(), "unknown unary operator id %d", e.OperatorID)
		}
		if err := c.checkAmbiguity(op.Operations, argT, e.Loc(), "unary operator "+op.Representation); err != nil {
			return nil, err
		}
		res, err := c.Res.ResolveUnary(e.OperatorID, argT, e.TemplateArgs, false, e.Loc())
		if err != nil {
			return nil, err
		}
		if err := c.checkTemplateArgCount(e.TemplateArgs, res, e.Loc()); err != nil {
			return nil, err
		}
		return inference.ComposeReturn(res), nil

	case *ast.BinaryOperationCall:
		aT, err := c.checkExpr(bc, e.Left)
		if err != nil {
			return nil, err
		}
		bT, err := c.checkExpr(bc, e.Right)
		if err != nil {
			return nil, err
		}
		op, ok := indexBinary(c.Ctx, e.OperatorID)
		if !ok {
			return nil, diagnostics.Newf(diagnostics.ErrNoMatchingOverload, e.Loc(), "unknown binary operator id %d", e.OperatorID)
		}
		args := types.And{Elements: []types.Type{aT, bT}}
		if err := c.checkAmbiguity(op.Operations, args, e.Loc(), "binary operator "+op.Representation); err != nil {
			return nil, err
		}
		res, err := c.Res.ResolveBinary(e.OperatorID, aT, bT, e.TemplateArgs, false, e.Loc())
		if err != nil {
			return nil, err
		}
		if err := c.checkTemplateArgCount(e.TemplateArgs, res, e.Loc()); err != nil {
			return nil, err
		}
		return inference.ComposeReturn(res), nil

	case *ast.NaryOperationCall:
		firstT, err := c.checkExpr(bc, e.First)
		if err != nil {
			return nil, err
		}
		argTs := make([]types.Type, 0, len(e.Args))
		for _, a := range e.Args {
			t, err := c.checkExpr(bc, a)
			if err != nil {
				return nil, err
			}
			argTs = append(argTs, t)
		}
		op, ok := indexNary(c.Ctx, e.OperatorID)
		if !ok {
			return nil, diagnostics.Newf(diagnostics.ErrNoMatchingOverload, e.Loc(), "unknown n-ary operator id %d", e.OperatorID)
		}
		elems := append([]types.Type{firstT}, argTs...)
		args := types.And{Elements: elems}
		if err := c.checkAmbiguity(op.Operations, args, e.Loc(), "n-ary operator "+op.OpenRep+op.CloseRep); err != nil {
			return nil, err
		}
		res, err := c.Res.ResolveNary(e.OperatorID, firstT, argTs, e.TemplateArgs, false, e.Loc())
		if err != nil {
			return nil, err
		}
		if err := c.checkTemplateArgCount(e.TemplateArgs, res, e.Loc()); err != nil {
			return nil, err
		}
		return inference.ComposeReturn(res), nil

	case *ast.FunctionCall:
		argTs := make([]types.Type, 0, len(e.Args))
		for _, a := range e.Args {
			t, err := c.checkExpr(bc, a)
			if err != nil {
				return nil, err
			}
			argTs = append(argTs, t)
		}
		fn, ok := c.Ctx.FunctionByID(e.FunctionID)
		if !ok {
			return nil, diagnostics.Newf(diagnostics.ErrNoMatchingOverload, e.Loc(), "unknown function id %d", e.FunctionID)
		}
		args := types.And{Elements: argTs}
		if err := c.checkAmbiguity(fn.Overloads, args, e.Loc(), "function "+fn.Name); err != nil {
			return nil, err
		}
		res, err := c.Res.ResolveFunction(e.FunctionID, argTs, e.TemplateArgs, false, e.Loc())
		if err != nil {
			return nil, err
		}
		if err := c.checkTemplateArgCount(e.TemplateArgs, res, e.Loc()); err != nil {
			return nil, err
		}
		return inference.ComposeReturn(res), nil

	case *ast.DoBlock:
		if err := c.checkTypeWellFormed(e.ReturnType, e.Loc()); err != nil {
			return nil, err
		}
		inner := &bodyCtx{env: bc.env.Child(), expectedReturn: e.ReturnType, breakAllowed: bc.breakAllowed}
		if err := c.checkBody(inner, e.Body); err != nil {
			return nil, err
		}
		return e.ReturnType, nil

	case *ast.Lambda:
		return c.checkLambda(bc, e)

	default:
		panic("checker: unhandled expression node")
	}
}

// checkAmbiguity implements spec.md §4.5 item 4: at every call site, the
// resolver's is_ambiguous must return None.
func (c *Checker) checkAmbiguity(overloads []registry.Operation, argsType types.Type, loc token.Location, symbolDesc string) error {
	matches := resolver.MatchingOverloads(c.Ctx, overloads, argsType)
	if len(matches) < 2 {
		return nil
	}
	err := diagnostics.Newf(diagnostics.ErrAmbiguousCall, loc,
		"ambiguous call to %s with argument type %s", symbolDesc, types.GetName(argsType, c.Ctx))
	return err.WithHints(resolver.CandidateHints(c.Ctx, overloads, matches)...)
}

// checkTemplateArgCount implements spec.md §4.5 item 3's "verify the
// call's explicit template-argument count equals the overload's template
// count".
func (c *Checker) checkTemplateArgCount(explicit []types.Type, res resolver.Result, loc token.Location) error {
	if len(explicit) == 0 {
		return nil
	}
	if len(explicit) != len(res.Substitution) {
		return diagnostics.Newf(diagnostics.ErrWrongTemplateArgs, loc,
			"expected %d explicit template arguments, got %d", len(res.Substitution), len(explicit))
	}
	for _, t := range explicit {
		if err := c.checkTypeWellFormed(t, loc); err != nil {
			return err
		}
	}
	return nil
}

// checkLambda implements spec.md §4.5's lambda restrictions: captures
// unique and disjoint from parameters (pass 1), no template parameters in
// captures/parameters/return type, and a fresh break/continue context that
// shadows any enclosing loop (spec.md item 6 "lambdas shadow enclosing
// loops").
func (c *Checker) checkLambda(bc *bodyCtx, e *ast.Lambda) (types.Type, error) {
	seen := map[string]bool{}
	for _, cap := range e.Captures {
		if seen[cap] {
			return nil, diagnostics.Newf(diagnostics.ErrLambdaDuplicateName, e.Loc(), "duplicate lambda capture %q", cap)
		}
		seen[cap] = true
	}
	for _, p := range e.Params {
		if seen[p.Name] {
			return nil, diagnostics.Newf(diagnostics.ErrLambdaDuplicateName, e.Loc(),
				"lambda parameter %q collides with a capture or another parameter", p.Name)
		}
		seen[p.Name] = true
		if types.HasTemplates(p.Type) {
			return nil, diagnostics.Newf(diagnostics.ErrLambdaTemplateUsage, e.Loc(),
				"lambda parameter %q may not mention a template parameter", p.Name)
		}
	}
	if types.HasTemplates(e.ReturnType) {
		return nil, diagnostics.Newf(diagnostics.ErrLambdaTemplateUsage, e.Loc(), "lambda return type may not mention a template parameter")
	}

	child := bc.env.Child()
	for _, cap := range e.Captures {
		declared, ok := bc.env.Declared(cap)
		if !ok {
			return nil, diagnostics.Newf(diagnostics.ErrUnknownIdentifier, e.Loc(), "unknown capture %q", cap)
		}
		if types.HasTemplates(declared) {
			return nil, diagnostics.Newf(diagnostics.ErrLambdaTemplateUsage, e.Loc(),
				"captured expression %q may not have a template type", cap)
		}
		child.Define(cap, declared)
	}
	for _, p := range e.Params {
		child.Define(p.Name, p.Type)
	}

	inner := &bodyCtx{env: child, expectedReturn: e.ReturnType, breakAllowed: false}
	if err := c.checkBody(inner, e.Body); err != nil {
		return nil, err
	}

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
}

// propagateAttributeRefForChecker mirrors inference's unexported
// propagateAttributeRef (spec.md §4.4 reference-propagation table); kept
// as a small local copy since the inference package does not export it and
// the table is only five lines.
func propagateAttributeRefForChecker(container, attr types.Type) types.Type {
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
