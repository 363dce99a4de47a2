package checker

import (
	"github.com/Gabie-of-the-Bo/nessa-core/internal/ast"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/diagnostics"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/inference"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/token"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

// checkFunctionDef runs every pass applicable to one function overload
// declaration (spec.md §4.5).
func (c *Checker) checkFunctionDef(f *ast.FunctionDefinition) error {
	if err := c.checkRepeatedNames(f.TemplateNames, f.Params, f.Loc()); err != nil {
		return err
	}
	if err := c.checkSignatureWellFormed(f.Params, f.ReturnType, f.Loc()); err != nil {
		return err
	}
	if err := c.checkTemplateUsage(f.TemplateNames, f.Params, f.ReturnType, f.Loc()); err != nil {
		return err
	}

	if !f.IsGeneric {
		env := inference.NewEnv()
		for _, p := range f.Params {
			env.Define(p.Name, p.Type)
		}
		bc := &bodyCtx{env: env, expectedReturn: f.ReturnType, breakAllowed: false}
		if err := c.checkBody(bc, f.Body); err != nil {
			return err
		}
	}

	paramNames := make([]string, len(f.Params))
	for i, p := range f.Params {
		paramNames[i] = p.Name
	}
	if err := c.checkAnnotations(f.Annotations, declFunctionLike, paramNames, f.IsGeneric, f.ReturnType, f.Loc()); err != nil {
		return err
	}

	c.warnFunctionName(f.Name, f.Loc())
	c.warnTemplateNames(f.TemplateNames, f.Loc())
	return nil
}

// checkOperatorDef mirrors checkFunctionDef for one operator overload
// declaration; operators are never interface members themselves, so
// SelfType remains illegal in their signatures (spec.md §3 invariant 4).
func (c *Checker) checkOperatorDef(op *ast.OperatorDefinition) error {
	if err := c.checkRepeatedNames(op.TemplateNames, op.Params, op.Loc()); err != nil {
		return err
	}
	if err := c.checkSignatureWellFormed(op.Params, op.ReturnType, op.Loc()); err != nil {
		return err
	}
	if err := c.checkTemplateUsage(op.TemplateNames, op.Params, op.ReturnType, op.Loc()); err != nil {
		return err
	}

	if !op.IsGeneric {
		env := inference.NewEnv()
		for _, p := range op.Params {
			env.Define(p.Name, p.Type)
		}
		bc := &bodyCtx{env: env, expectedReturn: op.ReturnType, breakAllowed: false}
		if err := c.checkBody(bc, op.Body); err != nil {
			return err
		}
	}

	paramNames := make([]string, len(op.Params))
	for i, p := range op.Params {
		paramNames[i] = p.Name
	}
	if err := c.checkAnnotations(op.Annotations, declFunctionLike, paramNames, op.IsGeneric, op.ReturnType, op.Loc()); err != nil {
		return err
	}

	c.warnTemplateNames(op.TemplateNames, op.Loc())
	return nil
}

// checkRepeatedNames implements spec.md §4.5 item 1 for one declaration:
// parameter and template-parameter names within it must be unique.
func (c *Checker) checkRepeatedNames(templateNames []string, params []ast.Param, loc token.Location) error {
	seen := map[string]bool{}
	for _, t := range templateNames {
		if seen[t] {
			return diagnostics.Newf(diagnostics.ErrRepeatedArgument, loc, "template parameter %q is repeated", t)
		}
		seen[t] = true
	}
	for _, p := range params {
		if seen[p.Name] {
			return diagnostics.Newf(diagnostics.ErrRepeatedArgument, loc, "parameter %q is repeated", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// checkSignatureWellFormed runs well-formedness and SelfType-context
// checks (spec.md §4.5 items 2-3) over every parameter and the return type
// of a non-interface declaration.
func (c *Checker) checkSignatureWellFormed(params []ast.Param, ret types.Type, loc token.Location) error {
	for _, p := range params {
		if err := c.checkTypeWellFormed(p.Type, loc); err != nil {
			return err
		}
		if err := c.checkNoSelfType(p.Type, loc); err != nil {
			return err
		}
	}
	if err := c.checkTypeWellFormed(ret, loc); err != nil {
		return err
	}
	return c.checkNoSelfType(ret, loc)
}

// checkTemplateUsage implements spec.md §3 invariant 3 / §4.5 item 3's
// generic-declaration carve-out: every declared template parameter name
// must appear in at least one argument or return type.
func (c *Checker) checkTemplateUsage(templateNames []string, params []ast.Param, ret types.Type, loc token.Location) error {
	used := map[int]bool{}
	for _, p := range params {
		types.TemplateDependencies(p.Type, used)
	}
	types.TemplateDependencies(ret, used)
	for i, name := range templateNames {
		if !used[i] {
			return diagnostics.Newf(diagnostics.ErrUnusedTemplateParam, loc,
				"template parameter %s is not used anywhere", name)
		}
	}
	return nil
}
