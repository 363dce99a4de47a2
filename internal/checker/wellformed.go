package checker

import (
	"github.com/Gabie-of-the-Bo/nessa-core/internal/diagnostics"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/token"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

// checkTypeWellFormed implements spec.md §4.5 item 3's
// check_type_well_formed: template-instantiation arities must match the
// registered type's parameter count, unresolved TemplateParamStr
// placeholders fail (spec.md §3 variant description: "appearance after
// name-resolution is a well-formedness error"), and the check recurses
// into every sub-structure.
func (c *Checker) checkTypeWellFormed(t types.Type, loc token.Location) error {
	switch v := t.(type) {
	case types.TemplateParamStr:
		return diagnostics.Newf(diagnostics.ErrUnresolvedTemplateStr, loc,
			"template parameter %q was not resolved to an index", v.Name)

	case types.Template:
		tmpl, ok := c.Ctx.TypeByID(v.ID)
		if !ok {
			return diagnostics.Newf(diagnostics.ErrUnknownIdentifier, loc, "unknown type id %d", v.ID)
		}
		if len(v.Args) != len(tmpl.Params) {
			return diagnostics.Newf(diagnostics.ErrTemplateArityMismatch, loc,
				"type %s expects %d template arguments, got %d", tmpl.Name, len(tmpl.Params), len(v.Args))
		}
		for _, a := range v.Args {
			if err := c.checkTypeWellFormed(a, loc); err != nil {
				return err
			}
		}
		return nil

	case types.Ref:
		return c.checkTypeWellFormed(v.Inner, loc)

	case types.MutRef:
		return c.checkTypeWellFormed(v.Inner, loc)

	case types.Or:
		for _, p := range v.Variants {
			if err := c.checkTypeWellFormed(p, loc); err != nil {
				return err
			}
		}
		return nil

	case types.And:
		for _, e := range v.Elements {
			if err := c.checkTypeWellFormed(e, loc); err != nil {
				return err
			}
		}
		return nil

	case types.Function:
		if err := c.checkTypeWellFormed(v.Arg, loc); err != nil {
			return err
		}
		return c.checkTypeWellFormed(v.Ret, loc)

	case types.TemplateParam:
		for _, cst := range v.Constraints {
			for _, a := range cst.Args {
				if err := c.checkTypeWellFormed(a, loc); err != nil {
					return err
				}
			}
		}
		return nil

	default:
		// Empty, SelfType, Wildcard, Basic, InferenceMarker carry no
		// sub-structure relevant to well-formedness; SelfType's context
		// legality is a separate check (spec.md §4.5 item 2).
		return nil
	}
}

// checkNoSelfType implements spec.md §4.5 item 2 for every context except
// interface member signatures, where SelfType is legal (spec.md §3
// invariant 4: "SelfType may appear only inside interface member
// signatures").
func (c *Checker) checkNoSelfType(t types.Type, loc token.Location) error {
	if types.HasSelf(t) {
		return diagnostics.Newf(diagnostics.ErrSelfTypeOutside, loc,
			"Self is not allowed outside an interface member signature")
	}
	return nil
}

// isBoolType reports whether t (after the caller has already deref'd any
// Ref/MutRef) is the registered Bool type (spec.md §3 invariant 6,
// §4.5 item 3 "if/while... must deref to Bool").
func (c *Checker) isBoolType(t types.Type) bool {
	boolID, ok := c.Ctx.LookupType("Bool")
	if !ok {
		return false
	}
	b, ok := t.(types.Basic)
	return ok && b.ID == boolID
}
