package checker

import (
	"github.com/Gabie-of-the-Bo/nessa-core/internal/ast"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

// checkInterfaceDef runs well-formedness checks over every required
// member's signature (spec.md §4.5 items 2-3). Unlike a plain function or
// class, SelfType is legal here (spec.md §3 invariant 4: "SelfType may
// appear only inside interface member signatures"), so checkNoSelfType is
// deliberately not called.
func (c *Checker) checkInterfaceDef(id *ast.InterfaceDefinition) error {
	checkSig := func(params []types.Type, ret types.Type) error {
		for _, p := range params {
			if err := c.checkTypeWellFormed(p, id.Loc()); err != nil {
				return err
			}
		}
		return c.checkTypeWellFormed(ret, id.Loc())
	}

	for _, f := range id.Functions {
		if err := checkSig(f.Params, f.ReturnType); err != nil {
			return err
		}
	}
	for _, op := range id.UnaryOps {
		if err := checkSig(op.Params, op.ReturnType); err != nil {
			return err
		}
	}
	for _, op := range id.BinaryOps {
		if err := checkSig(op.Params, op.ReturnType); err != nil {
			return err
		}
	}
	for _, op := range id.NaryOps {
		if err := checkSig(op.Params, op.ReturnType); err != nil {
			return err
		}
	}

	c.warnInterfaceName(id.Name, id.Loc())
	c.warnTemplateNames(id.TemplateNames, id.Loc())
	return c.checkAnnotations(id.Annotations, declInterface, nil, len(id.TemplateNames) > 0, nil, id.Loc())
}
