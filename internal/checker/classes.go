package checker

import (
	"github.com/Gabie-of-the-Bo/nessa-core/internal/ast"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/diagnostics"
)

// checkClassDef implements spec.md §4.5 item 7 (class check): attribute
// names must be unique, every attribute type must be well-formed and free
// of SelfType, implicit-syntax markers are forbidden on a generic class,
// and when present they must be a bijection onto the attribute list.
func (c *Checker) checkClassDef(cd *ast.ClassDefinition) error {
	seen := map[string]bool{}
	for _, attr := range cd.Attributes {
		if seen[attr.Name] {
			return diagnostics.Newf(diagnostics.ErrDuplicateAttribute, cd.Loc(),
				"attribute %q is repeated in class %s", attr.Name, cd.Name)
		}
		seen[attr.Name] = true

		if err := c.checkTypeWellFormed(attr.Type, cd.Loc()); err != nil {
			return err
		}
		if err := c.checkNoSelfType(attr.Type, cd.Loc()); err != nil {
			return err
		}
	}

	if len(cd.SyntaxMarkers) > 0 {
		if len(cd.TemplateNames) > 0 {
			return diagnostics.Newf(diagnostics.ErrImplicitSyntaxParams, cd.Loc(),
				"class %s is generic and may not declare an implicit-syntax pattern", cd.Name)
		}
		if len(cd.SyntaxMarkers) != len(cd.Attributes) {
			return diagnostics.Newf(diagnostics.ErrImplicitSyntaxParams, cd.Loc(),
				"class %s has %d attributes but %d syntax markers", cd.Name, len(cd.Attributes), len(cd.SyntaxMarkers))
		}
		markerSeen := map[string]bool{}
		for _, m := range cd.SyntaxMarkers {
			if !seen[m] {
				return diagnostics.Newf(diagnostics.ErrImplicitSyntaxParams, cd.Loc(),
					"syntax marker %q of class %s does not name a declared attribute", m, cd.Name)
			}
			if markerSeen[m] {
				return diagnostics.Newf(diagnostics.ErrImplicitSyntaxParams, cd.Loc(),
					"syntax marker %q of class %s is repeated", m, cd.Name)
			}
			markerSeen[m] = true
		}
	}

	c.warnClassName(cd.Name, cd.Loc())
	c.warnTemplateNames(cd.TemplateNames, cd.Loc())
	return c.checkAnnotations(cd.Annotations, declClass, nil, len(cd.TemplateNames) > 0, nil, cd.Loc())
}
