package checker

import (
	"sort"

	"github.com/Gabie-of-the-Bo/nessa-core/internal/ast"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/config"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/diagnostics"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/token"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

// declKind distinguishes the declaration shapes spec.md §4.5 item 10's
// two recognized annotations apply differently to.
type declKind int

const (
	declFunctionLike declKind = iota
	declClass
	declInterface
	declMacro
)

// checkAnnotations implements spec.md §4.5 item 10: the `test` annotation
// is allowed only on non-generic, zero-parameter functions/operations
// whose return type derefs to Bool; `doc`'s positional marker set must
// equal the declaration's parameter-name set for functions/operations, and
// must be empty for class/interface/macro declarations. Any other name is
// only valid if the optional feature config (SPEC_FULL.md §6) lists it as
// an extra recognized annotation.
func (c *Checker) checkAnnotations(anns []ast.Annotation, kind declKind, paramNames []string, isGeneric bool, ret types.Type, loc token.Location) error {
	for _, a := range anns {
		switch a.Name {

		case config.AnnotationTest:
			if kind != declFunctionLike {
				return diagnostics.Newf(diagnostics.ErrAnnotationLocation, loc,
					"annotation #[test] is only allowed on functions and operations")
			}
			if isGeneric {
				return diagnostics.Newf(diagnostics.ErrAnnotationLocation, loc,
					"annotation #[test] is not allowed on a generic declaration")
			}
			if len(paramNames) != 0 {
				return diagnostics.Newf(diagnostics.ErrAnnotationLocation, loc,
					"annotation #[test] is only allowed on zero-parameter declarations")
			}
			if !c.isBoolType(types.DerefType(ret)) {
				return diagnostics.Newf(diagnostics.ErrAnnotationLocation, loc,
					"annotation #[test] requires a return type that derefs to Bool")
			}

		case config.AnnotationDoc:
			switch kind {
			case declFunctionLike:
				if !sameStringSet(a.Markers, paramNames) {
					return diagnostics.Newf(diagnostics.ErrAnnotationMarkers, loc,
						"annotation #[doc] markers must exactly match the declaration's parameter names")
				}
			case declClass, declInterface, declMacro:
				if len(a.Markers) != 0 {
					return diagnostics.Newf(diagnostics.ErrAnnotationMarkers, loc,
						"annotation #[doc] takes no positional markers on this declaration")
				}
			}

		default:
			if !c.Feature.AnnotationAllowed(a.Name) {
				return diagnostics.Newf(diagnostics.ErrUnknownAnnotation, loc, "unknown annotation #[%s]", a.Name)
			}
		}
	}
	return nil
}

func sameStringSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sa := append([]string(nil), a...)
	sb := append([]string(nil), b...)
	sort.Strings(sa)
	sort.Strings(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}
