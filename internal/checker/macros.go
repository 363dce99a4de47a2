package checker

import (
	"github.com/Gabie-of-the-Bo/nessa-core/internal/ast"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/diagnostics"
)

// checkMacroDef implements spec.md §4.5 item 8 (macro check): the set of
// markers bound by the pattern must equal the set of markers referenced by
// the body, exactly (neither side may have an extra or missing name).
func (c *Checker) checkMacroDef(m *ast.MacroDefinition) error {
	pattern := map[string]bool{}
	for _, p := range m.PatternMarkers {
		pattern[p] = true
	}
	body := map[string]bool{}
	for _, b := range m.BodyMarkers {
		body[b] = true
	}

	// Iterate in sorted order so which mismatch gets reported first is
	// deterministic across runs, not dependent on Go's randomized map order.
	for _, name := range sortedKeys(pattern) {
		if !body[name] {
			return diagnostics.Newf(diagnostics.ErrMacroMarkerMismatch, m.Loc(),
				"macro %s's pattern marker %q is never used in its body", m.Name, name)
		}
	}
	for _, name := range sortedKeys(body) {
		if !pattern[name] {
			return diagnostics.Newf(diagnostics.ErrMacroMarkerMismatch, m.Loc(),
				"macro %s's body references marker %q, which its pattern never binds", m.Name, name)
		}
	}

	return c.checkAnnotations(m.Annotations, declMacro, nil, false, nil, m.Loc())
}
