package registry

import (
	"github.com/Gabie-of-the-Bo/nessa-core/internal/diagnostics"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/token"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

// Operation is one overload of an operator or function (spec.md §3
// "Operator... Each operation has templates, args, ret, and an optional
// implementation handle").
type Operation struct {
	Templates int
	Args      types.Type // single type for unary; And(...) for binary/n-ary/function
	Ret       types.Type
	HasImpl   bool
	Impl      interface{} // opaque implementation handle; this core never inspects it
}

// checkAntichain verifies that candidate does not subsume, or get
// subsumed by, any operation already in overloads (spec.md §3 invariant 2,
// §4.2 "Subsumption is the centerpiece"). Returns an error naming the
// offending direction; callers refuse the definition on error.
func (c *Context) checkAntichain(overloads []Operation, candidate types.Type) error {
	for _, existing := range overloads {
		if types.BindableTo(candidate, existing.Args, c) {
			return diagnostics.Newf(diagnostics.ErrOverloadSubsumption, token.Location{},
				"operation %s is subsumed by existing operation %s", c.describeArgs(candidate), c.describeArgs(existing.Args))
		}
		if types.BindableTo(existing.Args, candidate, c) {
			return diagnostics.Newf(diagnostics.ErrOverloadSubsumption, token.Location{},
				"operation %s subsumes existing operation %s", c.describeArgs(candidate), c.describeArgs(existing.Args))
		}
	}
	return nil
}

func (c *Context) describeArgs(t types.Type) string {
	return types.GetName(t, c)
}
