// Package types implements the type algebra of the Nessa semantic core
// (spec.md §3, §4.1): a closed set of tagged type variants plus the
// bindability relation, template substitution and the handful of
// predicates the registry, resolver, inference and checker packages build
// on.
//
// The variant set and method surface are grounded on the teacher's
// typesystem.Type interface (TVar/TCon/TApp/TFunc/TTuple/TRecord/TUnion/
// TForall/TType, each implementing String/Apply/FreeTypeVariables/Kind) —
// generalized here from Hindley-Milner unification to the spec's directed,
// antichain-based "bindability" relation with explicit template indices
// instead of named type variables.
package types

import (
	"fmt"
	"strings"
)

// Type is the closed interface implemented by every variant in spec.md §3.
type Type interface {
	String() string
	isType()
}

// NameResolver looks up human-readable names for registry-indexed types,
// consulted only by get_name/String for diagnostics (spec.md §4.1
// "get_name(ctx) — pretty printer consulting the registry"). Kept as an
// interface (rather than importing the registry package) to avoid a cycle.
type NameResolver interface {
	TypeTemplateName(id int) string
}

// Empty is the unit/no-value type.
type Empty struct{}

func (Empty) isType() {}
func (Empty) String() string { return "()" }

// SelfType stands in for the implementing type inside interface bodies;
// illegal anywhere else (spec.md §3 invariant 4).
type SelfType struct{}

func (SelfType) isType() {}
func (SelfType) String() string { return "Self" }

// Wildcard matches anything during bindability on the pattern side; never
// valid on the value side.
type Wildcard struct{}

func (Wildcard) isType() {}
func (Wildcard) String() string { return "*" }

// InferenceMarker is a placeholder produced before inference fills it; it
// must never appear in a stored declaration.
type InferenceMarker struct{}

func (InferenceMarker) isType() {}
func (InferenceMarker) String() string { return "<?>" }

// Basic is a concrete non-generic named type, referenced by registry index.
type Basic struct {
	ID int
}

func (Basic) isType() {}
func (b Basic) String() string { return fmt.Sprintf("#%d", b.ID) }

// Template is an instantiation of a parametric named type.
// len(Args) must equal the registered type's parameter count.
type Template struct {
	ID   int
	Args []Type
}

func (Template) isType() {}
func (t Template) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("#%d<%s>", t.ID, strings.Join(parts, ", "))
}

// InterfaceConstraint restricts a TemplateParam to types implementing the
// named interface with the given bound arguments (spec.md GLOSSARY
// "Interface constraint").
type InterfaceConstraint struct {
	InterfaceID int
	Args        []Type
}

// TemplateParam is the i-th parameter of the enclosing declaration,
// optionally constrained by a set of interface constraints.
type TemplateParam struct {
	Index       int
	Constraints []InterfaceConstraint
}

func (TemplateParam) isType() {}
func (t TemplateParam) String() string { return fmt.Sprintf("T%d", t.Index) }

// TemplateParamStr is an unresolved parameter placeholder by name; its
// appearance after name-resolution is a well-formedness error (spec.md §3
// variant description).
type TemplateParamStr struct {
	Name        string
	Constraints []InterfaceConstraint
}

func (TemplateParamStr) isType() {}
func (t TemplateParamStr) String() string { return t.Name }

// Ref is a shared (read-only) reference to Inner.
type Ref struct {
	Inner Type
}

func (Ref) isType() {}
func (r Ref) String() string { return "&" + r.Inner.String() }

// MutRef is an exclusive (mutable) reference to Inner.
type MutRef struct {
	Inner Type
}

func (MutRef) isType() {}
func (r MutRef) String() string { return "@" + r.Inner.String() }

// Or is a sum type (union). Bindable-to on the value side iff every
// variant is bindable (spec.md §3 bindability rule 3).
type Or struct {
	Variants []Type
}

func (Or) isType() {}
func (o Or) String() string {
	parts := make([]string, len(o.Variants))
	for i, v := range o.Variants {
		parts[i] = v.String()
	}
	return strings.Join(parts, " | ")
}

// And is a product type (tuple): positional, fixed arity.
type And struct {
	Elements []Type
}

func (And) isType() {}
func (a And) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Function is a function value type from Arg to Ret.
type Function struct {
	Arg Type
	Ret Type
}

func (Function) isType() {}
func (f Function) String() string {
	return fmt.Sprintf("(%s => %s)", f.Arg.String(), f.Ret.String())
}

// GetName pretty-prints t, consulting r to resolve registry-indexed names
// (spec.md §4.1 get_name). Falls back to the index-based String() form
// when r is nil or does not recognize an id — this only affects
// diagnostics, never semantics.
func GetName(t Type, r NameResolver) string {
	switch v := t.(type) {
	case Basic:
		if r != nil {
			if n := r.TypeTemplateName(v.ID); n != "" {
				return n
			}
		}
		return v.String()
	case Template:
		name := fmt.Sprintf("#%d", v.ID)
		if r != nil {
			if n := r.TypeTemplateName(v.ID); n != "" {
				name = n
			}
		}
		parts := make([]string, len(v.Args))
		for i, a := range v.Args {
			parts[i] = GetName(a, r)
		}
		return fmt.Sprintf("%s<%s>", name, strings.Join(parts, ", "))
	case Ref:
		return "&" + GetName(v.Inner, r)
	case MutRef:
		return "@" + GetName(v.Inner, r)
	case Or:
		parts := make([]string, len(v.Variants))
		for i, p := range v.Variants {
			parts[i] = GetName(p, r)
		}
		return strings.Join(parts, " | ")
	case And:
		parts := make([]string, len(v.Elements))
		for i, e := range v.Elements {
			parts[i] = GetName(e, r)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case Function:
		return fmt.Sprintf("(%s => %s)", GetName(v.Arg, r), GetName(v.Ret, r))
	default:
		return t.String()
	}
}
