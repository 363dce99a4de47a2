package types

// Subst maps a template parameter index to the type it is bound to,
// accumulated while checking bindability (spec.md §3: "the version
// producing substitutions returns (bool, map<template-index, Type>)").
type Subst map[int]Type

// Clone returns a shallow copy of s.
func (s Subst) Clone() Subst {
	out := make(Subst, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// ConstraintChecker decides whether a value type satisfies an interface
// constraint attached to a TemplateParam (spec.md §3 bindability rule 2:
// "every constraint interface must be implemented by V"). Implemented by
// the registry package; kept as an interface here to avoid an import
// cycle (registry depends on types, not vice versa).
type ConstraintChecker interface {
	Implements(v Type, c InterfaceConstraint) bool
}

// BindableTo reports whether a value of type v is acceptable where
// pattern p is expected (spec.md §3 "Bindability"), without recording
// substitutions. It is BindableToSubst discarding the map, kept separate
// because most call sites (e.g. checker assignment checks) don't need the
// substitution.
func BindableTo(v, p Type, cc ConstraintChecker) bool {
	ok, _ := BindableToSubst(v, p, cc)
	return ok
}

// BindableToSubst implements the full directional bindability relation of
// spec.md §3, rules 1-9 in order, returning the accumulated substitution
// map on success.
func BindableToSubst(v, p Type, cc ConstraintChecker) (bool, Subst) {
	return bindableToWith(v, p, cc, Subst{})
}

// bindableToWith threads an existing substitution map through recursive
// calls so that repeated occurrences of the same template parameter (e.g.
// fn f<T>(a: T, b: T)) are required to bind to structurally identical
// types, per rule 2.
func bindableToWith(v, p Type, cc ConstraintChecker, subst Subst) (bool, Subst) {
	// Rule 1: Wildcard pattern matches anything.
	if _, ok := p.(Wildcard); ok {
		return true, subst
	}

	// Rule 2: TemplateParam pattern binds (or checks against an existing
	// binding), plus constraint satisfaction.
	if tp, ok := p.(TemplateParam); ok {
		if existing, bound := subst[tp.Index]; bound {
			if !structurallyEqual(v, existing) {
				return false, subst
			}
		} else {
			subst = subst.Clone()
			subst[tp.Index] = v
		}
		for _, c := range tp.Constraints {
			if cc == nil || !cc.Implements(v, c) {
				return false, subst
			}
		}
		return true, subst
	}

	// Rule 3: value-side Or binds iff every variant binds to p.
	if vo, ok := v.(Or); ok {
		cur := subst
		for _, variant := range vo.Variants {
			ok, next := bindableToWith(variant, p, cc, cur)
			if !ok {
				return false, subst
			}
			cur = next
		}
		return true, cur
	}

	// Rule 4: pattern-side Or binds iff v binds to some member.
	if po, ok := p.(Or); ok {
		for _, member := range po.Variants {
			if ok, next := bindableToWith(v, member, cc, subst); ok {
				return true, next
			}
		}
		return false, subst
	}

	// Rule 5: reference structural matching, plus mutable-to-shared decay.
	if vr, ok := v.(Ref); ok {
		if pr, ok := p.(Ref); ok {
			return bindableToWith(vr.Inner, pr.Inner, cc, subst)
		}
		return false, subst
	}
	if vm, ok := v.(MutRef); ok {
		if pm, ok := p.(MutRef); ok {
			return bindableToWith(vm.Inner, pm.Inner, cc, subst)
		}
		if pr, ok := p.(Ref); ok {
			return bindableToWith(vm.Inner, pr.Inner, cc, subst)
		}
		return false, subst
	}
	// A bare Ref/MutRef pattern with a non-reference value never matches;
	// references are structural on the pattern side too.
	if _, ok := p.(Ref); ok {
		return false, subst
	}
	if _, ok := p.(MutRef); ok {
		return false, subst
	}

	// Rule 6: Basic/Template nominal matching.
	if vb, ok := v.(Basic); ok {
		if pb, ok := p.(Basic); ok {
			return vb.ID == pb.ID, subst
		}
		return false, subst
	}
	if vt, ok := v.(Template); ok {
		pt, ok := p.(Template)
		if !ok || vt.ID != pt.ID || len(vt.Args) != len(pt.Args) {
			return false, subst
		}
		cur := subst
		for i := range vt.Args {
			ok, next := bindableToWith(vt.Args[i], pt.Args[i], cc, cur)
			if !ok {
				return false, subst
			}
			cur = next
		}
		return true, cur
	}

	// Rule 7: And (tuple) positional matching.
	if va, ok := v.(And); ok {
		pa, ok := p.(And)
		if !ok || len(va.Elements) != len(pa.Elements) {
			return false, subst
		}
		cur := subst
		for i := range va.Elements {
			ok, next := bindableToWith(va.Elements[i], pa.Elements[i], cc, cur)
			if !ok {
				return false, subst
			}
			cur = next
		}
		return true, cur
	}

	// Rule 8: Function matching.
	if vf, ok := v.(Function); ok {
		pf, ok := p.(Function)
		if !ok {
			return false, subst
		}
		ok, cur := bindableToWith(vf.Arg, pf.Arg, cc, subst)
		if !ok {
			return false, subst
		}
		return bindableToWith(vf.Ret, pf.Ret, cc, cur)
	}

	if _, ok := v.(Empty); ok {
		_, ok := p.(Empty)
		return ok, subst
	}

	// Rule 9: otherwise no match (covers SelfType/Wildcard/InferenceMarker/
	// TemplateParamStr on either side, and any residual mismatch).
	return false, subst
}

// structurallyEqual compares two concrete types for the "V == W
// structurally" check in bindability rule 2. It does not consult
// ConstraintChecker since no further binding decisions occur here.
func structurallyEqual(a, b Type) bool {
	ok, _ := bindableToWith(a, b, nil, Subst{})
	if !ok {
		return false
	}
	ok2, _ := bindableToWith(b, a, nil, Subst{})
	return ok2
}
