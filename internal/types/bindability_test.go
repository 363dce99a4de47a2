package types

import "testing"

func TestBindableTo_BasicNominal(t *testing.T) {
	if !BindableTo(Basic{ID: 1}, Basic{ID: 1}, nil) {
		t.Fatal("expected Basic{1} bindable to Basic{1}")
	}
	if BindableTo(Basic{ID: 1}, Basic{ID: 2}, nil) {
		t.Fatal("expected Basic{1} not bindable to Basic{2}")
	}
}

func TestBindableTo_Wildcard(t *testing.T) {
	if !BindableTo(Basic{ID: 7}, Wildcard{}, nil) {
		t.Fatal("expected anything bindable to Wildcard")
	}
}

func TestBindableTo_TemplateParamRepeatedMustMatch(t *testing.T) {
	// fn f<T>(a: T, b: T): (Int, Int) binds, (Int, Bool) does not.
	pattern := And{Elements: []Type{TemplateParam{Index: 0}, TemplateParam{Index: 0}}}

	same := And{Elements: []Type{Basic{ID: 1}, Basic{ID: 1}}}
	if !BindableTo(same, pattern, nil) {
		t.Fatal("expected (Int, Int) bindable to (T, T)")
	}

	different := And{Elements: []Type{Basic{ID: 1}, Basic{ID: 2}}}
	if BindableTo(different, pattern, nil) {
		t.Fatal("expected (Int, Bool) not bindable to (T, T)")
	}
}

func TestBindableTo_OrValueSideRequiresEveryVariant(t *testing.T) {
	value := Or{Variants: []Type{Basic{ID: 1}, Basic{ID: 2}}}
	if BindableTo(value, Basic{ID: 1}, nil) {
		t.Fatal("expected Or{1,2} not bindable to Basic{1}: variant 2 doesn't match")
	}
	if !BindableTo(value, Or{Variants: []Type{Basic{ID: 1}, Basic{ID: 2}}}, nil) {
		t.Fatal("expected Or{1,2} bindable to Or{1,2}")
	}
}

func TestBindableTo_OrPatternSideRequiresSomeVariant(t *testing.T) {
	pattern := Or{Variants: []Type{Basic{ID: 1}, Basic{ID: 2}}}
	if !BindableTo(Basic{ID: 2}, pattern, nil) {
		t.Fatal("expected Basic{2} bindable to Or{1,2}")
	}
	if BindableTo(Basic{ID: 3}, pattern, nil) {
		t.Fatal("expected Basic{3} not bindable to Or{1,2}")
	}
}

func TestBindableTo_MutRefDecaysToRef(t *testing.T) {
	mut := MutRef{Inner: Basic{ID: 1}}
	if !BindableTo(mut, Ref{Inner: Basic{ID: 1}}, nil) {
		t.Fatal("expected @T bindable to &T")
	}
	if !BindableTo(mut, MutRef{Inner: Basic{ID: 1}}, nil) {
		t.Fatal("expected @T bindable to @T")
	}
	ref := Ref{Inner: Basic{ID: 1}}
	if BindableTo(ref, MutRef{Inner: Basic{ID: 1}}, nil) {
		t.Fatal("expected &T not bindable to @T: shared cannot decay to mutable")
	}
}

func TestBindableTo_FunctionMatchesArgAndReturn(t *testing.T) {
	v := Function{Arg: Basic{ID: 1}, Ret: Basic{ID: 2}}
	p := Function{Arg: Basic{ID: 1}, Ret: Basic{ID: 2}}
	if !BindableTo(v, p, nil) {
		t.Fatal("expected identical function types bindable")
	}
	p2 := Function{Arg: Basic{ID: 1}, Ret: Basic{ID: 3}}
	if BindableTo(v, p2, nil) {
		t.Fatal("expected mismatched return type to fail")
	}
}

type stubConstraintChecker struct {
	implements map[int]bool
}

func (s stubConstraintChecker) Implements(v Type, c InterfaceConstraint) bool {
	b, ok := v.(Basic)
	if !ok {
		return false
	}
	return s.implements[b.ID]
}

func TestBindableTo_TemplateParamConstraintMustBeSatisfied(t *testing.T) {
	pattern := TemplateParam{Index: 0, Constraints: []InterfaceConstraint{{InterfaceID: 9}}}
	cc := stubConstraintChecker{implements: map[int]bool{1: true, 2: false}}

	if !BindableTo(Basic{ID: 1}, pattern, cc) {
		t.Fatal("expected Basic{1} to satisfy the constraint")
	}
	if BindableTo(Basic{ID: 2}, pattern, cc) {
		t.Fatal("expected Basic{2} to fail the constraint")
	}
}

func TestBindableToSubst_ReturnsAccumulatedSubstitution(t *testing.T) {
	pattern := And{Elements: []Type{TemplateParam{Index: 0}, TemplateParam{Index: 1}}}
	value := And{Elements: []Type{Basic{ID: 1}, Basic{ID: 2}}}
	ok, subst := BindableToSubst(value, pattern, nil)
	if !ok {
		t.Fatal("expected bindable")
	}
	if subst[0] != (Basic{ID: 1}) || subst[1] != (Basic{ID: 2}) {
		t.Fatalf("unexpected substitution: %v", subst)
	}
}
