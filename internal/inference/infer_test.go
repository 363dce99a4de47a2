package inference

import (
	"reflect"
	"testing"

	"github.com/Gabie-of-the-Bo/nessa-core/internal/ast"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/registry"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/resolver"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/token"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

func newInferer() (*Inferer, *registry.Context) {
	ctx := registry.NewContext()
	res := resolver.New(ctx, nil)
	return New(ctx, res), ctx
}

func lit(t types.Type) *ast.Literal {
	return &ast.Literal{Type: t}
}

func TestEnv_LookupWrapsBareBindingInMutRef(t *testing.T) {
	env := NewEnv()
	env.Define("x", types.Basic{ID: 1})

	got, ok := env.Lookup("x")
	if !ok {
		t.Fatal("expected x to be found")
	}
	if got != (types.MutRef{Inner: types.Basic{ID: 1}}) {
		t.Fatalf("expected a bare binding to read as MutRef, got %v", got)
	}
}

func TestEnv_LookupLeavesExistingReferenceUnwrapped(t *testing.T) {
	env := NewEnv()
	env.Define("x", types.Ref{Inner: types.Basic{ID: 1}})

	got, ok := env.Lookup("x")
	if !ok {
		t.Fatal("expected x to be found")
	}
	if got != (types.Ref{Inner: types.Basic{ID: 1}}) {
		t.Fatalf("expected an already-referenced binding to pass through unwrapped, got %v", got)
	}
}

func TestEnv_ChildShadowsParent(t *testing.T) {
	parent := NewEnv()
	parent.Define("x", types.Basic{ID: 1})
	child := parent.Child()
	child.Define("x", types.Basic{ID: 2})

	got, _ := child.Declared("x")
	if got != (types.Basic{ID: 2}) {
		t.Fatalf("expected child's binding to shadow the parent's, got %v", got)
	}
	parentGot, _ := parent.Declared("x")
	if parentGot != (types.Basic{ID: 1}) {
		t.Fatalf("expected the parent's own binding to remain untouched, got %v", parentGot)
	}
}

func TestInferType_Literal(t *testing.T) {
	inf, _ := newInferer()
	ty, err := inf.InferType(NewEnv(), lit(types.Basic{ID: 1}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty != (types.Basic{ID: 1}) {
		t.Fatalf("unexpected type: %v", ty)
	}
}

func TestInferType_UnknownVariableIsAnError(t *testing.T) {
	inf, _ := newInferer()
	_, err := inf.InferType(NewEnv(), &ast.Variable{Name: "missing"})
	if err == nil {
		t.Fatal("expected an error referencing an undeclared variable")
	}
}

func TestInferType_TupleExprComposesAnd(t *testing.T) {
	inf, _ := newInferer()
	expr := &ast.TupleExpr{Elements: []ast.Expression{lit(types.Basic{ID: 1}), lit(types.Basic{ID: 2})}}
	ty, err := inf.InferType(NewEnv(), expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := types.And{Elements: []types.Type{types.Basic{ID: 1}, types.Basic{ID: 2}}}
	if !reflect.DeepEqual(ty, want) {
		t.Fatalf("expected %v, got %v", want, ty)
	}
}

func TestInferType_FunctionCallComposesReturnSubstitution(t *testing.T) {
	inf, ctx := newInferer()
	fid, _ := ctx.DefineFunction("identity")
	genericArgs := types.And{Elements: []types.Type{types.TemplateParam{Index: 0}}}
	if _, err := ctx.DefFunctionOverload(fid, 1, genericArgs, types.TemplateParam{Index: 0}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := &ast.FunctionCall{FunctionID: fid, Args: []ast.Expression{lit(types.Basic{ID: 7})}}
	ty, err := inf.InferType(NewEnv(), call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty != (types.Basic{ID: 7}) {
		t.Fatalf("expected the generic return type to resolve to Basic{7}, got %v", ty)
	}
}

func TestLookupAttributeRaw_SubstitutesTemplateArguments(t *testing.T) {
	ctx := registry.NewContext()
	boxID, _ := ctx.DefineType("Box", []string{"T"})
	if err := ctx.SetAttributes(boxID, []registry.AttributeDef{{Name: "value", Type: types.TemplateParam{Index: 0}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	boxOfInt := types.Template{ID: boxID, Args: []types.Type{types.Basic{ID: 1}}}
	attrT, err := LookupAttributeRaw(ctx, boxOfInt, 0, token.Location{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attrT != (types.Basic{ID: 1}) {
		t.Fatalf("expected the attribute's template parameter substituted with Basic{1}, got %v", attrT)
	}
}

func TestPropagateAttributeRef_Table(t *testing.T) {
	cases := []struct {
		name      string
		container types.Type
		attr      types.Type
		want      types.Type
	}{
		{"mutref-of-bare", types.MutRef{Inner: types.Basic{ID: 1}}, types.Basic{ID: 2}, types.MutRef{Inner: types.Basic{ID: 2}}},
		{"mutref-of-ref-passes-through", types.MutRef{Inner: types.Basic{ID: 1}}, types.Ref{Inner: types.Basic{ID: 2}}, types.Ref{Inner: types.Basic{ID: 2}}},
		{"ref-of-bare", types.Ref{Inner: types.Basic{ID: 1}}, types.Basic{ID: 2}, types.Ref{Inner: types.Basic{ID: 2}}},
		{"ref-of-mutref-decays-to-ref", types.Ref{Inner: types.Basic{ID: 1}}, types.MutRef{Inner: types.Basic{ID: 2}}, types.Ref{Inner: types.Basic{ID: 2}}},
		{"bare-container-passes-through", types.Basic{ID: 1}, types.Basic{ID: 2}, types.Basic{ID: 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := propagateAttributeRef(c.container, c.attr)
			if got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}
