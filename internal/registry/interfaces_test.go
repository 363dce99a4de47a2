package registry

import (
	"testing"

	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

func TestDefineInterfaceImpl_IsFoundByImplsOf(t *testing.T) {
	ctx := NewContext()
	ifaceID, err := ctx.DefineInterface("Printable", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	intTypeID, _ := ctx.DefineType("Int", nil)

	if err := ctx.DefineInterfaceImpl(ifaceID, 0, types.Basic{ID: intTypeID}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	impls := ctx.ImplsOf(ifaceID)
	if len(impls) != 1 || impls[0].ImplementingType != (types.Basic{ID: intTypeID}) {
		t.Fatalf("unexpected impls: %+v", impls)
	}
}

func TestImplements_TrueWhenABindingImplExists(t *testing.T) {
	ctx := NewContext()
	ifaceID, _ := ctx.DefineInterface("Printable", nil)
	intTypeID, _ := ctx.DefineType("Int", nil)
	boolTypeID, _ := ctx.DefineType("Bool", nil)

	if err := ctx.DefineInterfaceImpl(ifaceID, 0, types.Basic{ID: intTypeID}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !ctx.Implements(types.Basic{ID: intTypeID}, types.InterfaceConstraint{InterfaceID: ifaceID}) {
		t.Fatal("expected Int to implement Printable")
	}
	if ctx.Implements(types.Basic{ID: boolTypeID}, types.InterfaceConstraint{InterfaceID: ifaceID}) {
		t.Fatal("expected Bool to not implement Printable: no implementation registered for it")
	}
}

func TestImplements_ChecksBoundArgumentsAgainstConstraintArgs(t *testing.T) {
	ctx := NewContext()
	ifaceID, _ := ctx.DefineInterface("Convert", []string{"To"})
	arrayID, _ := ctx.DefineType("Array", []string{"T"})
	intTypeID, _ := ctx.DefineType("Int", nil)
	boolTypeID, _ := ctx.DefineType("Bool", nil)

	// impl Convert<Int> for Array<T0> (generic in its own parameter).
	if err := ctx.DefineInterfaceImpl(ifaceID, 1, types.Template{ID: arrayID, Args: []types.Type{types.TemplateParam{Index: 0}}}, []types.Type{types.Basic{ID: intTypeID}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	arrayOfBool := types.Template{ID: arrayID, Args: []types.Type{types.Basic{ID: boolTypeID}}}

	if !ctx.Implements(arrayOfBool, types.InterfaceConstraint{InterfaceID: ifaceID, Args: []types.Type{types.Basic{ID: intTypeID}}}) {
		t.Fatal("expected Array<Bool> to implement Convert<Int>: the impl is generic over the array's element type")
	}
	if ctx.Implements(arrayOfBool, types.InterfaceConstraint{InterfaceID: ifaceID, Args: []types.Type{types.Basic{ID: boolTypeID}}}) {
		t.Fatal("expected Array<Bool> to not implement Convert<Bool>: only Convert<Int> is registered")
	}
}
