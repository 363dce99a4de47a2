package registry

import (
	"testing"

	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

func TestDefineType_RejectsNameCollision(t *testing.T) {
	ctx := NewContext()
	if _, err := ctx.DefineType("Array", []string{"T"}); err != nil {
		t.Fatalf("unexpected error on first definition: %v", err)
	}
	if _, err := ctx.DefineType("Array", nil); err == nil {
		t.Fatal("expected an error redefining an existing type name")
	}
}

func TestLookupType_RoundTrips(t *testing.T) {
	ctx := NewContext()
	id, err := ctx.DefineType("Int", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := ctx.LookupType("Int")
	if !ok || got != id {
		t.Fatalf("expected LookupType to return %d, got %d (ok=%v)", id, got, ok)
	}
	tmpl, ok := ctx.TypeByID(id)
	if !ok || tmpl.Name != "Int" {
		t.Fatalf("unexpected TypeByID result: %+v (ok=%v)", tmpl, ok)
	}
}

func TestDefineFunction_RejectsNameCollision(t *testing.T) {
	ctx := NewContext()
	if _, err := ctx.DefineFunction("f"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ctx.DefineFunction("f"); err == nil {
		t.Fatal("expected an error redefining an existing function name")
	}
}

func TestDefFunctionOverload_RejectsSubsumption(t *testing.T) {
	ctx := NewContext()
	fid, err := ctx.DefineFunction("f")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// f(Wildcard) -> Int
	if _, err := ctx.DefFunctionOverload(fid, 0, types.Wildcard{}, types.Basic{ID: 1}, nil); err != nil {
		t.Fatalf("unexpected error adding the first overload: %v", err)
	}

	// f(Basic{2}) would be subsumed by the wildcard overload already present.
	if _, err := ctx.DefFunctionOverload(fid, 0, types.Basic{ID: 2}, types.Basic{ID: 1}, nil); err == nil {
		t.Fatal("expected an antichain violation adding an overload subsumed by an existing wildcard overload")
	}
}

func TestDefFunctionOverload_AllowsDisjointOverloads(t *testing.T) {
	ctx := NewContext()
	fid, err := ctx.DefineFunction("f")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ctx.DefFunctionOverload(fid, 0, types.Basic{ID: 1}, types.Basic{ID: 10}, nil); err != nil {
		t.Fatalf("unexpected error adding first overload: %v", err)
	}
	if _, err := ctx.DefFunctionOverload(fid, 0, types.Basic{ID: 2}, types.Basic{ID: 10}, nil); err != nil {
		t.Fatalf("expected disjoint overload to be accepted, got error: %v", err)
	}
}

func TestLookupFunction_UnknownNameIsNotFound(t *testing.T) {
	ctx := NewContext()
	if _, ok := ctx.LookupFunction("missing"); ok {
		t.Fatal("expected LookupFunction to report not-found for an undeclared name")
	}
}
