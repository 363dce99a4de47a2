package resolver

import (
	"testing"

	"github.com/Gabie-of-the-Bo/nessa-core/internal/registry"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/token"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

func TestResolveFunction_FirstMatchWins(t *testing.T) {
	ctx := registry.NewContext()
	fid, _ := ctx.DefineFunction("f")
	// Two overloads in declaration order whose domains overlap on Basic{1}
	// without either subsuming the other (the registry rejects subsuming
	// overloads): (1 | 2) first, then (1 | 3). ResolveFunction wraps
	// call-site argument types in And, so overload Args must be stored the
	// same way.
	firstArgs := types.And{Elements: []types.Type{types.Or{Variants: []types.Type{types.Basic{ID: 1}, types.Basic{ID: 2}}}}}
	secondArgs := types.And{Elements: []types.Type{types.Or{Variants: []types.Type{types.Basic{ID: 1}, types.Basic{ID: 3}}}}}
	if _, err := ctx.DefFunctionOverload(fid, 0, firstArgs, types.Basic{ID: 100}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ctx.DefFunctionOverload(fid, 0, secondArgs, types.Basic{ID: 200}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := New(ctx, nil)
	res, err := r.ResolveFunction(fid, []types.Type{types.Basic{ID: 1}}, nil, false, token.Location{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OverloadIndex != 0 {
		t.Fatalf("expected the first declared matching overload to win, got index %d", res.OverloadIndex)
	}

	res2, err := r.ResolveFunction(fid, []types.Type{types.Basic{ID: 3}}, nil, false, token.Location{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res2.OverloadIndex != 1 {
		t.Fatalf("expected the second overload to win for an argument only it accepts, got index %d", res2.OverloadIndex)
	}
}

func TestResolveFunction_NoMatchReturnsError(t *testing.T) {
	ctx := registry.NewContext()
	fid, _ := ctx.DefineFunction("f")
	intArgs := types.And{Elements: []types.Type{types.Basic{ID: 1}}}
	if _, err := ctx.DefFunctionOverload(fid, 0, intArgs, types.Basic{ID: 100}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := New(ctx, nil)
	if _, err := r.ResolveFunction(fid, []types.Type{types.Basic{ID: 2}}, nil, false, token.Location{}); err == nil {
		t.Fatal("expected an error resolving against an argument no overload accepts")
	}
}

func TestResolveFunction_SubstitutesReturnTypeWhenRequested(t *testing.T) {
	ctx := registry.NewContext()
	fid, _ := ctx.DefineFunction("identity")
	genericArgs := types.And{Elements: []types.Type{types.TemplateParam{Index: 0}}}
	if _, err := ctx.DefFunctionOverload(fid, 1, genericArgs, types.TemplateParam{Index: 0}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := New(ctx, nil)
	res, err := r.ResolveFunction(fid, []types.Type{types.Basic{ID: 7}}, nil, true, token.Location{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ReturnType != (types.Basic{ID: 7}) {
		t.Fatalf("expected substituted return type Basic{7}, got %v", res.ReturnType)
	}
}

func TestResolveFunction_CachesAcrossCalls(t *testing.T) {
	ctx := registry.NewContext()
	fid, _ := ctx.DefineFunction("f")
	intArgs := types.And{Elements: []types.Type{types.Basic{ID: 1}}}
	if _, err := ctx.DefFunctionOverload(fid, 0, intArgs, types.Basic{ID: 100}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cache := NewCache()
	r := New(ctx, cache)
	args := []types.Type{types.Basic{ID: 1}}

	first, err := r.ResolveFunction(fid, args, nil, false, token.Location{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cache.Get(KindFunction, fid, types.And{Elements: args}, nil); !ok {
		t.Fatal("expected a cache entry after the first resolution")
	}

	second, err := r.ResolveFunction(fid, args, nil, false, token.Location{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.OverloadIndex != first.OverloadIndex {
		t.Fatalf("expected the cached result to match, got %d vs %d", second.OverloadIndex, first.OverloadIndex)
	}
}

func TestResolveBinary_PairsArgumentsIntoAnd(t *testing.T) {
	ctx := registry.NewContext()
	opID, _ := ctx.DefineBinaryOperator("+")
	if _, err := ctx.DefBinaryOperation(opID, 0, types.Basic{ID: 1}, types.Basic{ID: 1}, types.Basic{ID: 1}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := New(ctx, nil)
	res, err := r.ResolveBinary(opID, types.Basic{ID: 1}, types.Basic{ID: 1}, nil, false, token.Location{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ReturnType != (types.Basic{ID: 1}) {
		t.Fatalf("unexpected return type: %v", res.ReturnType)
	}

	if _, err := r.ResolveBinary(opID, types.Basic{ID: 1}, types.Basic{ID: 2}, nil, false, token.Location{}); err == nil {
		t.Fatal("expected an error when the right operand does not match any overload")
	}
}
