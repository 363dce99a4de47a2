package registry

import (
	"fmt"

	"github.com/Gabie-of-the-Bo/nessa-core/internal/diagnostics"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/token"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

// AttributeDef is one (name, declared type) pair of a class/struct-like
// type template (spec.md §3 TypeTemplate.attributes).
type AttributeDef struct {
	Name string
	Type types.Type
}

// SyntaxMarker is one positional marker of an implicit-syntax pattern,
// naming the attribute it constructs (spec.md §3 "implicit-syntax
// patterns"; invariant 1 in §4.5 item 7 ties markers to attribute names).
type SyntaxMarker struct {
	Attribute string
}

// TypeTemplate is a registered named type (spec.md §3, §4.2 define_type).
type TypeTemplate struct {
	ID         int
	Name       string
	Params     []string
	Attributes []AttributeDef
	Alias      types.Type // nil unless this is a type alias
	Syntax     []SyntaxMarker
}

// DefineType registers a new named type. Fails if name is already defined
// (spec.md §4.2 define_type contract); the new id equals the current
// count, matching the teacher's index-assignment convention
// (symbol_table_operations.go's append-based Define).
func (c *Context) DefineType(name string, params []string) (int, error) {
	if _, exists := c.typesByName[name]; exists {
		return -1, diagnostics.Newf(diagnostics.ErrDuplicateName, token.Location{}, "type %q is already defined", name)
	}
	id := len(c.Types)
	c.Types = append(c.Types, TypeTemplate{ID: id, Name: name, Params: params})
	c.typesByName[name] = id
	return id, nil
}

// SetAttributes records the attribute list of an already-defined type
// (split from DefineType so the registry can accept forward references the
// way a class body refers to itself).
func (c *Context) SetAttributes(typeID int, attrs []AttributeDef) error {
	if typeID < 0 || typeID >= len(c.Types) {
		return fmt.Errorf("unknown type id %d", typeID)
	}
	c.Types[typeID].Attributes = attrs
	return nil
}

// SetAlias records the underlying type of a type alias.
func (c *Context) SetAlias(typeID int, alias types.Type) error {
	if typeID < 0 || typeID >= len(c.Types) {
		return fmt.Errorf("unknown type id %d", typeID)
	}
	c.Types[typeID].Alias = alias
	return nil
}

// SetSyntax records the implicit-syntax pattern of a class (spec.md §4.5
// item 7 forbids this for generic classes; that check lives in the
// checker, not here).
func (c *Context) SetSyntax(typeID int, markers []SyntaxMarker) error {
	if typeID < 0 || typeID >= len(c.Types) {
		return fmt.Errorf("unknown type id %d", typeID)
	}
	c.Types[typeID].Syntax = markers
	return nil
}

// LookupType resolves a type name to its registry id.
func (c *Context) LookupType(name string) (int, bool) {
	id, ok := c.typesByName[name]
	return id, ok
}

// TypeByID returns the TypeTemplate for id, if any.
func (c *Context) TypeByID(id int) (TypeTemplate, bool) {
	if id < 0 || id >= len(c.Types) {
		return TypeTemplate{}, false
	}
	return c.Types[id], true
}
