// Package nessacore is the embedding façade over the semantic-analysis
// core: a thin layer of type aliases and constructors re-exporting the
// internal registry/resolver/inference/checker/diagnostics/config types,
// mirroring the teacher's pkg/ext re-export pattern (SPEC_FULL.md §2
// "Driver (pkg/nessacore)").
package nessacore

import (
	"github.com/Gabie-of-the-Bo/nessa-core/internal/ast"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/checker"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/config"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/diagnostics"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/registry"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/resolver"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/token"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

// AST node aliases (spec.md §1: "The AST shape is assumed given").
type (
	Program     = ast.Program
	Statement   = ast.Statement
	Expression  = ast.Expression
	Annotation  = ast.Annotation
	Param       = ast.Param
)

// Type-algebra aliases (spec.md §3).
type (
	Type      = types.Type
	Basic     = types.Basic
	Template  = types.Template
	Ref       = types.Ref
	MutRef    = types.MutRef
	Or        = types.Or
	And       = types.And
	Function  = types.Function
)

// Registry aliases (spec.md §3-4.2).
type (
	Context        = registry.Context
	TypeTemplate   = registry.TypeTemplate
	Interface      = registry.Interface
	InterfaceImpl  = registry.InterfaceImpl
	Operation      = registry.Operation
)

// Resolver/checker/diagnostics aliases.
type (
	Resolver     = resolver.Resolver
	Cache        = resolver.Cache
	Result       = resolver.Result
	Checker      = checker.Checker
	CompilerError = diagnostics.CompilerError
	Warning       = diagnostics.Warning
	Sink          = diagnostics.Sink
	FeatureConfig = config.FeatureConfig
	Location      = token.Location
)

// NewContext builds an empty, mutable registry ready to receive type,
// operator, function and interface declarations (spec.md §4.2).
func NewContext() *Context {
	return registry.NewContext()
}

// NewCache builds an empty overload-resolution cache, sharded per symbol
// kind (spec.md §5).
func NewCache() *Cache {
	return resolver.NewCache()
}

// NewChecker builds a Checker over a frozen registry snapshot. warn and
// feature may both be nil; see checker.New for the defaults that applies.
func NewChecker(ctx *Context, cache *Cache, warn Sink, feature *FeatureConfig) *Checker {
	return checker.New(ctx, cache, warn, feature)
}

// Check runs every static-checker pass over one compilation unit
// (spec.md §4.5), failing fast on the first error.
func Check(c *Checker, prog *Program) error {
	return c.Check(prog)
}

// CheckAll runs the checker concurrently over several independent
// compilation units (SPEC_FULL.md §5), returning one error slot per
// program. workers <= 0 defaults to one goroutine per program.
func CheckAll(c *Checker, progs []*Program, workers int) []error {
	return c.CheckAll(progs, workers)
}

// CollectingSink accumulates warnings for embedders that don't need a
// live channel (spec.md §6 "Diagnostics sink").
type CollectingSink = diagnostics.CollectingSink

// NopSink discards every warning emitted during checking.
type NopSink = diagnostics.NopSink

// LoadFeatureConfig reads the optional YAML feature-flag file (SPEC_FULL.md
// §6). A missing file is not an error.
func LoadFeatureConfig(path string) (*FeatureConfig, error) {
	return config.LoadFeatureConfig(path)
}

// DefaultFeatureConfig returns the configuration used when no YAML file is
// present.
func DefaultFeatureConfig() *FeatureConfig {
	return config.DefaultFeatureConfig()
}
