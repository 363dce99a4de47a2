// Package checker implements the static checker (spec.md §4.5): a suite
// of traversals over a whole compilation unit that enforce well-formedness,
// repeated-argument rules, ensured-return, return-type compatibility,
// ambiguity detection, assignment/call type compatibility, reference-
// mutability rules, break/continue legality, template-parameter usage,
// interface-implementation completeness, lambda restrictions and
// annotation validity.
//
// Grounded on the teacher's analyzer.Analyzer (internal/analyzer/analyzer.go):
// a struct carrying a symbol table plus small pieces of traversal state
// (inLoop, TypeMap), generalized from funxy's single-language-specific
// walk to the spec's explicitly ordered 11-pass suite over the closed
// internal/ast node set, and built on this repo's own registry/resolver/
// inference packages rather than funxy's symbols/typesystem.
package checker

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Gabie-of-the-Bo/nessa-core/internal/ast"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/config"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/diagnostics"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/inference"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/registry"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/resolver"
)

// Checker holds the fixed dependencies threaded through every check
// (spec.md §9 "Global mutable state... modeled as an explicit configuration
// record threaded by reference"; SPEC_FULL.md §12 "Context struct
// threading").
type Checker struct {
	Ctx     *registry.Context
	Res     *resolver.Resolver
	Inf     *inference.Inferer
	Warn    diagnostics.Sink
	Feature *config.FeatureConfig
}

// New builds a Checker over a frozen registry snapshot (spec.md §5: "the
// registry is read-only during checking"). warn may be nil, in which case
// warnings are silently discarded (diagnostics.NopSink). feature may be nil,
// in which case every annotation/format check behaves as
// config.DefaultFeatureConfig would.
func New(ctx *registry.Context, cache *resolver.Cache, warn diagnostics.Sink, feature *config.FeatureConfig) *Checker {
	res := resolver.New(ctx, cache)
	if warn == nil {
		warn = diagnostics.NopSink{}
	}
	if feature == nil {
		feature = config.DefaultFeatureConfig()
	}
	return &Checker{
		Ctx:     ctx,
		Res:     res,
		Inf:     inference.New(ctx, res),
		Warn:    warn,
		Feature: feature,
	}
}

// Check runs the static checker over one compilation unit sequentially,
// in declaration order, failing fast on the first error (spec.md §5:
// "the reference semantics is fail-fast — each pass returns on the first
// error"; "within a pass, AST traversal is depth-first left-to-right").
func (c *Checker) Check(prog *ast.Program) error {
	for _, stmt := range prog.Statements {
		if err := c.checkTopLevel(stmt); err != nil {
			return err
		}
	}
	return nil
}

// checkTopLevel dispatches one top-level declaration through every
// applicable pass, in the order spec.md §4.5 lists them. Each declaration
// kind recognizes only the passes that apply to it. A bare *ast.Return at
// top level is the "return outside a function/operation body" case of
// spec.md §4.5 item 5 (the shared ast.Statement interface admits it here
// even though the parser never emits one outside a body); any other
// unrecognized statement variant at top level is a hard error, per
// spec.md §9's "any unimplemented variant must be a hard error" design
// note.
func (c *Checker) checkTopLevel(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.FunctionDefinition:
		return c.checkFunctionDef(s)
	case *ast.OperatorDefinition:
		return c.checkOperatorDef(s)
	case *ast.ClassDefinition:
		return c.checkClassDef(s)
	case *ast.InterfaceDefinition:
		return c.checkInterfaceDef(s)
	case *ast.InterfaceImplementation:
		return c.checkInterfaceImplementation(s)
	case *ast.MacroDefinition:
		return c.checkMacroDef(s)
	case *ast.Return:
		return diagnostics.Newf(diagnostics.ErrReturnOutsideBody, s.Loc(),
			"return statement is not allowed outside a function or operation body")
	default:
		panic(fmt.Sprintf("checker: unhandled top-level statement %T", stmt))
	}
}

// CheckAll runs the checker over several independent compilation units
// concurrently (SPEC_FULL.md §5): one goroutine per program, at most
// `workers` at a time (a buffered channel acts as the semaphore, a
// sync.WaitGroup waits for all of them). Declarations inside one program
// are still checked sequentially by Check. The resolver cache has one
// lock per symbol kind (spec.md §5).
// Unlike Check, CheckAll collects every program's error rather than
// stopping at the first, since programs are independent; each program's
// own internal passes remain fail-fast. workers <= 0 defaults to
// len(progs).
func (c *Checker) CheckAll(progs []*ast.Program, workers int) []error {
	if workers <= 0 {
		workers = len(progs)
	}
	if workers < 1 {
		workers = 1
	}

	errs := make([]error, len(progs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, p := range progs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, p *ast.Program) {
			defer wg.Done()
			defer func() { <-sem }()
			errs[i] = c.Check(p)
		}(i, p)
	}
	wg.Wait()
	return errs
}

// sortedKeys is a small helper used by the macro pass to make
// marker-set-mismatch error messages deterministic.
func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
