// Package diagnostics defines the structured error and warning values the
// static checker produces (spec.md §7). Modeled directly on the teacher
// pack's internal/diagnostics package (the mcgru-funxy copy): an error-code
// catalog plus a single struct type with a templated Error() string.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Gabie-of-the-Bo/nessa-core/internal/token"
)

// Code identifies the kind of compiler error (spec.md §7 lists the kinds
// this catalog covers).
type Code string

const (
	// Definition errors.
	ErrDuplicateName        Code = "E001" // duplicate type/operator/function name
	ErrOverloadSubsumption  Code = "E002" // overload subsumes/is subsumed by an existing one
	ErrUnusedTemplateParam  Code = "E003" // declared template parameter never used
	ErrDuplicateAttribute   Code = "E004" // attribute name collision within one class
	ErrImplicitSyntaxParams Code = "E005" // implicit-syntax marker/attribute mismatch

	// Well-formedness errors.
	ErrTemplateArityMismatch Code = "E010" // template-instantiation arity mismatch
	ErrUnresolvedTemplateStr Code = "E011" // TemplateParamStr survived name resolution
	ErrSelfTypeOutside       Code = "E012" // SelfType outside an interface member signature
	ErrUnknownIdentifier     Code = "E013" // reference to an undeclared variable/function/operator id

	// Type errors.
	ErrNotBindable        Code = "E020" // value not bindable to declared/expected type
	ErrAttrNotMutRef      Code = "E021" // attribute assignment: container not a mutable reference
	ErrAttrConstRef       Code = "E022" // attribute assignment: container is a constant reference
	ErrConditionNotBool   Code = "E023" // if/while condition does not deref to Bool
	ErrRepeatedArgument   Code = "E024" // repeated parameter/template-parameter name
	ErrAttributeNotFound  Code = "E026" // attribute access on a non-class type or out-of-range index

	// Resolution errors.
	ErrNoMatchingOverload  Code = "E030" // no overload accepts the given arguments
	ErrAmbiguousCall       Code = "E031" // two or more overloads accept the given arguments
	ErrWrongTemplateArgs   Code = "E032" // explicit template-argument count mismatch

	// Control-flow errors.
	ErrReturnOutsideBody  Code = "E040" // return outside a function/operation body
	ErrBreakOutsideLoop   Code = "E041" // break where not allowed
	ErrContinueOutsideLoop Code = "E042" // continue where not allowed
	ErrNotEnsuredReturn   Code = "E043" // not every path returns

	// Interface errors.
	ErrMissingInterfaceMember Code = "E050" // no overload for a required interface member
	ErrInterfaceReturnMismatch Code = "E051" // return type mismatch for a required member
	ErrInterfaceAmbiguous     Code = "E052" // ambiguous candidate for a required member

	// Annotation errors.
	ErrUnknownAnnotation  Code = "E060" // annotation name not recognized
	ErrAnnotationLocation Code = "E061" // annotation used somewhere it is not allowed
	ErrAnnotationMarkers  Code = "E062" // positional-marker set mismatch

	// Macro errors.
	ErrMacroMarkerMismatch Code = "E070" // pattern/body marker set mismatch

	// Lambda errors.
	ErrLambdaTemplateUsage Code = "E080" // lambda captures/params/return mention a template parameter
	ErrLambdaDuplicateName Code = "E081" // lambda capture/parameter name collision
)

// CompilerError is the structured error value every checker pass returns
// (spec.md §7: "CompilerError{message, location, hints[]}").
type CompilerError struct {
	Code          Code
	Message       string
	Location      token.Location
	Hints         []string
	CorrelationID uuid.UUID
}

// New builds a CompilerError, stamping a fresh correlation id the way an
// external diagnostics sink would expect for deduplication across passes
// (SPEC_FULL.md §6).
func New(code Code, loc token.Location, message string) *CompilerError {
	return &CompilerError{Code: code, Message: message, Location: loc, CorrelationID: uuid.New()}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(code Code, loc token.Location, format string, args ...interface{}) *CompilerError {
	return New(code, loc, fmt.Sprintf(format, args...))
}

// WithHints appends the given hints to e in place and returns e (spec.md §7:
// ambiguous-call errors "list all candidates as hints").
func (e *CompilerError) WithHints(hints ...string) *CompilerError {
	e.Hints = append(e.Hints, hints...)
	return e
}

func (e *CompilerError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]: %s", e.Location.String(), e.Code, e.Message)
	for _, h := range e.Hints {
		fmt.Fprintf(&b, "\n  hint: %s", h)
	}
	return b.String()
}

// Warning is the non-fatal advisory channel (spec.md §6
// "located_nessa_warning!").
type Warning struct {
	Message       string
	Location      token.Location
	CorrelationID uuid.UUID
}

// NewWarning builds a Warning with a fresh correlation id.
func NewWarning(loc token.Location, format string, args ...interface{}) Warning {
	return Warning{Message: fmt.Sprintf(format, args...), Location: loc, CorrelationID: uuid.New()}
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: warning: %s", w.Location.String(), w.Message)
}

// Sink receives warnings emitted during checking (SPEC_FULL.md §12). A
// collecting implementation is provided for tests and embedders that don't
// need a live channel.
type Sink interface {
	Warn(w Warning)
}

// CollectingSink accumulates every warning it receives, in order.
type CollectingSink struct {
	Warnings []Warning
}

func (s *CollectingSink) Warn(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// NopSink discards every warning. Useful when a caller only cares about
// errors.
type NopSink struct{}

func (NopSink) Warn(Warning) {}
