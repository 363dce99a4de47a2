// Package config holds process-wide flags and naming constants shared by
// the type algebra, registry, resolver, inference and checker packages.
package config

// IsTestMode is a process-wide flag an embedder may set once at startup,
// mirroring the teacher's config.IsTestMode. No package in this module
// reads it; diagnostic output is the same whichever value it holds.
var IsTestMode = false

// Recognized annotation names (spec.md §4.5 item 10).
const (
	AnnotationTest = "test"
	AnnotationDoc  = "doc"
)

// Built-in type names that are part of the fixed vocabulary of every
// Nessa program (spec.md §3 invariant 6, "Bool"). The checker's Bool
// lookup (isBoolType) uses the literal name, not this constant.
const (
	BoolTypeName = "Bool"
)

// Format-check categories (spec.md §4.5 item 11). Each is independently
// toggleable via the optional YAML feature file (see LoadFeatureConfig).
const (
	FormatCheckClassNames     = "class_names"
	FormatCheckFunctionNames  = "function_names"
	FormatCheckInterfaceNames = "interface_names"
	FormatCheckTemplateNames  = "template_names"
)
