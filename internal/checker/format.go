package checker

import (
	"strings"
	"unicode"

	"github.com/Gabie-of-the-Bo/nessa-core/internal/config"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/diagnostics"
	"github.com/Gabie-of-the-Bo/nessa-core/internal/token"
)

// Pass 11 (spec.md §4.5 item 11): naming-convention warnings. These never
// fail a check, only append to c.Warn; each category is independently
// gated by the feature config the way the teacher's ext.Config gates
// optional lints.

// warnFunctionName flags a function/operation name that is not snake_case.
func (c *Checker) warnFunctionName(name string, loc token.Location) {
	if !c.Feature.FormatCheckEnabled(config.FormatCheckFunctionNames) {
		return
	}
	if !isSnakeCase(name) {
		c.Warn.Warn(diagnostics.NewWarning(loc, "function name %q should be snake_case", name))
	}
}

// warnClassName flags a class name that is not PascalCase.
func (c *Checker) warnClassName(name string, loc token.Location) {
	if !c.Feature.FormatCheckEnabled(config.FormatCheckClassNames) {
		return
	}
	if !isPascalCase(name) {
		c.Warn.Warn(diagnostics.NewWarning(loc, "class name %q should be PascalCase", name))
	}
}

// warnInterfaceName flags an interface name that is not PascalCase.
func (c *Checker) warnInterfaceName(name string, loc token.Location) {
	if !c.Feature.FormatCheckEnabled(config.FormatCheckInterfaceNames) {
		return
	}
	if !isPascalCase(name) {
		c.Warn.Warn(diagnostics.NewWarning(loc, "interface name %q should be PascalCase", name))
	}
}

// warnTemplateName flags a template-parameter name that is not a single
// uppercase letter possibly followed by digits (the pack-wide convention,
// e.g. "T", "K", "V1").
func (c *Checker) warnTemplateName(name string, loc token.Location) {
	if !c.Feature.FormatCheckEnabled(config.FormatCheckTemplateNames) {
		return
	}
	if !isTemplateStyle(name) {
		c.Warn.Warn(diagnostics.NewWarning(loc, "template parameter %q should be a single uppercase letter", name))
	}
}

// warnTemplateNames flags every declared template-parameter name in names
// that is not a single uppercase letter possibly followed by digits.
func (c *Checker) warnTemplateNames(names []string, loc token.Location) {
	for _, n := range names {
		c.warnTemplateName(n, loc)
	}
}

func isSnakeCase(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
		if !(unicode.IsLower(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return !strings.HasPrefix(s, "_") && !strings.HasSuffix(s, "_")
}

func isPascalCase(s string) bool {
	if s == "" || !unicode.IsUpper(rune(s[0])) {
		return false
	}
	for _, r := range s {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

func isTemplateStyle(s string) bool {
	if s == "" || !unicode.IsUpper(rune(s[0])) {
		return false
	}
	for _, r := range s[1:] {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
