package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// FeatureConfig describes which optional checker behaviors are enabled.
// Mirrors the teacher's ext.Config (funxy.yaml) one-for-one: a small,
// flat YAML document loaded once and consulted by value from then on.
type FeatureConfig struct {
	// Annotations lists additional annotation names accepted beyond the
	// two built into the checker (`test`, `doc`). An empty list means
	// only the built-ins are recognized.
	Annotations []string `yaml:"annotations,omitempty"`

	// FormatChecks lists which naming-convention categories (spec.md
	// §4.5 item 11) emit warnings. Nil/absent means all are enabled.
	FormatChecks []string `yaml:"format_checks,omitempty"`
}

// DefaultFeatureConfig returns the configuration used when no YAML file is
// present: every built-in format check enabled, no extra annotations.
func DefaultFeatureConfig() *FeatureConfig {
	return &FeatureConfig{
		FormatChecks: []string{
			FormatCheckClassNames,
			FormatCheckFunctionNames,
			FormatCheckInterfaceNames,
			FormatCheckTemplateNames,
		},
	}
}

// LoadFeatureConfig reads a nessa-analyzer.yaml-shaped file from path.
// A missing file is not an error: DefaultFeatureConfig is returned instead,
// the same way the teacher's ext loader treats an absent funxy.yaml as
// "no extra Go dependencies" rather than failing the build.
func LoadFeatureConfig(path string) (*FeatureConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultFeatureConfig(), nil
		}
		return nil, err
	}

	var cfg FeatureConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.FormatChecks) == 0 {
		cfg.FormatChecks = DefaultFeatureConfig().FormatChecks
	}
	return &cfg, nil
}

// FormatCheckEnabled reports whether the given category is active.
func (c *FeatureConfig) FormatCheckEnabled(category string) bool {
	if c == nil || len(c.FormatChecks) == 0 {
		return true
	}
	for _, c := range c.FormatChecks {
		if c == category {
			return true
		}
	}
	return false
}

// AnnotationAllowed reports whether name is a recognized annotation: either
// one of the two built-ins or one listed in the feature config.
func (c *FeatureConfig) AnnotationAllowed(name string) bool {
	if name == AnnotationTest || name == AnnotationDoc {
		return true
	}
	if c == nil {
		return false
	}
	for _, a := range c.Annotations {
		if a == name {
			return true
		}
	}
	return false
}
