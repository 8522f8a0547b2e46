package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// VarKind is the closed set of variable kinds a template may declare.
type VarKind string

const (
	// KindString is a free-form string variable.
	KindString VarKind = "string"

	// KindBool is a boolean variable; values must be "true" or "false".
	KindBool VarKind = "bool"

	// KindChoices is an enumerated variable; values must match one choice exactly.
	KindChoices VarKind = "choices"
)

// IsValid reports whether the kind is a member of the closed set.
func (k VarKind) IsValid() bool {
	switch k {
	case KindString, KindBool, KindChoices:
		return true
	}
	return false
}

// VariableSpec is one variable declaration from a template's env section.
type VariableSpec struct {
	// Name is the declared variable name as written in hayaku.yaml.
	Name string

	// Kind selects the prompt widget and the value validation rule.
	Kind VarKind

	// Prompt is the question shown when the variable must be asked for.
	Prompt string

	// Default is the declared fallback value; nil means the variable is
	// required when no answer or global value supplies it.
	Default *string

	// Choices holds the allowed values for KindChoices, in declared order.
	Choices []string
}

// VariableSpecs is an ordered list of variable declarations. Declared order
// is preserved because it determines prompt order.
type VariableSpecs []VariableSpec

// variableSpecDoc is the YAML shape of a single env entry.
type variableSpecDoc struct {
	Type    string   `yaml:"type"`
	Prompt  string   `yaml:"prompt"`
	Default *string  `yaml:"default"`
	Choices []string `yaml:"choices"`
}

// UnmarshalYAML decodes the env mapping while preserving document order.
// A plain map decode would lose the declared order, so the mapping node's
// key/value pairs are walked directly.
func (v *VariableSpecs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: env section must be a mapping", ErrInvalidYAML)
	}

	specs := make(VariableSpecs, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]

		var doc variableSpecDoc
		if err := valNode.Decode(&doc); err != nil {
			return fmt.Errorf("%w: env.%s: %v", ErrInvalidYAML, keyNode.Value, err)
		}

		kind := VarKind(doc.Type)
		if doc.Type == "" {
			kind = KindString
		}

		specs = append(specs, VariableSpec{
			Name:    keyNode.Value,
			Kind:    kind,
			Prompt:  doc.Prompt,
			Default: doc.Default,
			Choices: doc.Choices,
		})
	}

	*v = specs
	return nil
}

// TemplateConfig is the parsed metadata of one template directory.
type TemplateConfig struct {
	Name        string
	DisplayName string
	Description string
	Author      string
	Variables   VariableSpecs
}

// Title returns the display name, falling back to the template name.
func (c *TemplateConfig) Title() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}

// templateSection is the YAML shape of the template header.
type templateSection struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
}

// templateFile is the YAML shape of hayaku.yaml.
type templateFile struct {
	Template templateSection `yaml:"template"`
	Env      VariableSpecs   `yaml:"env"`
}

// DefaultTemplateConfig returns the config used when a template directory
// carries no hayaku.yaml: named after the directory, no variables.
func DefaultTemplateConfig(dirName string) *TemplateConfig {
	return &TemplateConfig{Name: dirName}
}

// Settings holds the per-user global variable defaults. Loaded once at
// process start; read-only afterwards.
type Settings struct {
	GlobalEnv map[string]string `yaml:"global_env"`
}

// DefaultSettings returns empty settings.
func DefaultSettings() *Settings {
	return &Settings{GlobalEnv: map[string]string{}}
}

// IsBoolLiteral reports whether s is a boolean literal accepted for
// bool-kind variables: "true" or "false", case-insensitive.
func IsBoolLiteral(s string) bool {
	return strings.EqualFold(s, "true") || strings.EqualFold(s, "false")
}
