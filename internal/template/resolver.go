package template

import (
	"fmt"

	"github.com/k88hudson/hayaku/internal/config"
)

// Prompter is the interactive collaborator asked for variables that no
// answer, global value, or default could supply. A nil Prompter means the
// run is non-interactive and such variables fail resolution.
type Prompter interface {
	// Ask prompts for one variable and returns the entered value.
	Ask(spec config.VariableSpec) (string, error)
}

// ResolveOptions carries the inputs of one resolution run.
type ResolveOptions struct {
	// ProjectName is the destination project's base name; it becomes the
	// default of the built-in PROJECT_NAME variable.
	ProjectName string

	// TemplateName is exposed to templates as TEMPLATE_NAME.
	TemplateName string

	// Answers are explicit user-supplied values (flags or prompt results
	// folded back in by the caller). An answer always wins.
	Answers map[string]string

	// GlobalEnv are the per-user global defaults. A global value silently
	// shadows the spec's own default.
	GlobalEnv map[string]string

	// Prompter is consulted for otherwise unresolved variables; nil makes
	// the run non-interactive.
	Prompter Prompter
}

// Resolve merges global settings, the template's declared variables, and
// explicit answers into an immutable Context. Precedence per variable:
// answer, then global value, then spec default, then prompt. Declared order
// is preserved for prompting only; it has no effect on precedence.
//
// PROJECT_NAME is injected unconditionally as an implicit string variable
// defaulting to opts.ProjectName. A template-declared variable of the same
// canonical name is ignored (the built-in wins), but answer- and
// global-level overrides are honored like for any other variable.
func Resolve(specs config.VariableSpecs, opts ResolveOptions) (*Context, error) {
	projectDefault := opts.ProjectName
	merged := make(config.VariableSpecs, 0, len(specs)+1)
	merged = append(merged, config.VariableSpec{
		Name:    KeyProjectName,
		Kind:    config.KindString,
		Prompt:  "Project name",
		Default: &projectDefault,
	})
	for _, spec := range specs {
		if CanonicalKey(spec.Name) == KeyProjectName {
			continue
		}
		merged = append(merged, spec)
	}

	values := make(map[string]string, len(merged)+2)
	for _, spec := range merged {
		value, err := resolveOne(spec, opts)
		if err != nil {
			return nil, err
		}
		values[spec.Name] = value
	}

	// Built-in aliases in both spellings, matching what templates expect.
	values["project_name"] = values[KeyProjectName]
	if opts.TemplateName != "" {
		values["template_name"] = opts.TemplateName
	}

	return newContext(values), nil
}

// resolveOne applies the precedence chain to a single variable.
func resolveOne(spec config.VariableSpec, opts ResolveOptions) (string, error) {
	if value, ok := lookupByName(opts.Answers, spec.Name); ok {
		return value, validateValue(spec, value)
	}

	if value, ok := lookupByName(opts.GlobalEnv, spec.Name); ok {
		return value, validateValue(spec, value)
	}

	if spec.Default != nil {
		return *spec.Default, validateValue(spec, *spec.Default)
	}

	if opts.Prompter != nil {
		value, err := opts.Prompter.Ask(spec)
		if err != nil {
			return "", fmt.Errorf("prompt for %q: %w", spec.Name, err)
		}
		return value, validateValue(spec, value)
	}

	return "", &ResolutionError{
		Variable: spec.Name,
		Reason:   "no answer, global value, or default in non-interactive mode",
		Wrapped:  ErrUnresolvedVariable,
	}
}

// lookupByName finds a value by exact name first, then by canonical key, so
// an answer given as AUTHOR binds a variable declared as author. When
// several keys share the canonical form the lexicographically smallest key
// wins, keeping the lookup deterministic across runs.
func lookupByName(m map[string]string, name string) (string, bool) {
	if m == nil {
		return "", false
	}
	if v, ok := m[name]; ok {
		return v, true
	}
	canonical := CanonicalKey(name)
	best := ""
	found := false
	for k := range m {
		if CanonicalKey(k) != canonical {
			continue
		}
		if !found || k < best {
			best = k
			found = true
		}
	}
	if !found {
		return "", false
	}
	return m[best], true
}

// validateValue enforces kind-specific value rules.
func validateValue(spec config.VariableSpec, value string) error {
	switch spec.Kind {
	case config.KindBool:
		if !config.IsBoolLiteral(value) {
			return &ResolutionError{
				Variable: spec.Name,
				Value:    value,
				Reason:   `bool variables accept only "true" or "false"`,
				Wrapped:  ErrInvalidValue,
			}
		}
	case config.KindChoices:
		for _, choice := range spec.Choices {
			if value == choice {
				return nil
			}
		}
		return &ResolutionError{
			Variable: spec.Name,
			Value:    value,
			Reason:   "value is not one of the declared choices",
			Wrapped:  ErrInvalidValue,
		}
	}
	return nil
}
