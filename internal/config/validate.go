package config

import (
	"fmt"
	"slices"
)

// Validate checks the schema invariants of a single variable declaration:
// the kind is a member of the closed set, choices are present exactly when
// the kind requires them, and a declared default is a legal value for the
// kind.
func (s *VariableSpec) Validate() error {
	if !s.Kind.IsValid() {
		return &ValidationError{
			Variable: s.Name,
			Message:  fmt.Sprintf("unknown type %q", string(s.Kind)),
			Wrapped:  ErrInvalidVariableKind,
		}
	}

	switch s.Kind {
	case KindChoices:
		if len(s.Choices) == 0 {
			return &ValidationError{
				Variable: s.Name,
				Message:  "type choices requires a non-empty choices list",
			}
		}
		if s.Default != nil && !slices.Contains(s.Choices, *s.Default) {
			return &ValidationError{
				Variable: s.Name,
				Message:  fmt.Sprintf("default %q is not one of the declared choices", *s.Default),
			}
		}
	case KindBool:
		if len(s.Choices) > 0 {
			return &ValidationError{
				Variable: s.Name,
				Message:  "choices are only allowed for type choices",
			}
		}
		if s.Default != nil && !IsBoolLiteral(*s.Default) {
			return &ValidationError{
				Variable: s.Name,
				Message:  fmt.Sprintf("default %q is not a boolean literal", *s.Default),
			}
		}
	case KindString:
		if len(s.Choices) > 0 {
			return &ValidationError{
				Variable: s.Name,
				Message:  "choices are only allowed for type choices",
			}
		}
	}

	return nil
}

// Validate checks every declared variable.
func (c *TemplateConfig) Validate() error {
	for i := range c.Variables {
		if err := c.Variables[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
