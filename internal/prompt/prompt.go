// Package prompt collects variable values interactively using huh forms.
package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/k88hudson/hayaku/internal/config"
)

// ErrCancelled is returned when the user aborts a prompt (Ctrl+C / Esc).
var ErrCancelled = errors.New("prompt: cancelled by user")

// Prompter asks the user for variable values one question at a time.
// It satisfies template.Prompter.
type Prompter struct {
	theme      *huh.Theme
	accessible bool
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithAccessible enables huh's accessible mode (plain line-based prompts).
func WithAccessible(on bool) Option {
	return func(p *Prompter) { p.accessible = on }
}

// New creates a Prompter with the hayaku theme.
func New(opts ...Option) *Prompter {
	p := &Prompter{theme: newTheme()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ask prompts for a single variable value according to its kind. Bool
// answers are returned as "true"/"false", choices as the selected option.
func (p *Prompter) Ask(spec config.VariableSpec) (string, error) {
	title := spec.Prompt
	if title == "" {
		title = spec.Name
	}

	switch spec.Kind {
	case config.KindBool:
		def := spec.Default != nil && strings.EqualFold(*spec.Default, "true")
		confirmed := def
		field := huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed)
		if err := p.run(field); err != nil {
			return "", err
		}
		return strconv.FormatBool(confirmed), nil

	case config.KindChoices:
		var selected string
		if spec.Default != nil {
			selected = *spec.Default
		}
		field := huh.NewSelect[string]().
			Title(title).
			Options(huh.NewOptions(spec.Choices...)...).
			Value(&selected)
		if err := p.run(field); err != nil {
			return "", err
		}
		return selected, nil

	default:
		var value string
		field := huh.NewInput().Title(title).Value(&value)
		if spec.Default != nil {
			field = field.Placeholder(*spec.Default)
		}
		if err := p.run(field); err != nil {
			return "", err
		}
		if value == "" && spec.Default != nil {
			return *spec.Default, nil
		}
		return value, nil
	}
}

// Confirm asks a yes/no question outside of variable resolution, such as
// the overwrite check before --force removes a destination.
func (p *Prompter) Confirm(title string, def bool) (bool, error) {
	confirmed := def
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)
	if err := p.run(field); err != nil {
		return false, err
	}
	return confirmed, nil
}

// Input asks for a free-form string with optional validation.
func (p *Prompter) Input(title, placeholder string, validate func(string) error) (string, error) {
	var value string
	field := huh.NewInput().Title(title).Placeholder(placeholder).Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}
	if err := p.run(field); err != nil {
		return "", err
	}
	return value, nil
}

// Select asks the user to pick one of the given label/value pairs.
func (p *Prompter) Select(title string, options []huh.Option[string]) (string, error) {
	var selected string
	field := huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(&selected)
	if err := p.run(field); err != nil {
		return "", err
	}
	return selected, nil
}

func (p *Prompter) run(field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(p.theme).
		WithAccessible(p.accessible).
		WithShowHelp(false)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}
