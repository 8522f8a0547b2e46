package template

import (
	"errors"
	"testing"

	"github.com/k88hudson/hayaku/internal/config"
)

func strPtr(s string) *string { return &s }

// fakePrompter answers every Ask from a fixed map and records the order
// variables were asked in.
type fakePrompter struct {
	answers map[string]string
	asked   []string
}

func (p *fakePrompter) Ask(spec config.VariableSpec) (string, error) {
	p.asked = append(p.asked, spec.Name)
	return p.answers[spec.Name], nil
}

func TestResolvePrecedence(t *testing.T) {
	specs := config.VariableSpecs{
		{Name: "author", Kind: config.KindString, Default: strPtr("schema-default")},
	}

	t.Run("answer_wins_over_global_and_default", func(t *testing.T) {
		ctx, err := Resolve(specs, ResolveOptions{
			ProjectName: "demo",
			Answers:     map[string]string{"author": "from-answer"},
			GlobalEnv:   map[string]string{"author": "from-global"},
		})
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if got, _ := ctx.Lookup("AUTHOR"); got != "from-answer" {
			t.Errorf("AUTHOR = %q, want from-answer", got)
		}
	})

	t.Run("global_shadows_schema_default", func(t *testing.T) {
		ctx, err := Resolve(specs, ResolveOptions{
			ProjectName: "demo",
			GlobalEnv:   map[string]string{"author": "from-global"},
		})
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if got, _ := ctx.Lookup("AUTHOR"); got != "from-global" {
			t.Errorf("AUTHOR = %q, want from-global", got)
		}
	})

	t.Run("schema_default_when_nothing_else", func(t *testing.T) {
		ctx, err := Resolve(specs, ResolveOptions{ProjectName: "demo"})
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if got, _ := ctx.Lookup("AUTHOR"); got != "schema-default" {
			t.Errorf("AUTHOR = %q, want schema-default", got)
		}
	})

	t.Run("answer_matches_by_canonical_key", func(t *testing.T) {
		ctx, err := Resolve(specs, ResolveOptions{
			ProjectName: "demo",
			Answers:     map[string]string{"AUTHOR": "canonical-answer"},
		})
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if got, _ := ctx.Lookup("AUTHOR"); got != "canonical-answer" {
			t.Errorf("AUTHOR = %q, want canonical-answer", got)
		}
	})

	t.Run("exact_key_beats_canonical_aliases", func(t *testing.T) {
		ctx, err := Resolve(specs, ResolveOptions{
			ProjectName: "demo",
			Answers: map[string]string{
				"author": "exact",
				"AUTHOR": "canonical",
			},
		})
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if got, _ := ctx.Lookup("AUTHOR"); got != "exact" {
			t.Errorf("AUTHOR = %q, want exact", got)
		}
	})

	t.Run("canonical_alias_tie_break_is_deterministic", func(t *testing.T) {
		// Neither key is the declared spelling; the lexicographically
		// smallest key wins so repeated runs agree.
		for range 20 {
			ctx, err := Resolve(specs, ResolveOptions{
				ProjectName: "demo",
				Answers: map[string]string{
					"Author": "title-case",
					"AUTHOR": "upper-case",
				},
			})
			if err != nil {
				t.Fatalf("Resolve error: %v", err)
			}
			if got, _ := ctx.Lookup("AUTHOR"); got != "upper-case" {
				t.Fatalf("AUTHOR = %q, want upper-case", got)
			}
		}
	})
}

func TestResolveBuiltInProjectName(t *testing.T) {
	t.Run("injected_from_destination", func(t *testing.T) {
		ctx, err := Resolve(nil, ResolveOptions{ProjectName: "my-app"})
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if got := ctx.ProjectName(); got != "my-app" {
			t.Errorf("PROJECT_NAME = %q, want my-app", got)
		}
		if got, _ := ctx.Lookup("project_name"); got != "my-app" {
			t.Errorf("project_name = %q, want my-app", got)
		}
	})

	t.Run("declared_spec_of_same_name_is_ignored", func(t *testing.T) {
		specs := config.VariableSpecs{
			{Name: "project_name", Kind: config.KindString, Default: strPtr("shadowed")},
		}
		prompter := &fakePrompter{answers: map[string]string{}}

		ctx, err := Resolve(specs, ResolveOptions{ProjectName: "real-name", Prompter: prompter})
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if got := ctx.ProjectName(); got != "real-name" {
			t.Errorf("PROJECT_NAME = %q, want real-name", got)
		}
		if len(prompter.asked) != 0 {
			t.Errorf("built-in variable should never prompt, asked: %v", prompter.asked)
		}
	})

	t.Run("answer_override_is_honored", func(t *testing.T) {
		ctx, err := Resolve(nil, ResolveOptions{
			ProjectName: "dir-name",
			Answers:     map[string]string{"PROJECT_NAME": "explicit"},
		})
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if got := ctx.ProjectName(); got != "explicit" {
			t.Errorf("PROJECT_NAME = %q, want explicit", got)
		}
	})

	t.Run("template_name_exposed", func(t *testing.T) {
		ctx, err := Resolve(nil, ResolveOptions{ProjectName: "demo", TemplateName: "rust-cli"})
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if got, _ := ctx.Lookup("TEMPLATE_NAME"); got != "rust-cli" {
			t.Errorf("TEMPLATE_NAME = %q, want rust-cli", got)
		}
	})
}

func TestResolveValidation(t *testing.T) {
	t.Run("bool_rejects_non_literal", func(t *testing.T) {
		specs := config.VariableSpecs{
			{Name: "use_git", Kind: config.KindBool},
		}
		_, err := Resolve(specs, ResolveOptions{
			ProjectName: "demo",
			Answers:     map[string]string{"use_git": "yes"},
		})
		if !errors.Is(err, ErrInvalidValue) {
			t.Fatalf("expected ErrInvalidValue, got: %v", err)
		}

		var resErr *ResolutionError
		if !errors.As(err, &resErr) {
			t.Fatalf("expected *ResolutionError, got %T", err)
		}
		if resErr.Variable != "use_git" {
			t.Errorf("error names variable %q, want use_git", resErr.Variable)
		}
	})

	t.Run("bool_accepts_case_insensitive_literals", func(t *testing.T) {
		specs := config.VariableSpecs{
			{Name: "use_git", Kind: config.KindBool},
		}
		ctx, err := Resolve(specs, ResolveOptions{
			ProjectName: "demo",
			Answers:     map[string]string{"use_git": "False"},
		})
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if got, _ := ctx.Lookup("USE_GIT"); got != "False" {
			t.Errorf("USE_GIT = %q, want False", got)
		}
	})

	t.Run("choices_rejects_non_member", func(t *testing.T) {
		specs := config.VariableSpecs{
			{Name: "crate_type", Kind: config.KindChoices, Choices: []string{"lib", "bin"}},
		}
		_, err := Resolve(specs, ResolveOptions{
			ProjectName: "demo",
			Answers:     map[string]string{"crate_type": "exe"},
		})
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue, got: %v", err)
		}
	})

	t.Run("choices_requires_exact_match", func(t *testing.T) {
		specs := config.VariableSpecs{
			{Name: "crate_type", Kind: config.KindChoices, Choices: []string{"lib", "bin"}},
		}
		_, err := Resolve(specs, ResolveOptions{
			ProjectName: "demo",
			Answers:     map[string]string{"crate_type": "Bin"},
		})
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue for case mismatch, got: %v", err)
		}
	})

	t.Run("invalid_global_value_is_rejected_too", func(t *testing.T) {
		specs := config.VariableSpecs{
			{Name: "use_git", Kind: config.KindBool, Default: strPtr("true")},
		}
		_, err := Resolve(specs, ResolveOptions{
			ProjectName: "demo",
			GlobalEnv:   map[string]string{"use_git": "maybe"},
		})
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue, got: %v", err)
		}
	})
}

func TestResolveNonInteractive(t *testing.T) {
	specs := config.VariableSpecs{
		{Name: "author", Kind: config.KindString, Prompt: "Author name"},
	}

	_, err := Resolve(specs, ResolveOptions{ProjectName: "demo"})
	if !errors.Is(err, ErrUnresolvedVariable) {
		t.Fatalf("expected ErrUnresolvedVariable, got: %v", err)
	}

	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected *ResolutionError, got %T", err)
	}
	if resErr.Variable != "author" {
		t.Errorf("error names variable %q, want author", resErr.Variable)
	}
}

func TestResolvePrompting(t *testing.T) {
	t.Run("prompts_in_declared_order", func(t *testing.T) {
		specs := config.VariableSpecs{
			{Name: "zeta", Kind: config.KindString},
			{Name: "alpha", Kind: config.KindString},
		}
		prompter := &fakePrompter{answers: map[string]string{"zeta": "z", "alpha": "a"}}

		ctx, err := Resolve(specs, ResolveOptions{ProjectName: "demo", Prompter: prompter})
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if got, _ := ctx.Lookup("ZETA"); got != "z" {
			t.Errorf("ZETA = %q, want z", got)
		}
		if len(prompter.asked) != 2 || prompter.asked[0] != "zeta" || prompter.asked[1] != "alpha" {
			t.Errorf("asked order = %v, want [zeta alpha]", prompter.asked)
		}
	})

	t.Run("resolved_variables_are_not_prompted", func(t *testing.T) {
		specs := config.VariableSpecs{
			{Name: "author", Kind: config.KindString, Default: strPtr("k88")},
			{Name: "license", Kind: config.KindString},
		}
		prompter := &fakePrompter{answers: map[string]string{"license": "MIT"}}

		_, err := Resolve(specs, ResolveOptions{ProjectName: "demo", Prompter: prompter})
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if len(prompter.asked) != 1 || prompter.asked[0] != "license" {
			t.Errorf("asked = %v, want [license]", prompter.asked)
		}
	})

	t.Run("prompted_value_is_validated", func(t *testing.T) {
		specs := config.VariableSpecs{
			{Name: "crate_type", Kind: config.KindChoices, Choices: []string{"lib", "bin"}},
		}
		prompter := &fakePrompter{answers: map[string]string{"crate_type": "exe"}}

		_, err := Resolve(specs, ResolveOptions{ProjectName: "demo", Prompter: prompter})
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue, got: %v", err)
		}
	})
}
