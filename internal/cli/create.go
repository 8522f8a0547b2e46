package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/k88hudson/hayaku/internal/git"
	"github.com/k88hudson/hayaku/internal/prompt"
	"github.com/k88hudson/hayaku/internal/registry"
	"github.com/k88hudson/hayaku/internal/template"
	"github.com/k88hudson/hayaku/internal/ui"
)

var createCmd = &cobra.Command{
	Use:   "create [project-path]",
	Short: "Create a new project from a template",
	Long: `Create a new project from a template.

The destination directory name becomes the project name and is injected
into the template as PROJECT_NAME. Template variables are resolved from
--env answers, the global_env section of settings.yaml, and template
defaults; anything still missing is prompted for interactively.

Examples:
  hayaku create my-app -t go-cli
  hayaku create my-app --template-dir ./my-template
  hayaku create my-app -g k88hudson/rust-templates -e AUTHOR=kate
  hayaku create my-app -t go-cli --non-interactive -e MODULE=example.com/my-app`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validateCreateFlags,
	RunE:    runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringP("project-path", "p", "", "Destination directory (default: positional argument)")
	createCmd.Flags().StringP("template", "t", "", "Name of a builtin or local template")
	createCmd.Flags().String("template-dir", "", "Use an arbitrary directory as the template")
	createCmd.Flags().StringP("github", "g", "", "Clone a GitHub repository (owner/name) as the template")
	createCmd.Flags().StringArrayP("env", "e", nil, "Answer a template variable as KEY=VALUE (repeatable)")
	createCmd.Flags().Bool("non-interactive", false, "Never prompt; fail on unresolved variables")
	createCmd.Flags().BoolP("force", "f", false, "Remove the destination directory if it already exists")
}

// validateCreateFlags checks flag values before execution.
func validateCreateFlags(cmd *cobra.Command, _ []string) error {
	sources := 0
	for _, name := range []string{"template", "template-dir", "github"} {
		if getStringFlag(cmd, name) != "" {
			sources++
		}
	}
	if sources > 1 {
		return fmt.Errorf("--template, --template-dir and --github are mutually exclusive")
	}

	if repo := getStringFlag(cmd, "github"); repo != "" {
		if _, err := git.CloneURL(repo); err != nil {
			return err
		}
	}

	for _, pair := range getStringSliceFlag(cmd, "env") {
		if _, _, ok := strings.Cut(pair, "="); !ok {
			return fmt.Errorf("invalid --env value %q: must be KEY=VALUE", pair)
		}
	}

	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	interactive := !getBoolFlag(cmd, "non-interactive") && isatty.IsTerminal(os.Stdin.Fd())
	prompter := prompt.New()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dest, err := resolveDestination(cmd, args, interactive, prompter)
	if err != nil {
		return cancelledOrErr(cmd, err)
	}

	projectName, err := template.ProjectNameFromPath(dest)
	if err != nil {
		return err
	}

	reg, err := registry.New()
	if err != nil {
		return fmt.Errorf("open template registry: %w", err)
	}

	tmpl, cleanup, err := selectTemplate(ctx, cmd, reg, interactive, prompter)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return cancelledOrErr(cmd, err)
	}

	settings, err := reg.Settings()
	if err != nil {
		return err
	}

	answers := parseEnvAnswers(getStringSliceFlag(cmd, "env"))

	opts := template.ResolveOptions{
		ProjectName:  projectName,
		TemplateName: tmpl.Config.Name,
		Answers:      answers,
		GlobalEnv:    settings.GlobalEnv,
	}
	if interactive {
		opts.Prompter = prompter
	}

	rctx, err := template.Resolve(tmpl.Config.Variables, opts)
	if err != nil {
		return cancelledOrErr(cmd, err)
	}

	if err := clearDestination(cmd, dest, interactive, prompter); err != nil {
		return cancelledOrErr(cmd, err)
	}

	walker := template.NewWalker(tmpl.FS(), template.NewRenderer())
	walker.Force = getBoolFlag(cmd, "force")
	walker.OnFile = func(rel string) {
		_, _ = fmt.Fprintln(out, cliMuted.Render("=> "+rel))
	}

	report, err := walker.Generate(ctx, dest, rctx)
	if err != nil {
		if report.FilesWritten > 0 || report.DirsCreated > 0 {
			_, _ = fmt.Fprintln(out, cliWarn.Render(fmt.Sprintf(
				"Generation aborted; %d files and %d directories were already written to %s",
				report.FilesWritten, report.DirsCreated, dest)))
		}
		return fmt.Errorf("generate project: %w", err)
	}

	details := []string{
		renderKeyValueLines([]kvPair{
			{"Template", tmpl.Config.Title()},
			{"Path", dest},
			{"Files", fmt.Sprintf("%d written", report.FilesWritten)},
			{"Directories", fmt.Sprintf("%d created", report.DirsCreated)},
		}),
	}
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, renderSuccessCard("Project "+projectName+" created", details...))

	return nil
}

// resolveDestination determines the destination directory from the
// positional argument, --project-path, or an interactive prompt.
func resolveDestination(cmd *cobra.Command, args []string, interactive bool, prompter *prompt.Prompter) (string, error) {
	dest := getStringFlag(cmd, "project-path")
	if dest == "" && len(args) > 0 {
		dest = args[0]
	}
	if dest == "" {
		if !interactive {
			return "", fmt.Errorf("no destination: pass a project path or --project-path")
		}
		answered, err := prompter.Input("Where should the project be created?", "my-app", func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("a project path is required")
			}
			return nil
		})
		if err != nil {
			return "", err
		}
		dest = answered
	}
	return filepath.Abs(dest)
}

// selectTemplate resolves the template source from flags, falling back
// to an interactive picker. The returned cleanup removes any temporary
// clone directory and may be non-nil even on error.
func selectTemplate(ctx context.Context, cmd *cobra.Command, reg *registry.Registry, interactive bool, prompter *prompt.Prompter) (*registry.Template, func(), error) {
	if dir := getStringFlag(cmd, "template-dir"); dir != "" {
		tmpl, err := registry.LoadFromDir(dir)
		return tmpl, nil, err
	}

	if repo := getStringFlag(cmd, "github"); repo != "" {
		tmp, err := os.MkdirTemp("", "hayaku-clone-*")
		if err != nil {
			return nil, nil, fmt.Errorf("create clone directory: %w", err)
		}
		cleanup := func() { _ = os.RemoveAll(tmp) }

		spin := ui.NewSpinner("Cloning " + repo)
		err = git.Clone(ctx, repo, tmp)
		spin.Stop()
		if err != nil {
			return nil, cleanup, err
		}

		tmpl, err := registry.LoadFromDir(tmp)
		return tmpl, cleanup, err
	}

	if name := getStringFlag(cmd, "template"); name != "" {
		tmpl, ok := reg.Get(name)
		if !ok {
			return nil, nil, fmt.Errorf("template %q not found; run \"hayaku list\" to see available templates", name)
		}
		return tmpl, nil, nil
	}

	if !interactive {
		return nil, nil, fmt.Errorf("no template: pass --template, --template-dir or --github")
	}

	all := reg.All()
	options := make([]huh.Option[string], 0, len(all))
	for _, t := range all {
		label := t.Config.Title()
		if t.Origin == registry.OriginLocal {
			label += " (local)"
		}
		options = append(options, huh.NewOption(label, t.Config.Name))
	}
	name, err := prompter.Select("Which template?", options)
	if err != nil {
		return nil, nil, err
	}
	tmpl, ok := reg.Get(name)
	if !ok {
		return nil, nil, fmt.Errorf("template %q not found", name)
	}
	return tmpl, nil, nil
}

// clearDestination removes a non-empty destination when --force is set
// or the user confirms; otherwise the walker reports the conflict.
func clearDestination(cmd *cobra.Command, dest string, interactive bool, prompter *prompt.Prompter) error {
	entries, err := os.ReadDir(dest)
	if err != nil || len(entries) == 0 {
		return nil
	}

	remove := getBoolFlag(cmd, "force")
	if !remove && interactive {
		confirmed, err := prompter.Confirm(fmt.Sprintf("%s is not empty. Remove it and continue?", dest), false)
		if err != nil {
			return err
		}
		remove = confirmed
	}
	if !remove {
		return fmt.Errorf("%w: %s is not empty (use --force to overwrite)", template.ErrDestinationConflict, dest)
	}

	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("remove destination %s: %w", dest, err)
	}
	return nil
}

// parseEnvAnswers turns KEY=VALUE pairs into an answer map. Later
// pairs override earlier ones.
func parseEnvAnswers(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	answers := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}
		answers[key] = value
	}
	return answers
}

// cancelledOrErr maps a user abort to a friendly message and nil error.
func cancelledOrErr(cmd *cobra.Command, err error) error {
	if errors.Is(err, prompt.ErrCancelled) {
		_, _ = fmt.Fprintln(cmd.OutOrStderr(), "Cancelled.")
		return nil
	}
	return err
}
