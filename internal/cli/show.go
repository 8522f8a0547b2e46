package cli

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/k88hudson/hayaku/internal/config"
	"github.com/k88hudson/hayaku/internal/defs"
	"github.com/k88hudson/hayaku/internal/registry"
)

var showCmd = &cobra.Command{
	Use:   "show <template>",
	Short: "Show a template's metadata and variables",
	Long: `Show a template's metadata, the variables it asks for, and its README
if it ships one.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	reg, err := registry.New()
	if err != nil {
		return fmt.Errorf("open template registry: %w", err)
	}

	tmpl, ok := reg.Get(args[0])
	if !ok {
		return fmt.Errorf("template %q not found; run \"hayaku list\" to see available templates", args[0])
	}

	out := cmd.OutOrStdout()

	pairs := []kvPair{
		{"Name", tmpl.Config.Name},
		{"Origin", string(tmpl.Origin)},
	}
	if tmpl.Config.Description != "" {
		pairs = append(pairs, kvPair{"Description", tmpl.Config.Description})
	}
	if tmpl.Config.Author != "" {
		pairs = append(pairs, kvPair{"Author", tmpl.Config.Author})
	}
	if tmpl.Path != "" {
		pairs = append(pairs, kvPair{"Path", tmpl.Path})
	}
	_, _ = fmt.Fprintln(out, renderCard(tmpl.Config.Title(), renderKeyValueLines(pairs)))

	if len(tmpl.Config.Variables) > 0 {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, cliPrimary.Bold(true).Render("Variables"))
		for _, spec := range tmpl.Config.Variables {
			_, _ = fmt.Fprintln(out, "  "+describeVariable(spec))
		}
	}

	if md, ok := templateReadme(tmpl.FS()); ok {
		rendered, err := renderMarkdown(md)
		if err != nil {
			// Fall back to the raw markdown rather than failing the command.
			rendered = md
		}
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprint(out, rendered)
	}

	return nil
}

// describeVariable formats one variable line for the show output.
func describeVariable(spec config.VariableSpec) string {
	line := cliSuccess.Render(spec.Name) + " " + cliMuted.Render(string(spec.Kind))
	if spec.Kind == config.KindChoices {
		line += " " + cliMuted.Render("["+strings.Join(spec.Choices, ", ")+"]")
	}
	if spec.Default != nil {
		line += fmt.Sprintf(" (default: %s)", *spec.Default)
	}
	return line
}

// templateReadme returns the template's README contents, preferring a
// plain README.md over a templated one.
func templateReadme(fsys fs.FS) (string, bool) {
	for _, name := range []string{"README.md", "README.md" + defs.TemplateSuffix} {
		raw, err := fs.ReadFile(fsys, name)
		if err == nil {
			return string(raw), true
		}
	}
	return "", false
}

// renderMarkdown renders markdown for the terminal.
func renderMarkdown(md string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}
