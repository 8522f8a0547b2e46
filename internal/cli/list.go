package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/k88hudson/hayaku/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	Long: `List every template hayaku can generate from: the builtin set first,
then local templates from the hayaku directory. A local template with
the same name as a builtin one replaces it.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	reg, err := registry.New()
	if err != nil {
		return fmt.Errorf("open template registry: %w", err)
	}

	out := cmd.OutOrStdout()
	all := reg.All()
	if len(all) == 0 {
		_, _ = fmt.Fprintln(out, "No templates found.")
		return nil
	}

	for _, t := range all {
		origin := cliMuted.Render("(" + string(t.Origin) + ")")
		line := fmt.Sprintf("%s %s", cliPrimary.Render(t.Config.Name), origin)
		if t.Config.Description != "" {
			line += "\n  " + cliMuted.Render(t.Config.Description)
		}
		_, _ = fmt.Fprintln(out, line)
	}

	return nil
}
