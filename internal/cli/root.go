// Package cli wires the hayaku commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/k88hudson/hayaku/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "hayaku",
	Short: "hayaku: fast project scaffolding from templates",
	Long: `hayaku creates new projects from templates.

A template is a directory tree with an optional hayaku.yaml describing
the variables it needs. File contents are rendered with Go templates,
[NAME] tokens in paths are substituted with resolved values, and the
result is written to the destination directory.

Templates come from three places: the builtin set shipped with the
binary, local templates under ~/.hayaku/templates, and GitHub
repositories cloned on demand.`,
	Version: version.GetVersion(),
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("hayaku %s\n", version.GetVersion()))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		level := slog.LevelWarn
		if getBoolFlag(cmd, "verbose") {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	}
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// getStringSliceFlag retrieves a repeatable string flag value.
func getStringSliceFlag(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringArray(name)
	if err != nil {
		return nil
	}
	return val
}
