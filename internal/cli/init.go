package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/k88hudson/hayaku/internal/config"
	"github.com/k88hudson/hayaku/internal/defs"
	"github.com/k88hudson/hayaku/internal/registry"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the hayaku directory",
	Long: `Initialize the hayaku directory (~/.hayaku, or $HAYAKU_DIRECTORY when
set) with an empty templates directory and a default settings.yaml.
Existing files are left untouched.`,
	RunE: runHayakuInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runHayakuInit(cmd *cobra.Command, _ []string) error {
	dir, err := registry.DefaultDir()
	if err != nil {
		return err
	}
	return initHayakuDir(cmd, dir)
}

// initHayakuDir bootstraps the given hayaku directory.
func initHayakuDir(cmd *cobra.Command, dir string) error {
	out := cmd.OutOrStdout()

	templateDir := filepath.Join(dir, defs.TemplatesDirName)
	if err := os.MkdirAll(templateDir, 0o755); err != nil {
		return fmt.Errorf("create template directory %q: %w", templateDir, err)
	}

	settingsPath := filepath.Join(dir, defs.SettingsFile)
	wroteSettings := false
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		if err := config.DefaultSettings().Write(settingsPath); err != nil {
			return fmt.Errorf("write settings: %w", err)
		}
		wroteSettings = true
	}

	pairs := []kvPair{
		{"Templates", templateDir},
	}
	if wroteSettings {
		pairs = append(pairs, kvPair{"Settings", settingsPath})
	} else {
		pairs = append(pairs, kvPair{"Settings", settingsPath + " (kept)"})
	}
	_, _ = fmt.Fprintln(out, renderSuccessCard("hayaku directory ready", renderKeyValueLines(pairs)))

	return nil
}
