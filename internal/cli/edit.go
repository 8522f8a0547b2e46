package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/k88hudson/hayaku/internal/defs"
	"github.com/k88hudson/hayaku/internal/registry"
)

// defaultEditor is used when $EDITOR is unset.
const defaultEditor = "code"

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the hayaku directory in your editor",
	Long: `Open the hayaku directory in $EDITOR (falling back to "code") to edit
local templates and settings.`,
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, _ []string) error {
	dir, err := registry.DefaultDir()
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist; run \"hayaku init\" first", dir)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	editor := editorCommand()
	c := exec.CommandContext(ctx, editor, dir)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("run editor %q: %w", editor, err)
	}
	return nil
}

// editorCommand resolves the editor binary to launch.
func editorCommand() string {
	if editor := os.Getenv(defs.EnvEditor); editor != "" {
		return editor
	}
	return defaultEditor
}
