package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Open a search result with its default application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOpen(cmd, args[0], false)
	},
}

var revealCmd = &cobra.Command{
	Use:   "reveal <path>",
	Short: "Show a search result in its containing folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOpen(cmd, args[0], true)
	},
}

func init() {
	adminCmd.AddCommand(openCmd)
	adminCmd.AddCommand(revealCmd)
}

// openerCommand returns the file-manager invocation for goos.
func openerCommand(goos, path string, reveal bool) (string, []string) {
	switch goos {
	case "darwin":
		if reveal {
			return "open", []string{"-R", path}
		}
		return "open", []string{path}
	case "windows":
		if reveal {
			return "explorer", []string{"/select," + path}
		}
		return "cmd", []string{"/c", "start", "", path}
	default:
		if reveal {
			return "xdg-open", []string{filepath.Dir(path)}
		}
		return "xdg-open", []string{path}
	}
}

func runOpen(cmd *cobra.Command, path string, reveal bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		printErr(cmd.ErrOrStderr(), "", fmt.Sprintf("cannot open %s: %v", abs, err))
		return fmt.Errorf("no such file: %s", abs)
	}

	name, args := openerCommand(runtime.GOOS, abs, reveal)
	c := exec.CommandContext(cmd.Context(), name, args...)
	c.Stderr = cmd.ErrOrStderr()
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}
