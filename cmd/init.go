package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/kamusis/smartfind/internal/config"
	"github.com/spf13/cobra"
)

var flagInitForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config to ~/.smartfind/config.yaml",
	Long: heredoc.Doc(`
		Write a starter configuration: the default include directories plus
		exclusions for dependency folders, app bundles and OS clutter.

		An existing file is left alone unless --force is given. Use --config
		to write somewhere else.`),
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&flagInitForce, "force", false, "Overwrite an existing config file")
	adminCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	path := flagConfig
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return err
		}
		path = p
	} else {
		p, err := config.ExpandPath(path)
		if err != nil {
			return err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil && !flagInitForce {
		printSkip(out, "", fmt.Sprintf("config already exists: %s (use --force to overwrite)", path))
		return nil
	}

	cfg := config.StarterConfig()
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	printOK(out, "", fmt.Sprintf("config written: %s", path))
	printInfo(out, "", "include_directories: "+strings.Join(cfg.IncludeDirectories, ", "))
	printInfo(out, "", fmt.Sprintf("%d path pattern(s), %d filename pattern(s) excluded",
		len(cfg.ExcludePatterns), len(cfg.ExcludeFilenames)))
	return nil
}
