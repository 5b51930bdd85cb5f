package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/kamusis/smartfind/internal/config"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the index tool, config and include directories",
	Long: `Check that smartfind's environment is usable. Run this when every search
comes back empty: search itself never reports why.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	adminCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	allOK := true
	failD := func(format string, args ...any) {
		printErr(errOut, "", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection(out, "smartfind doctor")

	// ── Config ───────────────────────────────────────────────────────────────
	fmt.Fprintln(out, "\n[ config ]")
	cfg, err := config.Load(flagConfig)
	switch {
	case err != nil:
		failD("cannot load config: %v", err)
	case cfg.Source == "":
		printWarn(out, "", "no config file found, using built-in defaults (run 'smartfind admin init')")
	default:
		printOK(out, "", fmt.Sprintf("loaded %s", cfg.Source))
	}
	if cfg == nil {
		fmt.Fprintln(out, "\n===================")
		return errors.New("doctor found issues")
	}

	// ── Index tool ───────────────────────────────────────────────────────────
	fmt.Fprintln(out, "\n[ index tool ]")
	if p, err := exec.LookPath(cfg.IndexTool); err != nil {
		failD("%s not found on PATH; every search will return []", cfg.IndexTool)
	} else {
		printOK(out, "", p)
	}

	// ── Include directories ──────────────────────────────────────────────────
	fmt.Fprintln(out, "\n[ include directories ]")
	found := 0
	for _, d := range cfg.IncludeDirectories {
		info, err := os.Stat(d)
		switch {
		case err != nil:
			printMiss(out, "", fmt.Sprintf("%s (skipped at search time)", d))
		case !info.IsDir():
			printWarn(out, "", fmt.Sprintf("%s is not a directory", d))
		default:
			printOK(out, "", d)
			found++
		}
	}
	if found == 0 {
		failD("none of the include directories exist")
	}

	// ── Exclusions ───────────────────────────────────────────────────────────
	fmt.Fprintln(out, "\n[ exclusions ]")
	printOK(out, "", fmt.Sprintf("%d path pattern(s), %d filename pattern(s)",
		len(cfg.ExcludePatterns), len(cfg.ExcludeFilenames)))

	fmt.Fprintln(out, "\n===================")
	if !allOK {
		fmt.Fprintln(errOut, "✗  One or more checks failed. See details above.")
		return errors.New("doctor found issues")
	}
	fmt.Fprintln(out, "✓  All checks passed.")
	return nil
}
