package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set through -ldflags at release time.
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show smartfind version and build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	adminCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "smartfind %s\n", version)
	fmt.Fprintf(w, "  commit:     %s\n", emptyAsNA(commit))
	fmt.Fprintf(w, "  built:      %s\n", emptyAsNA(buildDate))
	fmt.Fprintf(w, "  go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}

func emptyAsNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
