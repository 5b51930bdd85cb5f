package cmd

import "github.com/spf13/cobra"

// adminCmd groups everything that is not a search, so that a bare
// `smartfind <word>` is always a query.
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Set up and inspect smartfind (init, doctor, open, reveal, version)",
	Args:  cobra.NoArgs,
}

func init() {
	rootCmd.AddCommand(adminCmd)
}
