package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:          "smartfind <query...>",
	Short:        "Scoped, ranked file search on top of the Spotlight index",
	SilenceUsage: true, // don't print usage on operational errors
	Long: heredoc.Doc(`
		Smartfind asks the system file index (mdfind) for files matching a query,
		limited to your chosen directories, drops noise such as node_modules or
		.DS_Store, and prints the best 20 hits as JSON, ranked by index relevance
		and how recently each file was modified.

		Everything after "smartfind" is the query, even words that look like
		commands or flags. Use "smartfind search [flags] <query...>" to pass flags
		and "smartfind admin <command>" for setup.

		Configuration lives in ~/.smartfind/config.yaml (run 'smartfind admin init').`),
	Example: heredoc.Doc(`
		smartfind quarterly report
		smartfind search --format text invoice
		mdfind -name .pdf | smartfind search --stdin pdf
		smartfind admin doctor`),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.smartfind/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log diagnostics to stderr")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// routeArgs turns a bare command line into a search. Only a line of two or
// more arguments led by "search" or "admin" reaches cobra's subcommand and
// flag parsing; anything else, including a single word, is the query.
func routeArgs(args []string) []string {
	if len(args) > 1 && (args[0] == searchCmd.Name() || args[0] == adminCmd.Name()) {
		return args
	}
	return append([]string{searchCmd.Name(), "--"}, args...)
}

// Execute is called by main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	rootCmd.SetArgs(routeArgs(os.Args[1:]))
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
