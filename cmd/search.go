package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kamusis/smartfind/internal/config"
	"github.com/kamusis/smartfind/internal/search"
	"github.com/kamusis/smartfind/internal/search/index"
	"github.com/spf13/cobra"
)

// Queries shorter than this are answered with [] without touching the index.
const minQueryLength = 2

var (
	flagLimit   int
	flagTimeout time.Duration
	flagFormat  string
	flagStdin   bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search the index and print ranked results as JSON",
	Long: `Search runs the query against the file index scoped to include_directories,
filters exclude_patterns / exclude_filenames, ranks the survivors and prints at
most 20 of them. Any failure along the way prints [] and exits 0.

Put -- before a query that starts with a dash.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	addSearchFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}

func addSearchFlags(c *cobra.Command) {
	c.Flags().IntVar(&flagLimit, "limit", config.MaxLimit, "Maximum number of results (at most 20)")
	c.Flags().DurationVar(&flagTimeout, "timeout", config.DefaultTimeout, "How long to wait for the index tool")
	c.Flags().StringVar(&flagFormat, "format", "json", "Output format: json or text")
	c.Flags().BoolVar(&flagStdin, "stdin", false, "Read candidate paths from stdin instead of running the index tool")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if flagFormat != "json" && flagFormat != "text" {
		return fmt.Errorf("unknown --format %q (want json or text)", flagFormat)
	}
	logger := newLogger(cmd.ErrOrStderr(), flagDebug)

	query := strings.TrimSpace(strings.Join(args, " "))
	if utf8.RuneCountInString(query) < minQueryLength {
		logger.Debug("query too short, skipping index", "query", query)
		return writeResults(cmd, nil)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	applySearchFlags(cmd, cfg)
	logger.Debug("config loaded", "source", emptyAsNA(cfg.Source), "dirs", cfg.IncludeDirectories,
		"timeout", cfg.TimeoutDuration(), "limit", cfg.Limit)

	provider, err := newProvider(cmd, cfg, logger)
	if err != nil {
		logger.Debug("no index provider", "err", err)
		return writeResults(cmd, nil)
	}

	out := search.Search(cmd.Context(), provider, query, cfg, search.WithLogger(logger))
	if out.Status != search.StatusOK {
		logger.Debug("empty result", "status", out.Status, "candidates", out.Candidates, "err", out.Err)
	}
	return writeResults(cmd, out.Results)
}

func applySearchFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("limit") {
		cfg.Limit = min(max(flagLimit, 1), config.MaxLimit)
	}
	if cmd.Flags().Changed("timeout") {
		cfg.SetTimeout(flagTimeout)
	}
}

func newProvider(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (search.Provider, error) {
	if flagStdin {
		return index.ReadLines(cmd.InOrStdin())
	}
	return index.NewMdfind(cfg.IndexTool, logger), nil
}

func writeResults(cmd *cobra.Command, results []search.Result) error {
	if flagFormat == "text" {
		return search.WriteText(cmd.OutOrStdout(), results)
	}
	return search.WriteJSON(cmd.OutOrStdout(), results)
}
