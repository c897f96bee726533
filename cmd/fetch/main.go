// Command fetch refreshes the maintainer dashboard's static data files: it
// pulls repository health signals from the GitHub GraphQL API, computes
// attention scores, and writes the JSON documents the UI serves.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/AaronFeledy/maintainer-dashboard/internal/adapter/driven/datadir"
	"github.com/AaronFeledy/maintainer-dashboard/internal/adapter/driven/github"
	"github.com/AaronFeledy/maintainer-dashboard/internal/application"
	"github.com/AaronFeledy/maintainer-dashboard/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type options struct {
	maxAge    string
	batchSize int
	include   []string
	debug     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Refresh the maintainer dashboard's data files from GitHub",
		Long: `Fetch pulls repository health signals (open issues/PRs, release cadence,
unengaged items) for every tracked repository, computes a weighted attention
score per repository, and writes the overview, urgent-items, and per-repo
detail documents the dashboard UI reads.

Without flags every active repository is refreshed (a full refresh). With
--max-age and/or --batch-size only the stalest repositories are processed,
letting a frequent cron job spread API cost across runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.maxAge, "max-age", "", `skip repos refreshed within this window, e.g. "30m", "2h", "1d"`)
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", 0, "process at most this many repos, stalest first")
	cmd.Flags().StringSliceVar(&opts.include, "include", nil, "repos to process regardless of age (owner/repo, repeatable)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	params := application.RunParams{
		BatchSize:    opts.batchSize,
		ForceInclude: opts.include,
	}
	if opts.maxAge != "" {
		maxAge, err := config.ParseMaxAge(opts.maxAge)
		if err != nil {
			return err
		}
		params.MaxAge = maxAge
	}

	slog.Info("starting data fetch",
		"registry", cfg.RegistryPath,
		"data_dir", cfg.DataDir,
		"max_age", opts.maxAge,
		"batch_size", opts.batchSize,
		"include", strings.Join(opts.include, ","),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := github.NewClient(cfg.GitHubToken)
	store := datadir.NewStore(cfg.DataDir, cfg.RegistryPath)

	// Preflight: surfaces an invalid token before any fetch, and tells the
	// operator how much quota the run starts with.
	budget, err := client.FetchRateBudget(ctx)
	if err != nil {
		return fmt.Errorf("checking API credentials: %w", err)
	}
	slog.Info("rate budget",
		"graphql_remaining", budget.GraphQLRemaining,
		"graphql_limit", budget.GraphQLLimit,
		"core_remaining", budget.CoreRemaining,
		"core_limit", budget.CoreLimit,
	)

	pipeline := application.NewPipeline(client, store, store, store, cfg.FetchConcurrency)
	result, err := pipeline.Run(ctx, params)
	if err != nil {
		return err
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(os.Stderr, "\nWarnings (%d):\n", len(result.Warnings))
		for _, warning := range result.Warnings {
			fmt.Fprintf(os.Stderr, "  - %s\n", warning)
		}
		fmt.Fprintln(os.Stderr, "\nThese warnings are informational and do not affect other repos.")
	}

	slog.Info("summary",
		"repos_processed", len(result.Overviews),
		"detail_files_written", result.DetailsWritten,
		"urgent_items_found", len(result.UrgentItems),
		"warnings", len(result.Warnings),
	)
	return nil
}
