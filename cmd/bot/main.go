package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

// errRunFailed marks errors that were already logged through the structured logger.
var errRunFailed = errors.New("run failed")

type options struct {
	configPath string
	dryRun     bool
	date       string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "chrona-bot",
		Short: "Post the year's progress to X",
		Long: `chrona-bot computes how much of the current year has passed, renders it as a
progress bar, adds a short AI-written sentence and posts the result to X.

It is meant to be run once a week by an external scheduler. Credentials are read
from the environment (or a .env file).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, time.Now())
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "config.yaml", "optional YAML config file")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "log the post instead of publishing it")
	cmd.Flags().StringVar(&opts.date, "date", "", "compute progress for this date (YYYY-MM-DD) instead of today")
	return cmd
}

func main() {
	// local development; in CI the variables come from secrets
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if !errors.Is(err, errRunFailed) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return 1
}

func run(ctx context.Context, opts *options, now time.Time) error {
	log, err := initializeLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	initializeTracer(ctx, log)
	defer shutdownTracer(log)

	log.Info(ctx, "Chrona bot starting", "version", version)

	cfg, err := loadConfig(ctx, log, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", errRunFailed, err)
	}

	today, err := resolveDate(ctx, log, cfg, opts.date, now)
	if err != nil {
		log.ErrorWithErr(ctx, "Invalid --date", err)
		return fmt.Errorf("%w: %w", errRunFailed, err)
	}

	gen := initializeGenerator(ctx, cfg, log)
	pub, err := initializePublisher(ctx, cfg, log)
	if err != nil {
		log.ErrorWithErr(ctx, "Failed to initialize publisher", err)
		return fmt.Errorf("%w: %w", errRunFailed, err)
	}

	eng := initializeEngine(cfg, gen, pub, log)
	res, err := eng.Run(ctx, today)
	if err != nil {
		return fmt.Errorf("%w: %w", errRunFailed, err)
	}

	log.Info(ctx, "Chrona bot finished",
		"post_id", res.Post.ID,
		"percent", res.Progress.Percent,
		"dry_run", res.Post.DryRun,
	)
	return nil
}
