package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aretw0/paperloam"
	"github.com/aretw0/paperloam/pkg/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run one migration pass (same as running paperloam with no command)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runMigrate(cmd.Context())
	},
}

func runMigrate(parent context.Context) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	cfg, err := paperloam.LoadConfig()
	if err != nil {
		fatal("Error loading configuration", err)
	}

	logger := slog.Default()
	pipeline, err := paperloam.New(ctx, cfg, paperloam.WithLogger(logger))
	if err != nil {
		fatal("Error initializing paperloam", err)
	}

	report, err := pipeline.Run(ctx)
	summarize(logger, pipeline, report)
	if err != nil {
		fatal("Migration failed", err)
	}
}

func summarize(logger *slog.Logger, p *migrate.Pipeline, report migrate.Report) {
	state, ok := p.State().(migrate.PipelineState)
	if !ok {
		return
	}
	logger.Info("summary",
		"candidates", report.Candidates,
		"processed", len(report.Results),
		"finalized", report.Count(migrate.StageFinalized),
		"skipped", report.Count(migrate.StageSkipped),
		"library", state.LibraryType,
		"vault", state.VaultType,
	)
	for reason, n := range state.Skips {
		logger.Debug("skips", "reason", reason, "count", n)
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
