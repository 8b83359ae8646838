package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aretw0/paperloam/pkg/config"
)

var (
	verbose bool
)

// rootCmd runs a single migration pass when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "paperloam",
	Short: "Migrate Zotero items and their PDFs into a Notable vault",
	Long: `Paperloam moves every Zotero item that has exactly one PDF attachment
into your Notable vault: the PDF lands in attachments/, a note with the item's
metadata lands in notes/, and the item is tagged so it is never migrated twice.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(logWriter(), opts))
		slog.SetDefault(logger)
	},
	Run: func(cmd *cobra.Command, args []string) {
		runMigrate(cmd.Context())
	},
}

// logWriter tees the log into a rotated file when PAPERLOAM_LOG_FILE is set.
func logWriter() io.Writer {
	path := os.Getenv(config.EnvLogFile)
	if path == "" {
		return os.Stderr
	}
	return io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	})
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
