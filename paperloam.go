package paperloam

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aretw0/paperloam/internal/platform"
	"github.com/aretw0/paperloam/pkg/config"
	"github.com/aretw0/paperloam/pkg/core"
	"github.com/aretw0/paperloam/pkg/migrate"
)

// Version is the release version, set at build time with -ldflags.
var Version = "dev"

// --- Types ---

// Pipeline is a public alias for the migration pipeline.
type Pipeline = migrate.Pipeline

// Report is a public alias for the outcome of a run.
type Report = migrate.Report

// Config is a public alias for the run configuration.
type Config = config.Config

// --- Configuration ---

// Option defines a functional option for configuring the pipeline.
type Option = platform.Option

// WithLogger sets the logger for the pipeline and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithLibrary allows injecting a custom remote library.
func WithLibrary(lib core.Library) Option {
	return platform.WithLibrary(lib)
}

// WithVault allows injecting a custom vault.
func WithVault(vault core.Vault) Option {
	return platform.WithVault(vault)
}

// WithHTTPClient sets the HTTP client used to reach Zotero.
func WithHTTPClient(client *http.Client) Option {
	return platform.WithHTTPClient(client)
}

// WithMustExist controls whether the vault directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// --- Factory ---

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	return config.Load()
}

// New creates a migration pipeline.
func New(ctx context.Context, cfg Config, opts ...Option) (*Pipeline, error) {
	return platform.New(ctx, cfg, opts...)
}

// --- Operations ---

// Run performs a single migration pass.
func Run(ctx context.Context, cfg Config, opts ...Option) (Report, error) {
	return platform.Run(ctx, cfg, opts...)
}
