package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/paperloam/pkg/adapters/fs"
	"github.com/aretw0/paperloam/pkg/adapters/zotero"
	"github.com/aretw0/paperloam/pkg/config"
	"github.com/aretw0/paperloam/pkg/migrate"
)

// New validates the configuration and wires a pipeline:
//
//	p, err := platform.New(ctx, cfg, platform.WithLogger(logger))
//
// Configuration problems are reported before anything touches the network.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*migrate.Pipeline, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if o.library == nil {
		client, err := zotero.NewClient(zotero.Config{
			BaseURL:     cfg.APIURL,
			LibraryID:   cfg.LibraryID,
			LibraryType: cfg.LibraryType,
			APIKey:      cfg.APIKey,
			HTTPClient:  o.httpClient,
			Logger:      o.logger,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrConfig, err)
		}
		o.library = client
	}

	if o.vault == nil {
		vault, err := OpenVault(ctx, cfg, o.mustExist, o.logger)
		if err != nil {
			return nil, err
		}
		o.vault = vault
	}

	o.logger.Info("pipeline ready", "library", cfg.LibraryType+"/"+cfg.LibraryID, "vault", cfg.VaultDir)

	return migrate.New(o.library, o.vault, migrate.Config{
		ImportedTag:  cfg.ImportedTag,
		ExcludedTags: cfg.ExcludedTags,
		Logger:       o.logger,
	}), nil
}

// OpenVault opens and initializes the filesystem vault described by cfg.
func OpenVault(ctx context.Context, cfg config.Config, mustExist bool, logger *slog.Logger) (*fs.Vault, error) {
	vault := fs.NewVault(fs.Config{
		Root:      cfg.VaultDir,
		MustExist: mustExist,
		Logger:    logger,
	})
	if err := vault.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrConfig, err)
	}
	return vault, nil
}

// Run builds a pipeline and performs one pass.
func Run(ctx context.Context, cfg config.Config, opts ...Option) (migrate.Report, error) {
	p, err := New(ctx, cfg, opts...)
	if err != nil {
		return migrate.Report{}, err
	}
	return p.Run(ctx)
}
