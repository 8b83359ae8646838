package platform

import (
	"log/slog"
	"net/http"

	"github.com/aretw0/paperloam/pkg/core"
)

// options holds the internal wiring overrides for a migration run.
type options struct {
	library    core.Library
	vault      core.Vault
	logger     *slog.Logger
	httpClient *http.Client
	mustExist  bool
}

// Option defines a functional option for configuring the pipeline.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		mustExist: true,
	}
}

// WithLogger sets the logger for the pipeline and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLibrary allows injecting a custom remote library (e.g. mock, other service).
// If provided, the Zotero client is not created.
func WithLibrary(lib core.Library) Option {
	return func(o *options) {
		o.library = lib
	}
}

// WithVault allows injecting a custom vault.
// If provided, the filesystem vault is not created or initialized.
func WithVault(vault core.Vault) Option {
	return func(o *options) {
		o.vault = vault
	}
}

// WithHTTPClient sets the HTTP client used by the Zotero adapter.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithMustExist controls whether the vault root must already exist.
// Defaults to true: a missing Notable directory usually means a wrong config.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}
