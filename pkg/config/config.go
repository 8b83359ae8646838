// Package config loads the settings needed for a migration run from the
// environment and from Notable's own configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/aretw0/paperloam/pkg/adapters/zotero"
	"github.com/aretw0/paperloam/pkg/migrate"
)

// ErrConfig is wrapped by every configuration failure.
var ErrConfig = errors.New("invalid configuration")

// Environment variables read by Load.
const (
	EnvLibraryID      = "ZOTERO_LIBRARY_ID"
	EnvAPIKey         = "ZOTERO_API_KEY"
	EnvLibraryType    = "ZOTERO_LIBRARY_TYPE"
	EnvAPIURL         = "ZOTERO_API_URL"
	EnvVaultDir       = "PAPERLOAM_VAULT_DIR"
	EnvNotableConfig  = "PAPERLOAM_NOTABLE_CONFIG"
	EnvImportedTag    = "PAPERLOAM_IMPORTED_TAG"
	EnvExcludedTags   = "PAPERLOAM_EXCLUDED_TAGS"
	EnvLogFile        = "PAPERLOAM_LOG_FILE"
	notableConfigName = ".notable.json"
)

// Config is built once at startup and passed down explicitly.
type Config struct {
	LibraryID   string
	LibraryType string
	APIKey      string
	APIURL      string

	// VaultDir is the Notable data directory holding notes/ and attachments/.
	VaultDir string

	ImportedTag  string
	ExcludedTags []string

	// LogFile, when set, receives a copy of the log with rotation.
	LogFile string
}

// Load reads the configuration from the environment. The vault directory is
// taken from PAPERLOAM_VAULT_DIR or, failing that, from the "cwd" key of
// Notable's ~/.notable.json.
func Load() (Config, error) {
	v := viper.New()
	bind(v, "library_id", EnvLibraryID)
	bind(v, "api_key", EnvAPIKey)
	bind(v, "library_type", EnvLibraryType)
	bind(v, "api_url", EnvAPIURL)
	bind(v, "vault_dir", EnvVaultDir)
	bind(v, "notable_config", EnvNotableConfig)
	bind(v, "imported_tag", EnvImportedTag)
	bind(v, "excluded_tags", EnvExcludedTags)
	bind(v, "log_file", EnvLogFile)

	v.SetDefault("library_type", zotero.LibraryTypeUser)
	v.SetDefault("api_url", zotero.DefaultBaseURL)
	v.SetDefault("imported_tag", migrate.DefaultImportedTag)
	v.SetDefault("excluded_tags", strings.Join(migrate.DefaultExcludedTags, ","))

	cfg := Config{
		LibraryID:    v.GetString("library_id"),
		LibraryType:  v.GetString("library_type"),
		APIKey:       v.GetString("api_key"),
		APIURL:       v.GetString("api_url"),
		VaultDir:     v.GetString("vault_dir"),
		ImportedTag:  v.GetString("imported_tag"),
		ExcludedTags: splitList(v.GetString("excluded_tags")),
		LogFile:      v.GetString("log_file"),
	}

	if cfg.VaultDir == "" {
		dir, err := notableDir(v.GetString("notable_config"))
		if err != nil {
			return cfg, err
		}
		cfg.VaultDir = dir
	}

	return cfg, cfg.Validate()
}

// Validate reports the first missing or malformed setting.
func (c Config) Validate() error {
	switch {
	case c.LibraryID == "":
		return fmt.Errorf("%w: %s is not set", ErrConfig, EnvLibraryID)
	case c.APIKey == "":
		return fmt.Errorf("%w: %s is not set", ErrConfig, EnvAPIKey)
	case c.LibraryType != zotero.LibraryTypeUser && c.LibraryType != zotero.LibraryTypeGroup:
		return fmt.Errorf("%w: %s must be %q or %q, got %q", ErrConfig, EnvLibraryType,
			zotero.LibraryTypeUser, zotero.LibraryTypeGroup, c.LibraryType)
	case c.VaultDir == "":
		return fmt.Errorf("%w: vault directory is not set", ErrConfig)
	case c.ImportedTag == "":
		return fmt.Errorf("%w: %s is empty", ErrConfig, EnvImportedTag)
	}
	return nil
}

// notableDir reads the data directory from Notable's JSON settings.
func notableDir(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("%w: cannot locate home directory: %v", ErrConfig, err)
		}
		path = filepath.Join(home, notableConfigName)
	}

	nv := viper.New()
	nv.SetConfigFile(path)
	nv.SetConfigType("json")
	if err := nv.ReadInConfig(); err != nil {
		return "", fmt.Errorf("%w: cannot read notable config %s: %v", ErrConfig, path, err)
	}

	dir := nv.GetString("cwd")
	if dir == "" {
		return "", fmt.Errorf("%w: notable config %s has no \"cwd\"", ErrConfig, path)
	}
	return dir, nil
}

func bind(v *viper.Viper, key, env string) {
	// BindEnv only fails when called without a key.
	_ = v.BindEnv(key, env)
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
