package platform

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/paperloam/pkg/config"
	"github.com/aretw0/paperloam/pkg/migrate"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		LibraryID:    "12345",
		LibraryType:  "user",
		APIKey:       "secret",
		APIURL:       "http://127.0.0.1:0",
		VaultDir:     t.TempDir(),
		ImportedTag:  migrate.DefaultImportedTag,
		ExcludedTags: migrate.DefaultExcludedTags,
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.APIKey = ""

	_, err := New(context.Background(), cfg, WithLogger(quietLogger()))
	if !errors.Is(err, config.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestNew_MissingVault(t *testing.T) {
	cfg := testConfig(t)
	cfg.VaultDir = filepath.Join(cfg.VaultDir, "does-not-exist")

	_, err := New(context.Background(), cfg, WithLogger(quietLogger()))
	if !errors.Is(err, config.ErrConfig) {
		t.Fatalf("expected ErrConfig for missing vault, got %v", err)
	}

	// Relaxed: the root is created on demand.
	if _, err := New(context.Background(), cfg, WithLogger(quietLogger()), WithMustExist(false)); err != nil {
		t.Fatalf("expected vault to be created, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.VaultDir, "notes")); err != nil {
		t.Errorf("notes area was not created: %v", err)
	}
}

func TestRun_EmptyLibrary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/12345/items/top" {
			t.Errorf("unexpected request %s", r.URL.Path)
		}
		w.Header().Set("Total-Results", "0")
		_, _ = io.WriteString(w, "[]")
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.APIURL = srv.URL

	report, err := Run(context.Background(), cfg,
		WithLogger(quietLogger()),
		WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Candidates != 0 || len(report.Results) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
}
