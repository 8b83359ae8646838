package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/paperloam/pkg/core"
)

const (
	DefaultNotesDir       = "notes"
	DefaultAttachmentsDir = "attachments"
)

// Vault implements core.Vault on a Notable-style directory:
// <root>/notes for Markdown and <root>/attachments for binaries.
type Vault struct {
	Root   string
	config Config
}

// Config holds the configuration for the filesystem vault.
type Config struct {
	Root           string
	NotesDir       string // relative to Root, default "notes"
	AttachmentsDir string // relative to Root, default "attachments"
	MustExist      bool   // Root must already exist; area directories are always created
	Logger         *slog.Logger
}

// NewVault creates a new filesystem-backed vault.
func NewVault(config Config) *Vault {
	if config.NotesDir == "" {
		config.NotesDir = DefaultNotesDir
	}
	if config.AttachmentsDir == "" {
		config.AttachmentsDir = DefaultAttachmentsDir
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Vault{Root: config.Root, config: config}
}

// Initialize checks the root and makes sure both areas exist.
func (v *Vault) Initialize(ctx context.Context) error {
	if v.config.MustExist {
		info, err := os.Stat(v.Root)
		if os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", v.Root)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", v.Root)
		}
	}

	for _, area := range []core.Area{core.AreaNotes, core.AreaAttachments} {
		dir := v.dir(area)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", area, err)
		}
		v.config.Logger.Debug("vault area ready", "area", area, "path", dir)
	}
	return nil
}

// Path returns the absolute location of name inside area.
func (v *Vault) Path(area core.Area, name string) string {
	return filepath.Join(v.dir(area), name)
}

// Exists reports whether name is present in area.
func (v *Vault) Exists(ctx context.Context, area core.Area, name string) (bool, error) {
	path, err := v.resolve(area, name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, iofs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// WriteBytes creates a binary file in area. Existing files are never replaced.
func (v *Vault) WriteBytes(ctx context.Context, area core.Area, name string, data []byte) error {
	path, err := v.resolve(area, name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeFileExclusive(path, data, 0644)
}

// WriteText creates a text file in area. Existing files are never replaced.
func (v *Vault) WriteText(ctx context.Context, area core.Area, name string, text string) error {
	return v.WriteBytes(ctx, area, name, []byte(text))
}

// ReadText returns the contents of a file in area.
func (v *Vault) ReadText(ctx context.Context, area core.Area, name string) (string, error) {
	path, err := v.resolve(area, name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return "", fmt.Errorf("%s/%s: %w", area, name, core.ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Glob returns the sorted names in area matching a doublestar pattern.
func (v *Vault) Glob(ctx context.Context, area core.Area, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(v.dir(area)), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to glob %s in %s: %w", pattern, area, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func (v *Vault) dir(area core.Area) string {
	switch area {
	case core.AreaAttachments:
		return filepath.Join(v.Root, v.config.AttachmentsDir)
	default:
		return filepath.Join(v.Root, v.config.NotesDir)
	}
}

// resolve rejects anything that is not a plain filename.
func (v *Vault) resolve(area core.Area, name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid vault filename %q", name)
	}
	return v.Path(area, name), nil
}

var _ core.Vault = (*Vault)(nil)
