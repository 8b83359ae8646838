package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/paperloam/pkg/core"
)

func TestWriteFileExclusive(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		tmpDir := t.TempDir()
		filename := filepath.Join(tmpDir, "test.pdf")
		content := []byte("%PDF-1.4 hello")

		if err := writeFileExclusive(filename, content, 0644); err != nil {
			t.Fatalf("writeFileExclusive failed: %v", err)
		}

		got, err := os.ReadFile(filename)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("Expected content %q, got %q", content, got)
		}
	})

	t.Run("Refuses To Overwrite", func(t *testing.T) {
		tmpDir := t.TempDir()
		filename := filepath.Join(tmpDir, "note.md")

		if err := os.WriteFile(filename, []byte("edited by hand"), 0644); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}

		err := writeFileExclusive(filename, []byte("generated"), 0644)
		if !errors.Is(err, core.ErrExists) {
			t.Fatalf("Expected ErrExists, got %v", err)
		}

		got, err := os.ReadFile(filename)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if string(got) != "edited by hand" {
			t.Errorf("Existing file was modified: %q", got)
		}
	})

	t.Run("Leaves No Temp Files", func(t *testing.T) {
		tmpDir := t.TempDir()
		if err := writeFileExclusive(filepath.Join(tmpDir, "a.md"), []byte("a"), 0644); err != nil {
			t.Fatal(err)
		}
		_ = writeFileExclusive(filepath.Join(tmpDir, "a.md"), []byte("b"), 0644)

		entries, err := os.ReadDir(tmpDir)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), TempFilePrefix) {
				t.Errorf("temp file left behind: %s", e.Name())
			}
		}
	})

	t.Run("Fails if Directory Missing", func(t *testing.T) {
		tmpDir := t.TempDir()
		filename := filepath.Join(tmpDir, "missing_folder", "test.md")

		err := writeFileExclusive(filename, []byte("fail"), 0644)
		if err == nil {
			t.Error("Expected error when directory is missing, got nil")
		}
	})
}
