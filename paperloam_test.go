package paperloam_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/paperloam"
	"github.com/aretw0/paperloam/pkg/migrate"
)

// zoteroServer is a minimal in-memory Zotero library speaking the Web API v3.
type zoteroServer struct {
	mu       sync.Mutex
	items    map[string]map[string]any // key -> data
	children map[string][]string       // parent key -> attachment keys
	files    map[string][]byte
	deleted  []string
}

func newZoteroServer() *zoteroServer {
	return &zoteroServer{
		items:    map[string]map[string]any{},
		children: map[string][]string{},
		files:    map[string][]byte{},
	}
}

func (z *zoteroServer) addPaper(key, title, url string, pdf []byte) {
	z.items[key] = map[string]any{
		"key":          key,
		"version":      1,
		"itemType":     "journalArticle",
		"title":        title,
		"url":          url,
		"dateAdded":    "2024-03-01T10:00:00Z",
		"accessDate":   "2024-03-02",
		"date":         "2016",
		"abstractNote": "Abstract.",
		"creators":     []map[string]any{{"creatorType": "author", "firstName": "Ian", "lastName": "Goodfellow"}},
		"tags":         []map[string]any{{"tag": "ml"}, {"tag": "_tablet"}},
	}
	attKey := key + "-PDF"
	z.children[key] = append(z.children[key], attKey)
	z.items[attKey] = map[string]any{
		"key":         attKey,
		"version":     1,
		"itemType":    "attachment",
		"parentItem":  key,
		"contentType": "application/pdf",
		"filename":    "paper.pdf",
	}
	z.files[attKey] = pdf
}

func (z *zoteroServer) tagged(data map[string]any, tag string) bool {
	tags, _ := data["tags"].([]map[string]any)
	for _, t := range tags {
		if t["tag"] == tag {
			return true
		}
	}
	return false
}

func wrap(data map[string]any) map[string]any {
	return map[string]any{"key": data["key"], "version": data["version"], "data": data}
}

func (z *zoteroServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	z.mu.Lock()
	defer z.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/users/42/items")
	switch {
	case r.Method == http.MethodGet && path == "/top":
		exclude := strings.TrimPrefix(r.URL.Query().Get("tag"), "-")
		var out []map[string]any
		for _, data := range z.items {
			if data["itemType"] == "attachment" || z.tagged(data, exclude) {
				continue
			}
			out = append(out, wrap(data))
		}
		w.Header().Set("Total-Results", "1")
		_ = json.NewEncoder(w).Encode(out)

	case r.Method == http.MethodGet && strings.HasSuffix(path, "/children"):
		parent := strings.TrimSuffix(strings.TrimPrefix(path, "/"), "/children")
		out := []map[string]any{}
		for _, key := range z.children[parent] {
			if data, ok := z.items[key]; ok {
				out = append(out, wrap(data))
			}
		}
		_ = json.NewEncoder(w).Encode(out)

	case r.Method == http.MethodGet && strings.HasSuffix(path, "/file"):
		key := strings.TrimSuffix(strings.TrimPrefix(path, "/"), "/file")
		_, _ = w.Write(z.files[key])

	case r.Method == http.MethodPatch:
		key := strings.TrimPrefix(path, "/")
		var body struct {
			Tags []map[string]any `json:"tags"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		z.items[key]["tags"] = body.Tags
		w.WriteHeader(http.StatusNoContent)

	case r.Method == http.MethodDelete:
		key := strings.TrimPrefix(path, "/")
		delete(z.items, key)
		z.deleted = append(z.deleted, key)
		w.WriteHeader(http.StatusNoContent)

	default:
		http.NotFound(w, r)
	}
}

func TestRun_MigratesLibrary(t *testing.T) {
	zot := newZoteroServer()
	zot.addPaper("ABCD1234", "Deep Learning", "https://example.org/paper", []byte("%PDF-1.4 fake"))
	srv := httptest.NewServer(zot)
	defer srv.Close()

	vaultDir := t.TempDir()
	cfg := paperloam.Config{
		LibraryID:    "42",
		LibraryType:  "user",
		APIKey:       "secret",
		APIURL:       srv.URL,
		VaultDir:     vaultDir,
		ImportedTag:  migrate.DefaultImportedTag,
		ExcludedTags: migrate.DefaultExcludedTags,
	}
	opts := []paperloam.Option{
		paperloam.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		paperloam.WithHTTPClient(srv.Client()),
	}

	report, err := paperloam.Run(context.Background(), cfg, opts...)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Candidates)
	assert.Equal(t, 1, report.Count(migrate.StageFinalized))

	const slug = "paper-deep-learning-dcb0f3bb"
	pdf, err := os.ReadFile(filepath.Join(vaultDir, "attachments", slug+".pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(pdf))

	note, err := os.ReadFile(filepath.Join(vaultDir, "notes", slug+".md"))
	require.NoError(t, err)
	assert.Contains(t, string(note), "tags: [progress/untagged,papers,papers/source/ml]")
	assert.Contains(t, string(note), "**PDF**: [](@attachment/"+slug+".pdf)")

	zot.mu.Lock()
	assert.True(t, zot.tagged(zot.items["ABCD1234"], migrate.DefaultImportedTag))
	assert.Equal(t, []string{"ABCD1234-PDF"}, zot.deleted)
	zot.mu.Unlock()

	// A second pass finds nothing left to do.
	report, err = paperloam.Run(context.Background(), cfg, opts...)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Candidates)
}
