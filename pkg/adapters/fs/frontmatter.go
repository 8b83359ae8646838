package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/paperloam/pkg/core"
)

// NoteHeader is the frontmatter block of a migrated note.
type NoteHeader struct {
	Title       string   `yaml:"title" json:"title"`
	Created     string   `yaml:"created" json:"created"`
	Modified    string   `yaml:"modified" json:"modified"`
	Tags        []string `yaml:"tags" json:"tags"`
	Attachments []string `yaml:"attachments" json:"attachments"`
}

// Note is a parsed note file.
type Note struct {
	Name   string     `json:"name"`
	Header NoteHeader `json:"header"`
	Body   string     `json:"-"`
}

// Slug returns the filename stem shared with the note's attachment.
func (n Note) Slug() string {
	return strings.TrimSuffix(n.Name, path.Ext(n.Name))
}

// ParseNote reads a Markdown note with an optional YAML frontmatter block.
func ParseNote(r io.Reader) (*Note, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	note := &Note{}

	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		note.Body = string(data)
		return note, nil
	}

	rest := data[3:]
	parts := bytes.SplitN(rest, []byte("\n---"), 2)
	if len(parts) == 1 {
		return nil, errors.New("frontmatter started but no closing delimiter found")
	}

	if err := yaml.Unmarshal(parts[0], &note.Header); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	body := strings.TrimPrefix(string(parts[1]), "\r")
	body = strings.TrimPrefix(body, "\n")
	note.Body = strings.TrimPrefix(body, "\n")

	return note, nil
}

// NotePattern matches the notes written by the migration.
const NotePattern = "paper-*.md"

// ListNotes parses every migrated note in the vault, sorted by name.
func (v *Vault) ListNotes(ctx context.Context) ([]Note, error) {
	names, err := v.Glob(ctx, core.AreaNotes, NotePattern)
	if err != nil {
		return nil, err
	}

	notes := make([]Note, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := v.ReadText(ctx, core.AreaNotes, name)
		if err != nil {
			return nil, err
		}
		note, err := ParseNote(strings.NewReader(text))
		if err != nil {
			v.config.Logger.Warn("skipping unreadable note", "name", name, "error", err)
			continue
		}
		note.Name = name
		notes = append(notes, *note)
	}
	return notes, nil
}
