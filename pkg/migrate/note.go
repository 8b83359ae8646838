package migrate

import (
	"strconv"
	"strings"

	"github.com/aretw0/paperloam/pkg/core"
)

const (
	// SourceTagPrefix namespaces tags carried over from the library.
	SourceTagPrefix = "papers/source/"

	frontmatterDelimiter = "---"
	attachmentEmbed      = "@attachment/"
)

// BaseTags are present on every migrated note, in this order.
var BaseTags = []string{"progress/untagged", "papers"}

// DefaultExcludedTags are library tags that never reach the note.
var DefaultExcludedTags = []string{"_tablet"}

// DeriveTags builds the note tag list from the item's library tags.
func DeriveTags(tags []core.Tag, exclude []string) []string {
	skip := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		skip[e] = struct{}{}
	}

	out := append([]string(nil), BaseTags...)
	for _, t := range tags {
		if _, ok := skip[t.Name]; ok {
			continue
		}
		out = append(out, SourceTagPrefix+t.Name)
	}
	return out
}

// ComposeNote renders the Markdown note for an item.
// The header timestamp is the item's creation date, used for both created
// and modified. ComposeNote has no side effects.
func ComposeNote(item core.Item, tags []string, attachment string) string {
	var b strings.Builder

	b.WriteString(frontmatterDelimiter + "\n")
	b.WriteString("title: " + strconv.Quote(item.Title) + "\n")
	b.WriteString("created: '" + item.DateAdded + "'\n")
	b.WriteString("modified: '" + item.DateAdded + "'\n")
	b.WriteString("tags: [" + strings.Join(tags, ",") + "]\n")
	b.WriteString("attachments: [" + attachment + "]\n")
	b.WriteString(frontmatterDelimiter + "\n")
	b.WriteString("\n")

	authors := make([]string, 0, len(item.Creators))
	for _, c := range item.Creators {
		authors = append(authors, c.DisplayName())
	}

	body := []string{
		"### Notes",
		"",
		"### Metadata",
		"**Title**: " + item.Title,
		"**Authors**: " + strings.Join(authors, ", "),
		"**Date**: " + item.Date,
		"**Abstract**: " + item.Abstract,
		"**Accessed**: " + item.AccessDate,
		"**Original URL**: " + item.URL,
		"**PDF**: [](" + attachmentEmbed + attachment + ")",
	}
	b.WriteString(strings.Join(body, "\n"))

	return b.String()
}
