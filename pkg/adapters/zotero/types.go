package zotero

import (
	"fmt"

	"github.com/aretw0/paperloam/pkg/core"
)

// apiItem is one element of an items response.
type apiItem struct {
	Key     string  `json:"key"`
	Version int     `json:"version"`
	Data    apiData `json:"data"`
}

// apiData covers the fields of regular items and attachments that the
// migration reads. Unknown fields are ignored.
type apiData struct {
	Key          string       `json:"key"`
	Version      int          `json:"version"`
	ItemType     string       `json:"itemType"`
	ParentItem   string       `json:"parentItem,omitempty"`
	Title        string       `json:"title"`
	ShortTitle   string       `json:"shortTitle"`
	URL          string       `json:"url"`
	DateAdded    string       `json:"dateAdded"`
	AccessDate   string       `json:"accessDate"`
	Date         string       `json:"date"`
	AbstractNote string       `json:"abstractNote"`
	Creators     []apiCreator `json:"creators"`
	Tags         []apiTag     `json:"tags"`
	LinkMode     string       `json:"linkMode,omitempty"`
	ContentType  string       `json:"contentType,omitempty"`
	Filename     string       `json:"filename,omitempty"`
}

type apiCreator struct {
	CreatorType string `json:"creatorType"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Name        string `json:"name,omitempty"`
}

type apiTag struct {
	Tag  string `json:"tag"`
	Type int    `json:"type,omitempty"`
}

// automaticTagType marks tags added by Zotero rather than the user.
const automaticTagType = 1

func (a apiItem) key() string {
	if a.Data.Key != "" {
		return a.Data.Key
	}
	return a.Key
}

func (a apiItem) version() int {
	if a.Data.Version != 0 {
		return a.Data.Version
	}
	return a.Version
}

func toItem(a apiItem) (core.Item, error) {
	key := a.key()
	if key == "" {
		return core.Item{}, fmt.Errorf("item without key (title %q)", a.Data.Title)
	}

	item := core.Item{
		Key:        key,
		Version:    a.version(),
		Title:      a.Data.Title,
		ShortTitle: a.Data.ShortTitle,
		URL:        a.Data.URL,
		DateAdded:  a.Data.DateAdded,
		AccessDate: a.Data.AccessDate,
		Date:       a.Data.Date,
		Abstract:   a.Data.AbstractNote,
	}
	for _, c := range a.Data.Creators {
		item.Creators = append(item.Creators, core.Creator{
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Name:      c.Name,
		})
	}
	for _, t := range a.Data.Tags {
		item.Tags = append(item.Tags, core.Tag{
			Name:      t.Tag,
			Automatic: t.Type == automaticTagType,
		})
	}
	return item, nil
}

func toAttachment(a apiItem) (core.Attachment, error) {
	key := a.key()
	if key == "" {
		return core.Attachment{}, fmt.Errorf("attachment without key (parent %q)", a.Data.ParentItem)
	}
	return core.Attachment{
		Key:         key,
		Version:     a.version(),
		ParentKey:   a.Data.ParentItem,
		ContentType: a.Data.ContentType,
		Title:       a.Data.Title,
		Filename:    a.Data.Filename,
	}, nil
}

func fromTags(tags []core.Tag) []apiTag {
	out := make([]apiTag, 0, len(tags))
	for _, t := range tags {
		at := apiTag{Tag: t.Name}
		if t.Automatic {
			at.Type = automaticTagType
		}
		out = append(out, at)
	}
	return out
}
