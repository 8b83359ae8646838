package core

// Creator is a person credited on an Item.
type Creator struct {
	FirstName string
	LastName  string
	// Name holds single-field names (institutions, mononyms).
	Name string
}

// DisplayName returns the last name if present, otherwise the full name.
func (c Creator) DisplayName() string {
	if c.LastName != "" {
		return c.LastName
	}
	return c.Name
}

// Tag is a label attached to an Item.
type Tag struct {
	Name      string
	Automatic bool
}

// Item is a bibliographic record owned by the remote library.
type Item struct {
	Key        string
	Version    int
	Title      string
	ShortTitle string
	URL        string
	DateAdded  string
	AccessDate string
	Date       string
	Abstract   string
	Creators   []Creator
	Tags       []Tag
}

// DisplayTitle is the title used to derive the note slug.
func (i Item) DisplayTitle() string {
	if i.ShortTitle != "" {
		return i.ShortTitle
	}
	return i.Title
}

// HasTag reports whether the item carries the given tag.
func (i Item) HasTag(name string) bool {
	for _, t := range i.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Attachment is a child file of exactly one Item.
type Attachment struct {
	Key         string
	Version     int
	ParentKey   string
	ContentType string
	Title       string
	Filename    string
}

// ContentTypePDF is the content type the migration accepts.
const ContentTypePDF = "application/pdf"
