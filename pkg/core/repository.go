package core

import "context"

// Library defines the contract for the remote reference library.
// Implementations convert their wire format into Item and Attachment values
// before returning them.
type Library interface {
	// ListTop returns all top-level items that do not carry excludeTag.
	ListTop(ctx context.Context, excludeTag string) ([]Item, error)

	// ListAttachments returns the attachment children of an item.
	ListAttachments(ctx context.Context, itemKey string) ([]Attachment, error)

	// FetchBytes downloads the binary payload of an attachment.
	FetchBytes(ctx context.Context, attachmentKey string) ([]byte, error)

	// AddTag adds a tag to the item, keeping the tags it already has.
	AddTag(ctx context.Context, item Item, tag string) error

	// DeleteAttachment removes an attachment from the library.
	DeleteAttachment(ctx context.Context, att Attachment) error
}

// Area names one of the two storage areas of a vault.
type Area string

const (
	AreaNotes       Area = "notes"
	AreaAttachments Area = "attachments"
)

// Vault defines the contract for the local note store.
// Names are plain filenames relative to the given area.
type Vault interface {
	// Exists reports whether a file is present in the area.
	Exists(ctx context.Context, area Area, name string) (bool, error)

	// WriteBytes creates a binary file. It fails with ErrExists instead of overwriting.
	WriteBytes(ctx context.Context, area Area, name string, data []byte) error

	// WriteText creates a text file. It fails with ErrExists instead of overwriting.
	WriteText(ctx context.Context, area Area, name string, text string) error

	// Path returns the location of the file, for logging.
	Path(area Area, name string) string
}
