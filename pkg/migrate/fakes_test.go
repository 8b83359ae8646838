package migrate_test

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/paperloam/pkg/core"
)

var errInjected = errors.New("injected failure")

// fakeLibrary is an in-memory core.Library that records every call.
type fakeLibrary struct {
	items       []core.Item
	attachments map[string][]core.Attachment
	files       map[string][]byte
	calls       []string
	// failOn makes the first call whose name starts with this prefix fail.
	failOn string
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{
		attachments: make(map[string][]core.Attachment),
		files:       make(map[string][]byte),
	}
}

// addItem registers an item with the given PDF attachment keys.
func (f *fakeLibrary) addItem(item core.Item, pdfKeys ...string) {
	f.items = append(f.items, item)
	for i, key := range pdfKeys {
		f.attachments[item.Key] = append(f.attachments[item.Key], core.Attachment{
			Key:         key,
			Version:     i + 1,
			ParentKey:   item.Key,
			ContentType: core.ContentTypePDF,
		})
		f.files[key] = []byte("%PDF-1.4 " + key)
	}
}

func (f *fakeLibrary) record(call string) error {
	f.calls = append(f.calls, call)
	if f.failOn != "" && strings.HasPrefix(call, f.failOn) {
		f.failOn = ""
		return fmt.Errorf("%s: %w", call, errInjected)
	}
	return nil
}

func (f *fakeLibrary) callsWith(prefix string) []string {
	var out []string
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeLibrary) ListTop(ctx context.Context, excludeTag string) ([]core.Item, error) {
	if err := f.record("listTop"); err != nil {
		return nil, err
	}
	var out []core.Item
	for _, item := range f.items {
		if !item.HasTag(excludeTag) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeLibrary) ListAttachments(ctx context.Context, itemKey string) ([]core.Attachment, error) {
	if err := f.record("listAttachments:" + itemKey); err != nil {
		return nil, err
	}
	return append([]core.Attachment(nil), f.attachments[itemKey]...), nil
}

func (f *fakeLibrary) FetchBytes(ctx context.Context, attachmentKey string) ([]byte, error) {
	if err := f.record("fetch:" + attachmentKey); err != nil {
		return nil, err
	}
	data, ok := f.files[attachmentKey]
	if !ok {
		return nil, core.ErrNotFound
	}
	return data, nil
}

func (f *fakeLibrary) AddTag(ctx context.Context, item core.Item, tag string) error {
	if err := f.record("addTag:" + item.Key + ":" + tag); err != nil {
		return err
	}
	for i := range f.items {
		if f.items[i].Key == item.Key {
			f.items[i].Tags = append(f.items[i].Tags, core.Tag{Name: tag})
		}
	}
	return nil
}

func (f *fakeLibrary) DeleteAttachment(ctx context.Context, att core.Attachment) error {
	if err := f.record("delete:" + att.Key); err != nil {
		return err
	}
	kept := f.attachments[att.ParentKey][:0]
	for _, a := range f.attachments[att.ParentKey] {
		if a.Key != att.Key {
			kept = append(kept, a)
		}
	}
	f.attachments[att.ParentKey] = kept
	delete(f.files, att.Key)
	return nil
}

// failingVault wraps a vault and fails every write.
type failingVault struct {
	core.Vault
}

func (v failingVault) WriteBytes(ctx context.Context, area core.Area, name string, data []byte) error {
	return errInjected
}

func (v failingVault) WriteText(ctx context.Context, area core.Area, name string, text string) error {
	return errInjected
}
