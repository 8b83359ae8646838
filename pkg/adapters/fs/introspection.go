package fs

import (
	"github.com/aretw0/introspection"

	"github.com/aretw0/paperloam/pkg/core"
)

// VaultState exposes internal state for observability.
type VaultState struct {
	Root           string `json:"root"`
	NotesDir       string `json:"notes_dir"`
	AttachmentsDir string `json:"attachments_dir"`
	MustExist      bool   `json:"must_exist"`
}

// State implements introspection.Introspectable.
func (v *Vault) State() any {
	return VaultState{
		Root:           v.Root,
		NotesDir:       v.dir(core.AreaNotes),
		AttachmentsDir: v.dir(core.AreaAttachments),
		MustExist:      v.config.MustExist,
	}
}

// ComponentType implements introspection.Component.
func (v *Vault) ComponentType() string {
	return "fs-vault"
}

var _ introspection.Introspectable = (*Vault)(nil)
var _ introspection.Component = (*Vault)(nil)
