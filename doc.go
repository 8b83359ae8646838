// Package paperloam migrates Zotero library items into a Notable vault.
//
// Each top-level item that is not yet tagged as imported and has exactly one
// PDF attachment becomes two files in the vault:
//
//	attachments/paper-<title-slug>-<url-hash>.pdf
//	notes/paper-<title-slug>-<url-hash>.md
//
// after which the item is tagged in Zotero and the remote PDF is deleted.
// Runs are safe to repeat: tagged items are never selected again and
// existing vault files are never overwritten.
//
// Usage:
//
//	cfg, err := config.Load()
//	report, err := paperloam.Run(ctx, cfg, paperloam.WithLogger(logger))
package paperloam
