package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/paperloam"
	"github.com/aretw0/paperloam/internal/platform"
	"github.com/aretw0/paperloam/pkg/adapters/fs"
	"github.com/aretw0/paperloam/pkg/config"
	"github.com/aretw0/paperloam/pkg/core"
)

var (
	listJSON bool
)

type listEntry struct {
	fs.Note
	PDF   string `json:"pdf,omitempty"`
	Pages int    `json:"pages,omitempty"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the migrated notes in the vault",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		// Listing only needs the vault; missing Zotero credentials are fine.
		cfg, err := paperloam.LoadConfig()
		if err != nil && (cfg.VaultDir == "" || !errors.Is(err, config.ErrConfig)) {
			fatal("Error loading configuration", err)
		}

		vault, err := platform.OpenVault(ctx, cfg, true, slog.Default())
		if err != nil {
			fatal("Error opening vault", err)
		}

		notes, err := vault.ListNotes(ctx)
		if err != nil {
			fatal("Error listing notes", err)
		}

		entries := make([]listEntry, 0, len(notes))
		for _, note := range notes {
			entry := listEntry{Note: note}
			if len(note.Header.Attachments) > 0 {
				entry.PDF = note.Header.Attachments[0]
				pages, err := fs.PageCount(vault.Path(core.AreaAttachments, entry.PDF))
				if err != nil {
					slog.Debug("cannot read attachment", "path", entry.PDF, "error", err)
				}
				entry.Pages = pages
			}
			entries = append(entries, entry)
		}

		if listJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(entries); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, e := range entries {
			pages := "-"
			if e.Pages > 0 {
				pages = fmt.Sprintf("%dp", e.Pages)
			}
			fmt.Printf("%s\t%s\t%s\t%s\n", e.Slug(), pages, e.Header.Title, strings.Join(e.Header.Tags, ","))
		}
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(listCmd)
}
