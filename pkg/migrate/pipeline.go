package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/paperloam/pkg/core"
)

// DefaultImportedTag marks items that were already migrated.
const DefaultImportedTag = "notable-imported"

// Config holds the pipeline settings.
type Config struct {
	// ImportedTag is added to finalized items and excludes them from selection.
	ImportedTag string
	// ExcludedTags are library tags that are not copied onto the note.
	ExcludedTags []string
	Logger       *slog.Logger
}

// Pipeline moves library items into a vault, one at a time.
//
// Per item the stages are:
//  1. Validate: exactly one PDF attachment, otherwise skip.
//  2. Download: write <slug>.pdf unless it already exists (skip).
//  3. Write note: write <slug>.md unless it already exists (skip).
//  4. Finalize: tag the item, then delete the PDF attachment remotely.
//
// Any error from the library or the vault aborts the run. Only the three
// skip conditions are tolerated.
type Pipeline struct {
	library core.Library
	vault   core.Vault
	config  Config
	logger  *slog.Logger

	mu   sync.RWMutex
	last *Report
}

// New creates a Pipeline.
func New(library core.Library, vault core.Vault, config Config) *Pipeline {
	if config.ImportedTag == "" {
		config.ImportedTag = DefaultImportedTag
	}
	if config.ExcludedTags == nil {
		config.ExcludedTags = DefaultExcludedTags
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		library: library,
		vault:   vault,
		config:  config,
		logger:  logger,
	}
}

// Run performs one full pass. On error the partial report is returned with it.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	var report Report
	defer p.record(&report)

	items, err := p.library.ListTop(ctx, p.config.ImportedTag)
	if err != nil {
		return report, fmt.Errorf("failed to list candidates: %w", err)
	}
	report.Candidates = len(items)
	p.logger.Info("found candidates", "count", len(items))

	for _, item := range items {
		res, err := p.Process(ctx, item)
		report.Results = append(report.Results, res)
		if err != nil {
			return report, fmt.Errorf("item %s: %w", item.Key, err)
		}
	}

	p.logger.Info("all done",
		"finalized", report.Count(StageFinalized),
		"skipped", report.Count(StageSkipped),
	)
	return report, nil
}

// Process runs a single item through every stage.
func (p *Pipeline) Process(ctx context.Context, item core.Item) (Result, error) {
	res := Result{ItemKey: item.Key, Title: item.Title, Stage: StageSelected}
	log := p.logger.With("item", item.Key)
	log.Info("processing", "title", item.Title)

	// 1. Validate
	pdf, count, err := p.validate(ctx, item)
	res.PDFs = count
	if err != nil {
		return res, err
	}
	if count != 1 {
		log.Warn("item does not have exactly one PDF attachment, skipping", "pdfs", count)
		return skip(res, SkipAttachmentCount), nil
	}
	res.Stage = StageValidated
	res.Slug = Slug(item.DisplayTitle(), item.URL)
	log = log.With("slug", res.Slug)

	// 2. Download
	pdfName := res.Slug + ".pdf"
	exists, err := p.vault.Exists(ctx, core.AreaAttachments, pdfName)
	if err != nil {
		return res, fmt.Errorf("failed to check attachment: %w", err)
	}
	if exists {
		log.Warn("attachment already exists, skipping item", "path", p.vault.Path(core.AreaAttachments, pdfName))
		return skip(res, SkipAttachmentExists), nil
	}
	log.Info("downloading PDF", "path", p.vault.Path(core.AreaAttachments, pdfName))
	data, err := p.library.FetchBytes(ctx, pdf.Key)
	if err != nil {
		return res, fmt.Errorf("failed to download attachment %s: %w", pdf.Key, err)
	}
	if err := p.vault.WriteBytes(ctx, core.AreaAttachments, pdfName, data); err != nil {
		return res, fmt.Errorf("failed to write attachment: %w", err)
	}
	res.Stage = StageDownloaded

	// 3. Write note
	log.Debug("building markdown")
	text := ComposeNote(item, DeriveTags(item.Tags, p.config.ExcludedTags), pdfName)
	noteName := res.Slug + ".md"
	exists, err = p.vault.Exists(ctx, core.AreaNotes, noteName)
	if err != nil {
		return res, fmt.Errorf("failed to check note: %w", err)
	}
	if exists {
		log.Warn("note already exists, skipping item", "path", p.vault.Path(core.AreaNotes, noteName))
		return skip(res, SkipNoteExists), nil
	}
	log.Info("writing note", "path", p.vault.Path(core.AreaNotes, noteName))
	if err := p.vault.WriteText(ctx, core.AreaNotes, noteName, text); err != nil {
		return res, fmt.Errorf("failed to write note: %w", err)
	}
	res.Stage = StageNoteWritten

	// 4. Finalize. The tag goes first: once it is set the item is never
	// selected again, even if the delete below fails.
	log.Info("adding tag", "tag", p.config.ImportedTag)
	if err := p.library.AddTag(ctx, item, p.config.ImportedTag); err != nil {
		return res, fmt.Errorf("failed to tag item: %w", err)
	}
	log.Info("deleting remote PDF attachment", "attachment", pdf.Key)
	if err := p.library.DeleteAttachment(ctx, pdf); err != nil {
		return res, fmt.Errorf("failed to delete attachment %s: %w", pdf.Key, err)
	}
	res.Stage = StageFinalized

	return res, nil
}

func (p *Pipeline) validate(ctx context.Context, item core.Item) (core.Attachment, int, error) {
	children, err := p.library.ListAttachments(ctx, item.Key)
	if err != nil {
		return core.Attachment{}, 0, fmt.Errorf("failed to list attachments: %w", err)
	}
	var pdfs []core.Attachment
	for _, c := range children {
		if c.ContentType == core.ContentTypePDF {
			pdfs = append(pdfs, c)
		}
	}
	if len(pdfs) != 1 {
		return core.Attachment{}, len(pdfs), nil
	}
	return pdfs[0], 1, nil
}

func skip(res Result, reason SkipReason) Result {
	res.Stage = StageSkipped
	res.Reason = reason
	return res
}

func (p *Pipeline) record(r *Report) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := *r
	p.last = &cp
}
