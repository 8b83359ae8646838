package migrate

// Stage is the furthest point an item reached in a run.
type Stage string

const (
	StageSelected    Stage = "selected"
	StageValidated   Stage = "validated"
	StageDownloaded  Stage = "downloaded"
	StageNoteWritten Stage = "note_written"
	StageFinalized   Stage = "finalized"
	StageSkipped     Stage = "skipped"
)

// SkipReason explains why an item stopped in StageSkipped.
type SkipReason string

const (
	// SkipAttachmentCount: the item has zero or several PDF attachments.
	// The item is untouched and will be selected again next run.
	SkipAttachmentCount SkipReason = "attachment_count"

	// SkipAttachmentExists: the PDF file is already in the vault.
	// Nothing is fetched or written; the item is skipped identically on every
	// run until the file is removed or the item is tagged by hand.
	SkipAttachmentExists SkipReason = "attachment_exists"

	// SkipNoteExists: the note file is already in the vault.
	// The PDF written in this run stays; the item is not finalized.
	SkipNoteExists SkipReason = "note_exists"
)

// Result records what happened to a single item.
type Result struct {
	ItemKey string
	Title   string
	Slug    string
	Stage   Stage
	Reason  SkipReason
	PDFs    int
}

// Skipped reports whether the item ended in StageSkipped.
func (r Result) Skipped() bool {
	return r.Stage == StageSkipped
}

// Report is the outcome of one pass over the library.
type Report struct {
	Candidates int
	Results    []Result
}

// Count returns the number of results that ended in the given stage.
func (r Report) Count(stage Stage) int {
	n := 0
	for _, res := range r.Results {
		if res.Stage == stage {
			n++
		}
	}
	return n
}

// SkippedBy returns the number of results skipped for the given reason.
func (r Report) SkippedBy(reason SkipReason) int {
	n := 0
	for _, res := range r.Results {
		if res.Skipped() && res.Reason == reason {
			n++
		}
	}
	return n
}
