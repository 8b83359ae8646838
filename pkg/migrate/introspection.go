package migrate

import (
	"github.com/aretw0/introspection"
)

// PipelineState exposes the pipeline configuration and last run for observability.
type PipelineState struct {
	ImportedTag  string             `json:"imported_tag"`
	ExcludedTags []string           `json:"excluded_tags"`
	VaultType    string             `json:"vault_type"`
	LibraryType  string             `json:"library_type"`
	Candidates   int                `json:"candidates"`
	Stages       map[Stage]int      `json:"stages,omitempty"`
	Skips        map[SkipReason]int `json:"skips,omitempty"`
}

// State implements introspection.Introspectable.
func (p *Pipeline) State() any {
	p.mu.RLock()
	defer p.mu.RUnlock()

	state := PipelineState{
		ImportedTag:  p.config.ImportedTag,
		ExcludedTags: p.config.ExcludedTags,
		VaultType:    componentType(p.vault),
		LibraryType:  componentType(p.library),
	}
	if p.last != nil {
		state.Candidates = p.last.Candidates
		state.Stages = make(map[Stage]int)
		state.Skips = make(map[SkipReason]int)
		for _, res := range p.last.Results {
			state.Stages[res.Stage]++
			if res.Skipped() {
				state.Skips[res.Reason]++
			}
		}
	}
	return state
}

// ComponentType implements introspection.Component.
func (p *Pipeline) ComponentType() string {
	return "pipeline"
}

func componentType(v any) string {
	if comp, ok := v.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return "unknown"
}

var _ introspection.Introspectable = (*Pipeline)(nil)
var _ introspection.Component = (*Pipeline)(nil)
