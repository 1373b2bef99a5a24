// Package script handles the structural side of a short-form video script:
// segmenting it into rhetorical sections, bounding long sections into
// rewrite-sized chunks, and serializing scene records from the video
// pipeline into the plain-text script format.
package script

// SectionType identifies the rhetorical function of a script section.
type SectionType string

const (
	SectionHook          SectionType = "hook"
	SectionBackstory     SectionType = "backstory"
	SectionBreakingPoint SectionType = "breaking_point"
	SectionTakeaway      SectionType = "takeaway"
	SectionCTA           SectionType = "cta"
	SectionTransition    SectionType = "transition"

	// SectionFullScript is the fallback when structure inference fails:
	// the entire script processed as one section.
	SectionFullScript SectionType = "full_script"
)

// Section is one coherent rhetorical unit of a script. Order within a
// script is significant and must be preserved through the pipeline.
type Section struct {
	Type        SectionType `json:"type"`
	Description string      `json:"description"`
	Content     string      `json:"content"`
}
