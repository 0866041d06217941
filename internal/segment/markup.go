package segment

import (
	"html"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/microcosm-cc/bluemonday"
)

// MarkupFilter removes HTML tags and decodes entities, leaving plain text.
type MarkupFilter struct {
	policy *bluemonday.Policy
}

var _ analysis.CharFilter = (*MarkupFilter)(nil)

// NewMarkupFilter creates a filter that keeps no elements at all.
func NewMarkupFilter() *MarkupFilter {
	return &MarkupFilter{policy: bluemonday.StrictPolicy()}
}

// Filter implements analysis.CharFilter.
func (f *MarkupFilter) Filter(input []byte) []byte {
	// The policy escapes text it keeps; undo that so sentences read as written.
	return []byte(html.UnescapeString(string(f.policy.SanitizeBytes(input))))
}
