package models

// Suggestion approval states. Unlike post status, this machine has no
// terminal state: a slot may move between approved and rejected repeatedly
// as the author re-evaluates it.
const (
	SuggestionPending  = "pending"
	SuggestionApproved = "approved"
	SuggestionRejected = "rejected"
)

// TextSuggestion is an AI-generated candidate value for a single text field.
type TextSuggestion struct {
	Value string `json:"value"`
	State string `json:"state"`
}

// ListSuggestion is an AI-generated candidate value for a list field
// (SEO keywords).
type ListSuggestion struct {
	Value []string `json:"value"`
	State string   `json:"state"`
}

// TagSuggestion is the candidate tag list. RejectedTags accumulates every
// value that was on the slot when it was rejected, so the analysis step can
// avoid re-suggesting them. Entries are appended as-is, duplicates included.
type TagSuggestion struct {
	Value        []string `json:"value"`
	State        string   `json:"state"`
	RejectedTags []string `json:"rejectedTags,omitempty"`
}

// SEOSuggestions groups the per-subfield SEO suggestion slots. Sub-slots are
// merged individually when new suggestions are saved.
type SEOSuggestions struct {
	MetaTitle       *TextSuggestion `json:"metaTitle,omitempty"`
	MetaDescription *TextSuggestion `json:"metaDescription,omitempty"`
	Keywords        *ListSuggestion `json:"keywords,omitempty"`
}

// AISuggestions is the sparse record of suggestion slots on a post. A nil
// slot means "no suggestion for that field", which is distinct from a slot
// in the rejected state. The JSON shape is persisted verbatim (jsonb) and
// must not change.
type AISuggestions struct {
	Excerpt     *TextSuggestion `json:"excerpt,omitempty"`
	Tags        *TagSuggestion  `json:"tags,omitempty"`
	Category    *TextSuggestion `json:"category,omitempty"`
	SEOMetadata *SEOSuggestions `json:"seoMetadata,omitempty"`
}

// IsEmpty reports whether no slot is populated.
func (s *AISuggestions) IsEmpty() bool {
	if s == nil {
		return true
	}
	if s.Excerpt != nil || s.Tags != nil || s.Category != nil {
		return false
	}
	if s.SEOMetadata == nil {
		return true
	}
	return s.SEOMetadata.MetaTitle == nil && s.SEOMetadata.MetaDescription == nil && s.SEOMetadata.Keywords == nil
}
