package lifecycle

import (
	"github.com/avisser/personal-site-backend/errs"
	"github.com/avisser/personal-site-backend/models"
)

// Field identifies one AI suggestion slot. Keeping this a closed enum (rather
// than splitting dotted paths at runtime) makes a malformed path unrepresentable
// past the API boundary.
type Field int

const (
	FieldExcerpt Field = iota
	FieldTags
	FieldCategory
	FieldSEOMetaTitle
	FieldSEOMetaDescription
	FieldSEOKeywords
)

var fieldPaths = map[Field]string{
	FieldExcerpt:            "excerpt",
	FieldTags:               "tags",
	FieldCategory:           "category",
	FieldSEOMetaTitle:       "seoMetadata.metaTitle",
	FieldSEOMetaDescription: "seoMetadata.metaDescription",
	FieldSEOKeywords:        "seoMetadata.keywords",
}

// String returns the dotted field path used on the wire.
func (f Field) String() string {
	return fieldPaths[f]
}

// ParseFieldPath maps a dotted field path to its Field. The second return is
// false for any path that does not name a suggestion slot.
func ParseFieldPath(path string) (Field, bool) {
	for f, p := range fieldPaths {
		if p == path {
			return f, true
		}
	}
	return 0, false
}

// slotState returns a pointer to the state of the addressed slot, or nil when
// the slot (or its parent container) is absent.
func slotState(s *models.AISuggestions, f Field) *string {
	if s == nil {
		return nil
	}
	switch f {
	case FieldExcerpt:
		if s.Excerpt != nil {
			return &s.Excerpt.State
		}
	case FieldTags:
		if s.Tags != nil {
			return &s.Tags.State
		}
	case FieldCategory:
		if s.Category != nil {
			return &s.Category.State
		}
	case FieldSEOMetaTitle:
		if s.SEOMetadata != nil && s.SEOMetadata.MetaTitle != nil {
			return &s.SEOMetadata.MetaTitle.State
		}
	case FieldSEOMetaDescription:
		if s.SEOMetadata != nil && s.SEOMetadata.MetaDescription != nil {
			return &s.SEOMetadata.MetaDescription.State
		}
	case FieldSEOKeywords:
		if s.SEOMetadata != nil && s.SEOMetadata.Keywords != nil {
			return &s.SEOMetadata.Keywords.State
		}
	}
	return nil
}

// SaveSuggestions merges newly generated suggestion slots into the post.
// Provided top-level slots fully replace existing ones; provided seoMetadata
// sub-slots are merged into the existing seoMetadata container rather than
// replacing it wholesale. The analysis snapshots are always overwritten, even
// when the suggestion set is partial or empty.
func (m *Manager) SaveSuggestions(post *models.BlogPost, partial *models.AISuggestions, currentContent, currentTitle string) error {
	if post.AISuggestions == nil {
		post.AISuggestions = &models.AISuggestions{}
	}
	if partial != nil {
		if partial.Excerpt != nil {
			post.AISuggestions.Excerpt = partial.Excerpt
		}
		if partial.Tags != nil {
			post.AISuggestions.Tags = partial.Tags
		}
		if partial.Category != nil {
			post.AISuggestions.Category = partial.Category
		}
		if partial.SEOMetadata != nil {
			if post.AISuggestions.SEOMetadata == nil {
				post.AISuggestions.SEOMetadata = &models.SEOSuggestions{}
			}
			if partial.SEOMetadata.MetaTitle != nil {
				post.AISuggestions.SEOMetadata.MetaTitle = partial.SEOMetadata.MetaTitle
			}
			if partial.SEOMetadata.MetaDescription != nil {
				post.AISuggestions.SEOMetadata.MetaDescription = partial.SEOMetadata.MetaDescription
			}
			if partial.SEOMetadata.Keywords != nil {
				post.AISuggestions.SEOMetadata.Keywords = partial.SEOMetadata.Keywords
			}
		}
	}

	post.LastAnalyzedContent = currentContent
	post.LastAnalyzedTitle = currentTitle
	post.UpdatedAt = m.now()
	return m.store.Update(post)
}

// ApproveSuggestion marks the addressed slot approved. Re-approving a
// rejected slot is allowed; the suggestion machine has no terminal state.
func (m *Manager) ApproveSuggestion(post *models.BlogPost, field Field) error {
	state := slotState(post.AISuggestions, field)
	if state == nil {
		return errs.NewSuggestionNotFoundError(field.String())
	}
	*state = models.SuggestionApproved
	post.UpdatedAt = m.now()
	return m.store.Update(post)
}

// RejectSuggestion marks the addressed slot rejected. Rejecting the tags slot
// additionally appends the slot's current values to rejectedTags so the
// analysis step will not suggest them again. The list accumulates as-is:
// rejecting the same value twice records it twice.
func (m *Manager) RejectSuggestion(post *models.BlogPost, field Field) error {
	state := slotState(post.AISuggestions, field)
	if state == nil {
		return errs.NewSuggestionNotFoundError(field.String())
	}
	if field == FieldTags {
		tags := post.AISuggestions.Tags
		tags.RejectedTags = append(tags.RejectedTags, tags.Value...)
	}
	*state = models.SuggestionRejected
	post.UpdatedAt = m.now()
	return m.store.Update(post)
}

// ClearSuggestion deletes the addressed slot entirely, reverting the field to
// "no suggestion", which is distinct from a rejected one. Clearing an absent
// slot is a no-op. Parent containers are left in place even when emptied so
// the persisted shape matches what earlier writes produced.
func (m *Manager) ClearSuggestion(post *models.BlogPost, field Field) error {
	if s := post.AISuggestions; s != nil {
		switch field {
		case FieldExcerpt:
			s.Excerpt = nil
		case FieldTags:
			s.Tags = nil
		case FieldCategory:
			s.Category = nil
		case FieldSEOMetaTitle:
			if s.SEOMetadata != nil {
				s.SEOMetadata.MetaTitle = nil
			}
		case FieldSEOMetaDescription:
			if s.SEOMetadata != nil {
				s.SEOMetadata.MetaDescription = nil
			}
		case FieldSEOKeywords:
			if s.SEOMetadata != nil {
				s.SEOMetadata.Keywords = nil
			}
		}
	}
	post.UpdatedAt = m.now()
	return m.store.Update(post)
}

// PublicView is the reader-facing resolution of a post's suggestible fields:
// each field independently takes the AI value only when that slot is
// approved, falling back to the authored value otherwise.
type PublicView struct {
	Excerpt     string             `json:"excerpt"`
	Tags        []string           `json:"tags"`
	SEOMetadata models.SEOMetadata `json:"seoMetadata"`
}

// ResolvePublic applies the per-field approval rule. Mixed approval states on
// one post are expected; resolution never happens post-wide.
func ResolvePublic(post *models.BlogPost) PublicView {
	view := PublicView{
		Excerpt:     post.Excerpt,
		Tags:        []string(post.Tags),
		SEOMetadata: post.SEOMetadata,
	}

	s := post.AISuggestions
	if s == nil {
		return view
	}
	if s.Excerpt != nil && s.Excerpt.State == models.SuggestionApproved {
		view.Excerpt = s.Excerpt.Value
	}
	if s.Tags != nil && s.Tags.State == models.SuggestionApproved {
		view.Tags = s.Tags.Value
	}
	if seo := s.SEOMetadata; seo != nil {
		if seo.MetaTitle != nil && seo.MetaTitle.State == models.SuggestionApproved {
			view.SEOMetadata.MetaTitle = seo.MetaTitle.Value
		}
		if seo.MetaDescription != nil && seo.MetaDescription.State == models.SuggestionApproved {
			view.SEOMetadata.MetaDescription = seo.MetaDescription.Value
		}
		if seo.Keywords != nil && seo.Keywords.State == models.SuggestionApproved {
			view.SEOMetadata.Keywords = seo.Keywords.Value
		}
	}
	return view
}
