package lifecycle

import (
	"testing"

	"github.com/avisser/personal-site-backend/errs"
	"github.com/avisser/personal-site-backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestParseFieldPath(t *testing.T) {
	for _, path := range []string{
		"excerpt", "tags", "category",
		"seoMetadata.metaTitle", "seoMetadata.metaDescription", "seoMetadata.keywords",
	} {
		field, ok := ParseFieldPath(path)
		require.True(t, ok, path)
		assert.Equal(t, path, field.String())
	}

	for _, path := range []string{"", "title", "seoMetadata", "seoMetadata.slug", "Excerpt"} {
		_, ok := ParseFieldPath(path)
		assert.False(t, ok, path)
	}
}

func suggestedPost() (*models.BlogPost, *fakeStore, *Manager) {
	post := &models.BlogPost{
		ID:      uuid.New(),
		Slug:    "hello-world",
		Title:   "Hello World",
		Content: "original content",
		AISuggestions: &models.AISuggestions{
			Excerpt: &models.TextSuggestion{Value: "an excerpt", State: models.SuggestionPending},
			Tags: &models.TagSuggestion{
				Value: []string{"go", "backend"},
				State: models.SuggestionPending,
			},
			SEOMetadata: &models.SEOSuggestions{
				MetaTitle: &models.TextSuggestion{Value: "meta title", State: models.SuggestionPending},
			},
		},
	}
	store := newFakeStore(post)
	return post, store, NewManager(store)
}

func TestSaveSuggestionsMergesSlots(t *testing.T) {
	post, store, m := suggestedPost()

	partial := &models.AISuggestions{
		Excerpt: &models.TextSuggestion{Value: "fresh excerpt", State: models.SuggestionPending},
		SEOMetadata: &models.SEOSuggestions{
			Keywords: &models.ListSuggestion{Value: []string{"go", "api"}, State: models.SuggestionPending},
		},
	}
	require.NoError(t, m.SaveSuggestions(post, partial, "new content", "New Title"))

	s := post.AISuggestions
	assert.Equal(t, "fresh excerpt", s.Excerpt.Value, "provided top-level slot replaces the old one")
	assert.Equal(t, []string{"go", "backend"}, s.Tags.Value, "absent top-level slot is kept")
	require.NotNil(t, s.SEOMetadata.MetaTitle, "seoMetadata sub-slots merge, not replace")
	assert.Equal(t, "meta title", s.SEOMetadata.MetaTitle.Value)
	require.NotNil(t, s.SEOMetadata.Keywords)
	assert.Equal(t, []string{"go", "api"}, s.SEOMetadata.Keywords.Value)

	assert.Equal(t, "new content", post.LastAnalyzedContent)
	assert.Equal(t, "New Title", post.LastAnalyzedTitle)
	assert.Equal(t, 1, store.updates)
}

func TestSaveSuggestionsEmptyStillSnapshots(t *testing.T) {
	post, _, m := suggestedPost()
	post.Content = "edited since last analysis"

	require.NoError(t, m.SaveSuggestions(post, nil, post.Content, post.Title))
	assert.Equal(t, "edited since last analysis", post.LastAnalyzedContent)
	assert.False(t, post.NeedsReanalysis())
}

func TestApproveAndRejectCycle(t *testing.T) {
	post, _, m := suggestedPost()

	require.NoError(t, m.ApproveSuggestion(post, FieldExcerpt))
	assert.Equal(t, models.SuggestionApproved, post.AISuggestions.Excerpt.State)

	// The suggestion machine has no terminal state; reviews may flip back
	// and forth indefinitely.
	require.NoError(t, m.RejectSuggestion(post, FieldExcerpt))
	assert.Equal(t, models.SuggestionRejected, post.AISuggestions.Excerpt.State)
	require.NoError(t, m.ApproveSuggestion(post, FieldExcerpt))
	assert.Equal(t, models.SuggestionApproved, post.AISuggestions.Excerpt.State)
}

func TestRejectTagsAccumulates(t *testing.T) {
	post, _, m := suggestedPost()

	require.NoError(t, m.RejectSuggestion(post, FieldTags))
	assert.Equal(t, []string{"go", "backend"}, post.AISuggestions.Tags.RejectedTags)
	assert.Equal(t, models.SuggestionRejected, post.AISuggestions.Tags.State)

	// A later run suggests an overlapping set; rejection appends without
	// deduplication.
	post.AISuggestions.Tags.Value = []string{"backend", "web"}
	post.AISuggestions.Tags.State = models.SuggestionPending
	require.NoError(t, m.RejectSuggestion(post, FieldTags))
	assert.Equal(t, []string{"go", "backend", "backend", "web"}, post.AISuggestions.Tags.RejectedTags)
}

func TestReviewAbsentSlotFails(t *testing.T) {
	post, _, m := suggestedPost()

	err := m.ApproveSuggestion(post, FieldCategory)
	require.Error(t, err)
	assert.True(t, errs.IsSuggestionNotFound(err))

	err = m.RejectSuggestion(post, FieldSEOKeywords)
	require.Error(t, err)
	assert.True(t, errs.IsSuggestionNotFound(err))

	post.AISuggestions = nil
	err = m.ApproveSuggestion(post, FieldExcerpt)
	require.Error(t, err)
	assert.True(t, errs.IsSuggestionNotFound(err))
}

func TestClearSuggestion(t *testing.T) {
	post, store, m := suggestedPost()

	require.NoError(t, m.ClearSuggestion(post, FieldTags))
	assert.Nil(t, post.AISuggestions.Tags, "cleared slot is absent, not rejected")

	require.NoError(t, m.ClearSuggestion(post, FieldSEOMetaTitle))
	require.NotNil(t, post.AISuggestions.SEOMetadata, "emptied container stays in place")
	assert.Nil(t, post.AISuggestions.SEOMetadata.MetaTitle)

	// Clearing an absent slot is a no-op, not an error.
	updates := store.updates
	require.NoError(t, m.ClearSuggestion(post, FieldCategory))
	assert.Equal(t, updates+1, store.updates)
}

func TestResolvePublicPerField(t *testing.T) {
	post := &models.BlogPost{
		ID:      uuid.New(),
		Excerpt: "authored excerpt",
		Tags:    datatypes.JSONSlice[string]{"authored"},
		SEOMetadata: models.SEOMetadata{
			MetaTitle:       "authored title",
			MetaDescription: "authored description",
		},
		AISuggestions: &models.AISuggestions{
			Excerpt: &models.TextSuggestion{Value: "ai excerpt", State: models.SuggestionApproved},
			Tags:    &models.TagSuggestion{Value: []string{"ai-tag"}, State: models.SuggestionPending},
			SEOMetadata: &models.SEOSuggestions{
				MetaTitle:       &models.TextSuggestion{Value: "ai title", State: models.SuggestionRejected},
				MetaDescription: &models.TextSuggestion{Value: "ai description", State: models.SuggestionApproved},
			},
		},
	}

	view := ResolvePublic(post)
	assert.Equal(t, "ai excerpt", view.Excerpt, "approved slot overrides the authored value")
	assert.Equal(t, []string{"authored"}, view.Tags, "pending slot does not leak to readers")
	assert.Equal(t, "authored title", view.SEOMetadata.MetaTitle, "rejected slot falls back")
	assert.Equal(t, "ai description", view.SEOMetadata.MetaDescription)
}

func TestResolvePublicNoSuggestions(t *testing.T) {
	post := &models.BlogPost{
		Excerpt: "authored",
		Tags:    datatypes.JSONSlice[string]{"a", "b"},
	}
	view := ResolvePublic(post)
	assert.Equal(t, "authored", view.Excerpt)
	assert.Equal(t, []string{"a", "b"}, view.Tags)
}
