package lifecycle

import (
	"testing"
	"time"

	"github.com/avisser/personal-site-backend/errs"
	"github.com/avisser/personal-site-backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory PostStore for exercising the manager without a
// database.
type fakeStore struct {
	posts   map[uuid.UUID]*models.BlogPost
	updates int
}

func newFakeStore(posts ...*models.BlogPost) *fakeStore {
	s := &fakeStore{posts: make(map[uuid.UUID]*models.BlogPost)}
	for _, p := range posts {
		s.posts[p.ID] = p
	}
	return s
}

func (s *fakeStore) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	return s.posts[id], nil
}

func (s *fakeStore) Update(post *models.BlogPost) error {
	s.posts[post.ID] = post
	s.updates++
	return nil
}

func (s *fakeStore) CountSlug(slug string, excludeID uuid.UUID) (int64, error) {
	var count int64
	for _, p := range s.posts {
		if p.Slug == slug && p.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) IncrementViewCount(id uuid.UUID) error {
	post, ok := s.posts[id]
	if !ok {
		return errs.NewNotFoundError("blog post not found")
	}
	post.ViewCount++
	return nil
}

func draftPost() *models.BlogPost {
	return &models.BlogPost{
		ID:     uuid.New(),
		Slug:   "hello-world",
		Title:  "Hello World",
		Status: models.StatusDraft,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestPublish(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	post := draftPost()
	store := newFakeStore(post)
	m := NewManagerWithClock(store, fixedClock(now))

	require.NoError(t, m.Publish(post))
	assert.Equal(t, models.StatusPublished, post.Status)
	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, now, *post.PublishedAt)
	assert.Equal(t, now, post.UpdatedAt)
	assert.Equal(t, 1, store.updates)
}

func TestPublishTwiceFails(t *testing.T) {
	post := draftPost()
	store := newFakeStore(post)
	m := NewManager(store)

	require.NoError(t, m.Publish(post))
	firstPublishedAt := *post.PublishedAt

	err := m.Publish(post)
	require.Error(t, err)
	assert.True(t, errs.IsAlreadyPublished(err))
	assert.Equal(t, firstPublishedAt, *post.PublishedAt, "failed publish must not touch publishedAt")
	assert.Equal(t, 1, store.updates, "failed publish must not persist")
}

func TestUnpublishPreservesPublishedAt(t *testing.T) {
	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)
	post := draftPost()
	store := newFakeStore(post)

	require.NoError(t, NewManagerWithClock(store, fixedClock(first)).Publish(post))
	m := NewManagerWithClock(store, fixedClock(later))

	require.NoError(t, m.Unpublish(post))
	assert.Equal(t, models.StatusDraft, post.Status)
	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, first, *post.PublishedAt, "unpublish must not clear publishedAt")

	// Republishing keeps the original publication date.
	require.NoError(t, m.Publish(post))
	assert.Equal(t, first, *post.PublishedAt)
	assert.Equal(t, later, post.UpdatedAt)
}

func TestUnpublishRequiresPublished(t *testing.T) {
	post := draftPost()
	m := NewManager(newFakeStore(post))

	err := m.Unpublish(post)
	require.Error(t, err)
	assert.True(t, errs.IsNotPublished(err))
}

func TestArchiveIsTerminal(t *testing.T) {
	for _, from := range []string{models.StatusDraft, models.StatusPublished} {
		post := draftPost()
		post.Status = from
		store := newFakeStore(post)
		m := NewManager(store)

		require.NoError(t, m.Archive(post))
		assert.Equal(t, models.StatusArchived, post.Status)

		err := m.Publish(post)
		require.Error(t, err)
		assert.True(t, errs.IsArchivedImmutable(err), "publish from archived must fail, prior status %s", from)

		err = m.Unpublish(post)
		require.Error(t, err)
		assert.True(t, errs.IsNotPublished(err))

		err = m.Archive(post)
		require.Error(t, err)
		assert.True(t, errs.IsAlreadyArchived(err))
	}
}

func TestRecordView(t *testing.T) {
	post := draftPost()
	store := newFakeStore(post)
	m := NewManager(store)

	require.NoError(t, m.RecordView(post.ID))
	require.NoError(t, m.RecordView(post.ID))
	assert.Equal(t, int64(2), post.ViewCount)

	err := m.RecordView(uuid.New())
	assert.Error(t, err)
}

func TestIsSlugAvailable(t *testing.T) {
	post := draftPost()
	other := draftPost()
	other.Slug = "other-post"
	store := newFakeStore(post, other)
	m := NewManager(store)

	available, err := m.IsSlugAvailable("fresh-slug", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, available)

	available, err = m.IsSlugAvailable("hello-world", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, available)

	// A post may keep its own slug on update.
	available, err = m.IsSlugAvailable("hello-world", post.ID)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestAssignSlug(t *testing.T) {
	existing := draftPost()
	store := newFakeStore(existing)
	m := NewManager(store)

	t.Run("generated from title", func(t *testing.T) {
		post := &models.BlogPost{ID: uuid.New(), Title: "Hello, World! 2024"}
		require.NoError(t, m.AssignSlug(post, ""))
		assert.Equal(t, "hello-world-2024", post.Slug)
	})

	t.Run("explicit slug kept", func(t *testing.T) {
		post := &models.BlogPost{ID: uuid.New(), Title: "Whatever"}
		require.NoError(t, m.AssignSlug(post, "custom-slug"))
		assert.Equal(t, "custom-slug", post.Slug)
	})

	t.Run("duplicate rejected", func(t *testing.T) {
		post := &models.BlogPost{ID: uuid.New(), Title: "Whatever"}
		err := m.AssignSlug(post, "hello-world")
		require.Error(t, err)
		assert.True(t, errs.IsDuplicateSlug(err))
		assert.Empty(t, post.Slug, "failed assignment must not set the slug")
	})

	t.Run("own slug allowed on update", func(t *testing.T) {
		require.NoError(t, m.AssignSlug(existing, "hello-world"))
		assert.Equal(t, "hello-world", existing.Slug)
	})

	t.Run("invalid format rejected", func(t *testing.T) {
		post := &models.BlogPost{ID: uuid.New(), Title: "Whatever"}
		err := m.AssignSlug(post, "Bad Slug")
		require.Error(t, err)
		assert.True(t, errs.IsInvalidSlugFormat(err))
	})
}
