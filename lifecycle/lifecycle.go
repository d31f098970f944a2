// Package lifecycle owns the blog post status state machine, slug assignment
// and the AI metadata suggestion workflow. It is pure record logic: all I/O
// goes through the injected PostStore, and the clock is injectable so tests
// can pin timestamps.
package lifecycle

import (
	"time"

	"github.com/avisser/personal-site-backend/errs"
	"github.com/avisser/personal-site-backend/models"
	"github.com/google/uuid"
)

// PostStore is the slice of persistence the lifecycle manager needs. The
// production implementation is database.BlogPostRepo.
type PostStore interface {
	FindByID(id uuid.UUID) (*models.BlogPost, error)
	Update(post *models.BlogPost) error
	CountSlug(slug string, excludeID uuid.UUID) (int64, error)
	IncrementViewCount(id uuid.UUID) error
}

// Manager applies lifecycle transitions to posts and persists the result.
// It performs no locking: the store provides per-record atomicity and the
// single-operator usage pattern accepts last-write-wins on concurrent edits.
type Manager struct {
	store PostStore
	now   func() time.Time
}

func NewManager(store PostStore) *Manager {
	return &Manager{store: store, now: time.Now}
}

// NewManagerWithClock is used by tests that need a deterministic clock.
func NewManagerWithClock(store PostStore, now func() time.Time) *Manager {
	return &Manager{store: store, now: now}
}

// Publish moves a draft post to published. PublishedAt is set exactly once:
// a post that was published before keeps its original publication date across
// unpublish/republish cycles, so chronological listings stay stable.
func (m *Manager) Publish(post *models.BlogPost) error {
	switch post.Status {
	case models.StatusPublished:
		return errs.NewAlreadyPublishedError()
	case models.StatusArchived:
		return errs.NewArchivedImmutableError()
	}

	now := m.now()
	post.Status = models.StatusPublished
	if post.PublishedAt == nil {
		post.PublishedAt = &now
	}
	post.UpdatedAt = now
	return m.store.Update(post)
}

// Unpublish returns a published post to draft. PublishedAt is left untouched.
func (m *Manager) Unpublish(post *models.BlogPost) error {
	if post.Status != models.StatusPublished {
		return errs.NewNotPublishedError()
	}

	post.Status = models.StatusDraft
	post.UpdatedAt = m.now()
	return m.store.Update(post)
}

// Archive moves a post to the terminal archived state. Archived posts stay
// editable but can never be published or unpublished again.
func (m *Manager) Archive(post *models.BlogPost) error {
	if post.Status == models.StatusArchived {
		return errs.NewAlreadyArchivedError()
	}

	post.Status = models.StatusArchived
	post.UpdatedAt = m.now()
	return m.store.Update(post)
}

// RecordView increments the post's view counter. The store performs this as
// a single UPDATE so the counter stays monotonic under concurrent views.
func (m *Manager) RecordView(id uuid.UUID) error {
	return m.store.IncrementViewCount(id)
}

// IsSlugAvailable reports whether no post other than excludeID holds the
// slug. Passing the post's own ID lets an update keep its current slug.
func (m *Manager) IsSlugAvailable(slug string, excludeID uuid.UUID) (bool, error) {
	count, err := m.store.CountSlug(slug, excludeID)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// AssignSlug sets the post's slug, deriving one from the title when requested
// is empty, and enforces format and uniqueness.
func (m *Manager) AssignSlug(post *models.BlogPost, requested string) error {
	slug := requested
	if slug == "" {
		slug = GenerateSlug(post.Title)
	}
	if err := ValidateSlug(slug); err != nil {
		return err
	}

	available, err := m.IsSlugAvailable(slug, post.ID)
	if err != nil {
		return err
	}
	if !available {
		return errs.NewDuplicateSlugError(slug)
	}

	post.Slug = slug
	return nil
}
