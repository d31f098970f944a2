package database

import (
	"github.com/avisser/personal-site-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogTagRepo struct {
	db *gorm.DB
}

func NewBlogTagRepo(db *gorm.DB) *BlogTagRepo {
	return &BlogTagRepo{db}
}

// FindAll returns all blog tags ordered by name
func (r *BlogTagRepo) FindAll() ([]*models.BlogTag, error) {
	var tags []*models.BlogTag
	err := r.db.Order("name ASC").Find(&tags).Error
	return tags, err
}

// FindByID returns a tag by its ID, or nil when it does not exist.
func (r *BlogTagRepo) FindByID(id uuid.UUID) (*models.BlogTag, error) {
	var tag models.BlogTag
	err := r.db.First(&tag, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Add inserts a new blog tag into the database
func (r *BlogTagRepo) Add(tag *models.BlogTag) error {
	return r.db.Create(tag).Error
}

// Update saves the full tag record
func (r *BlogTagRepo) Update(tag *models.BlogTag) error {
	return r.db.Save(tag).Error
}

// Delete removes a tag by id. Posts carry their tag lists inline, so nothing
// cascades.
func (r *BlogTagRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.BlogTag{}, "id = ?", id).Error
}

// CountSlug counts tags holding slug, excluding excludeID.
func (r *BlogTagRepo) CountSlug(slug string, excludeID uuid.UUID) (int64, error) {
	q := r.db.Model(&models.BlogTag{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

// RecomputePostCounts refreshes the cached published-post count for every
// tag. Post tag lists are jsonb arrays, so membership uses the containment
// operator.
func (r *BlogTagRepo) RecomputePostCounts() error {
	return r.db.Exec(`
		UPDATE blog_tags t
		SET post_count = (
			SELECT COUNT(*) FROM blog_posts p
			WHERE p.tags @> to_jsonb(ARRAY[t.slug]) AND p.status = ?
		)`, models.StatusPublished).Error
}
