package database

import (
	"github.com/avisser/personal-site-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// PostFilter narrows FindAll. Zero values mean "no constraint".
type PostFilter struct {
	Status     string
	CategoryID *uuid.UUID
	Tag        string
	Featured   *bool
}

// FindAll returns posts matching the filter, most recently published first,
// drafts and archived posts by last update.
func (r *BlogPostRepo) FindAll(filter PostFilter) ([]*models.BlogPost, error) {
	q := r.db.Model(&models.BlogPost{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Tag != "" {
		q = q.Where("tags @> ?", `["`+filter.Tag+`"]`)
	}
	if filter.Featured != nil {
		q = q.Where("featured = ?", *filter.Featured)
	}

	var posts []*models.BlogPost
	err := q.Order("published_at DESC NULLS LAST, updated_at DESC").Find(&posts).Error
	return posts, err
}

// FindByID returns a post by its ID, or nil when it does not exist.
func (r *BlogPostRepo) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.First(&post, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindBySlug returns a post by its slug, or nil when it does not exist.
func (r *BlogPostRepo) FindBySlug(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.First(&post, "slug = ?", slug).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Add inserts a new blog post into the database
func (r *BlogPostRepo) Add(post *models.BlogPost) error {
	return r.db.Create(post).Error
}

// Update saves the full post record
func (r *BlogPostRepo) Update(post *models.BlogPost) error {
	return r.db.Save(post).Error
}

// Delete removes a blog post from the database by id
func (r *BlogPostRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.BlogPost{}, "id = ?", id).Error
}

// CountSlug counts posts holding slug, excluding excludeID so an update can
// keep its own slug. Pass uuid.Nil to exclude nothing.
func (r *BlogPostRepo) CountSlug(slug string, excludeID uuid.UUID) (int64, error) {
	q := r.db.Model(&models.BlogPost{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

// IncrementViewCount bumps the view counter in a single UPDATE so the count
// stays monotonic under concurrent requests.
func (r *BlogPostRepo) IncrementViewCount(id uuid.UUID) error {
	result := r.db.Model(&models.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
