package database

import (
	"github.com/avisser/personal-site-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogCategoryRepo struct {
	db *gorm.DB
}

func NewBlogCategoryRepo(db *gorm.DB) *BlogCategoryRepo {
	return &BlogCategoryRepo{db}
}

// FindAll returns all categories ordered by name
func (r *BlogCategoryRepo) FindAll() ([]*models.BlogCategory, error) {
	var categories []*models.BlogCategory
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// FindByID returns a category by its ID, or nil when it does not exist.
func (r *BlogCategoryRepo) FindByID(id uuid.UUID) (*models.BlogCategory, error) {
	var category models.BlogCategory
	err := r.db.First(&category, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Add inserts a new category into the database
func (r *BlogCategoryRepo) Add(category *models.BlogCategory) error {
	return r.db.Create(category).Error
}

// Update saves the full category record
func (r *BlogCategoryRepo) Update(category *models.BlogCategory) error {
	return r.db.Save(category).Error
}

// Delete removes a category by id. Posts referencing it are left untouched;
// the reference is loose by design.
func (r *BlogCategoryRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.BlogCategory{}, "id = ?", id).Error
}

// CountSlug counts categories holding slug, excluding excludeID.
func (r *BlogCategoryRepo) CountSlug(slug string, excludeID uuid.UUID) (int64, error) {
	q := r.db.Model(&models.BlogCategory{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

// RecomputePostCounts refreshes the cached published-post count for every
// category. Run periodically by the recount job, not on each post write.
func (r *BlogCategoryRepo) RecomputePostCounts() error {
	return r.db.Exec(`
		UPDATE blog_categories c
		SET post_count = (
			SELECT COUNT(*) FROM blog_posts p
			WHERE p.category_id = c.id AND p.status = ?
		)`, models.StatusPublished).Error
}
