package models

import "github.com/google/uuid"

// BlogCategory represents a blog post category. Posts reference categories
// loosely: deleting a category does not touch posts pointing at it.
type BlogCategory struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Slug        string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Description string    `json:"description" db:"description" gorm:"type:text"`
	// PostCount is a cached count of published posts in this category,
	// recomputed periodically by the recount job rather than maintained
	// transactionally.
	PostCount int `json:"postCount" db:"post_count" gorm:"type:integer;not null;default:0"`
}
