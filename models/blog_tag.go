package models

import "github.com/google/uuid"

// BlogTag represents a tag that posts may reference by slug. The reference is
// loose; a post's tag list is its own jsonb column and is not constrained by
// this table.
type BlogTag struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Slug string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Name string    `json:"name" db:"name" gorm:"type:text;not null"`
	// PostCount is a cached count of published posts carrying this tag,
	// recomputed periodically by the recount job.
	PostCount int `json:"postCount" db:"post_count" gorm:"type:integer;not null;default:0"`
}
