package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project represents a portfolio project entry
type Project struct {
	ID          uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title       string                      `json:"title" db:"title" gorm:"type:text;not null;unique"`
	Description string                      `json:"description" db:"description" gorm:"type:text;not null"`
	GithubLink  string                      `json:"github_link" db:"github_link" gorm:"type:text"`
	DemoLink    string                      `json:"demo_link" db:"demo_link" gorm:"type:text"`
	Type        string                      `json:"type" db:"type" gorm:"type:text;not null"`
	GifLink     *string                     `json:"gif_link,omitempty" db:"gif_link" gorm:"type:text"`
	Stack       datatypes.JSONSlice[string] `json:"stack" db:"stack" gorm:"type:jsonb"`
}
