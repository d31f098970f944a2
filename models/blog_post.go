package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Post status values. Posts are created as drafts and move through the
// publish/archive transitions in the lifecycle package; nothing else may
// write Status.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// BlogPost represents a complete blog post with metadata
type BlogPost struct {
	ID                  uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Slug                string                      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Title               string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Excerpt             string                      `json:"excerpt" db:"excerpt" gorm:"type:text"`
	Content             string                      `json:"content" db:"content" gorm:"type:text;not null"`
	Author              string                      `json:"author" db:"author" gorm:"type:text;not null"`
	Tags                datatypes.JSONSlice[string] `json:"tags" db:"tags" gorm:"type:jsonb"`
	ReadingTimeMinutes  int                         `json:"readingTimeMinutes" db:"reading_time_minutes" gorm:"type:integer;not null;default:1"`
	CoverImageURL       *string                     `json:"coverImageUrl,omitempty" db:"cover_image_url" gorm:"type:text"`
	CategoryID          *uuid.UUID                  `json:"categoryId,omitempty" db:"category_id" gorm:"type:uuid;index"`
	Status              string                      `json:"status" db:"status" gorm:"type:text;not null;default:draft;index"`
	ViewCount           int64                       `json:"viewCount" db:"view_count" gorm:"type:bigint;not null;default:0"`
	Featured            bool                        `json:"featured" db:"featured" gorm:"not null;default:false"`
	PublishedAt         *time.Time                  `json:"publishedAt,omitempty" db:"published_at" gorm:"type:timestamptz"`
	CreatedAt           time.Time                   `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt           time.Time                   `json:"updatedAt" db:"updated_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	SEOMetadata         SEOMetadata                 `json:"seoMetadata" db:"seo_metadata" gorm:"type:jsonb;serializer:json"`
	AISuggestions       *AISuggestions              `json:"aiSuggestions,omitempty" db:"ai_suggestions" gorm:"type:jsonb;serializer:json"`
	LastAnalyzedContent string                      `json:"lastAnalyzedContent,omitempty" db:"last_analyzed_content" gorm:"type:text"`
	LastAnalyzedTitle   string                      `json:"lastAnalyzedTitle,omitempty" db:"last_analyzed_title" gorm:"type:text"`
}

// SEOMetadata holds the search/social metadata authored for a post. Stored as
// a jsonb column; field names are part of the persisted shape.
type SEOMetadata struct {
	MetaTitle       string   `json:"metaTitle,omitempty"`
	MetaDescription string   `json:"metaDescription,omitempty"`
	OGImage         string   `json:"ogImage,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
}

// NeedsReanalysis reports whether the post's content or title changed since
// metadata suggestions were last generated for it.
func (p *BlogPost) NeedsReanalysis() bool {
	return p.LastAnalyzedContent != p.Content || p.LastAnalyzedTitle != p.Title
}
