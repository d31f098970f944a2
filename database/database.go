package database

import (
	"github.com/avisser/personal-site-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	blogPostRepo     *BlogPostRepo
	blogCategoryRepo *BlogCategoryRepo
	blogTagRepo      *BlogTagRepo
	projectRepo      *ProjectRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		blogPostRepo:     NewBlogPostRepo(db),
		blogCategoryRepo: NewBlogCategoryRepo(db),
		blogTagRepo:      NewBlogTagRepo(db),
		projectRepo:      NewProjectRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) BlogCategoryRepo() *BlogCategoryRepo {
	return d.blogCategoryRepo
}

func (d Database) BlogTagRepo() *BlogTagRepo {
	return d.blogTagRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

// Migrate brings the schema up to date for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.BlogPost{},
		&models.BlogCategory{},
		&models.BlogTag{},
		&models.Project{},
	)
}
