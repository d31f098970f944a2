package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/avisser/personal-site-backend/database"
	"github.com/avisser/personal-site-backend/errs"
	"github.com/avisser/personal-site-backend/lifecycle"
	"github.com/avisser/personal-site-backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

const (
	maxTitleLength           = 200
	maxExcerptLength         = 500
	maxMetaTitleLength       = 60
	maxMetaDescriptionLength = 160
)

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
	manager      *lifecycle.Manager
}

func newBlogPostHandler(blogPostRepo *database.BlogPostRepo, manager *lifecycle.Manager) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
		manager:      manager,
	}
}

// PublicPost is the reader-facing shape of a post: suggestible fields are
// resolved per-slot (approved AI value or authored value) and editorial
// machinery like aiSuggestions is stripped.
type PublicPost struct {
	ID                 uuid.UUID          `json:"id"`
	Slug               string             `json:"slug"`
	Title              string             `json:"title"`
	Excerpt            string             `json:"excerpt"`
	Content            string             `json:"content"`
	Author             string             `json:"author"`
	Tags               []string           `json:"tags"`
	ReadingTimeMinutes int                `json:"readingTimeMinutes"`
	CoverImageURL      *string            `json:"coverImageUrl,omitempty"`
	CategoryID         *uuid.UUID         `json:"categoryId,omitempty"`
	ViewCount          int64              `json:"viewCount"`
	Featured           bool               `json:"featured"`
	PublishedAt        *time.Time         `json:"publishedAt,omitempty"`
	SEOMetadata        models.SEOMetadata `json:"seoMetadata"`
}

func toPublicPost(post *models.BlogPost) PublicPost {
	view := lifecycle.ResolvePublic(post)
	return PublicPost{
		ID:                 post.ID,
		Slug:               post.Slug,
		Title:              post.Title,
		Excerpt:            view.Excerpt,
		Content:            post.Content,
		Author:             post.Author,
		Tags:               view.Tags,
		ReadingTimeMinutes: post.ReadingTimeMinutes,
		CoverImageURL:      post.CoverImageURL,
		CategoryID:         post.CategoryID,
		ViewCount:          post.ViewCount,
		Featured:           post.Featured,
		PublishedAt:        post.PublishedAt,
		SEOMetadata:        view.SEOMetadata,
	}
}

// getPublishedBlogPosts lists published posts with per-field suggestion
// resolution applied. Supports category, tag and featured filters.
func (h blogPostHandler) getPublishedBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.PostFilter{Status: models.StatusPublished}

		if categoryStr := r.URL.Query().Get("category"); categoryStr != "" {
			categoryID, err := uuid.Parse(categoryStr)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid category id"))
				return
			}
			filter.CategoryID = &categoryID
		}
		filter.Tag = r.URL.Query().Get("tag")
		if featuredStr := r.URL.Query().Get("featured"); featuredStr != "" {
			featured := featuredStr == "true"
			filter.Featured = &featured
		}

		posts, err := h.blogPostRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog posts", "blog_posts", err))
			return
		}

		publicPosts := make([]PublicPost, 0, len(posts))
		for _, post := range posts {
			publicPosts = append(publicPosts, toPublicPost(post))
		}

		h.responder.WriteJSON(w, map[string]any{
			"blogPosts": publicPosts,
			"total":     len(publicPosts),
		})
	}
}

// getBlogPostBySlug returns one published post for readers.
func (h blogPostHandler) getBlogPostBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		post, err := h.blogPostRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if post == nil || post.Status != models.StatusPublished {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		h.responder.WriteJSON(w, toPublicPost(post))
	}
}

// recordView bumps the view counter for a published post.
func (h blogPostHandler) recordView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		post, err := h.blogPostRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if post == nil || post.Status != models.StatusPublished {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		if err := h.manager.RecordView(post.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("record view", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// getAllBlogPosts lists every post regardless of status, for the admin UI.
func (h blogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.PostFilter{Status: r.URL.Query().Get("status")}

		posts, err := h.blogPostRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog posts", "blog_posts", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"blogPosts": posts,
			"total":     len(posts),
		})
	}
}

// getBlogPost returns the full editorial record, suggestions included.
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.loadPost(w, r)
		if !ok {
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

type createBlogPostRequest struct {
	Title              string              `json:"title"`
	Slug               string              `json:"slug"`
	Excerpt            string              `json:"excerpt"`
	Content            string              `json:"content"`
	Author             string              `json:"author"`
	Tags               []string            `json:"tags"`
	ReadingTimeMinutes int                 `json:"readingTimeMinutes"`
	CoverImageURL      *string             `json:"coverImageUrl"`
	CategoryID         *uuid.UUID          `json:"categoryId"`
	Featured           bool                `json:"featured"`
	SEOMetadata        *models.SEOMetadata `json:"seoMetadata"`
}

// createBlogPost creates a new draft. The slug comes from the request when
// provided, otherwise it is generated from the title; either way it must be
// valid and unused.
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBlogPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("title is required"))
			return
		}
		if req.Content == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("content is required"))
			return
		}
		if req.Author == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("author is required"))
			return
		}
		if err := validatePostFields(req.Title, req.Excerpt, req.SEOMetadata); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		readingTime := req.ReadingTimeMinutes
		if readingTime <= 0 {
			readingTime = estimateReadingTime(req.Content)
		}

		now := time.Now()
		post := models.BlogPost{
			ID:                 uuid.New(),
			Title:              req.Title,
			Excerpt:            req.Excerpt,
			Content:            req.Content,
			Author:             req.Author,
			Tags:               datatypes.JSONSlice[string](req.Tags),
			ReadingTimeMinutes: readingTime,
			CoverImageURL:      req.CoverImageURL,
			CategoryID:         req.CategoryID,
			Status:             models.StatusDraft,
			Featured:           req.Featured,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if req.SEOMetadata != nil {
			post.SEOMetadata = *req.SEOMetadata
		}

		if err := h.manager.AssignSlug(&post, req.Slug); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blogPostRepo.Add(&post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create blog post", "blog_post", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, post)
	}
}

type updateBlogPostRequest struct {
	Title              *string             `json:"title"`
	Slug               *string             `json:"slug"`
	Excerpt            *string             `json:"excerpt"`
	Content            *string             `json:"content"`
	Author             *string             `json:"author"`
	Tags               *[]string           `json:"tags"`
	ReadingTimeMinutes *int                `json:"readingTimeMinutes"`
	CoverImageURL      *string             `json:"coverImageUrl"`
	CategoryID         *uuid.UUID          `json:"categoryId"`
	Featured           *bool               `json:"featured"`
	SEOMetadata        *models.SEOMetadata `json:"seoMetadata"`
}

// updateBlogPost applies a partial field update. Status, viewCount and
// publishedAt are never writable here; status changes go through the
// dedicated transition endpoints. Archived posts remain editable.
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.loadPost(w, r)
		if !ok {
			return
		}

		var req updateBlogPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title != nil {
			if *req.Title == "" {
				h.responder.WriteError(w, errs.NewBadRequestError("title cannot be empty"))
				return
			}
			post.Title = *req.Title
		}
		title := post.Title
		excerpt := post.Excerpt
		if req.Excerpt != nil {
			excerpt = *req.Excerpt
		}
		if err := validatePostFields(title, excerpt, req.SEOMetadata); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if req.Excerpt != nil {
			post.Excerpt = *req.Excerpt
		}
		if req.Content != nil {
			if *req.Content == "" {
				h.responder.WriteError(w, errs.NewBadRequestError("content cannot be empty"))
				return
			}
			post.Content = *req.Content
		}
		if req.Author != nil {
			post.Author = *req.Author
		}
		if req.Tags != nil {
			post.Tags = datatypes.JSONSlice[string](*req.Tags)
		}
		if req.ReadingTimeMinutes != nil {
			if *req.ReadingTimeMinutes <= 0 {
				h.responder.WriteError(w, errs.NewBadRequestError("readingTimeMinutes must be positive"))
				return
			}
			post.ReadingTimeMinutes = *req.ReadingTimeMinutes
		}
		if req.CoverImageURL != nil {
			post.CoverImageURL = req.CoverImageURL
		}
		if req.CategoryID != nil {
			post.CategoryID = req.CategoryID
		}
		if req.Featured != nil {
			post.Featured = *req.Featured
		}
		if req.SEOMetadata != nil {
			post.SEOMetadata = *req.SEOMetadata
		}

		if req.Slug != nil {
			if err := h.manager.AssignSlug(post, *req.Slug); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		post.UpdatedAt = time.Now()
		if err := h.blogPostRepo.Update(post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update blog post", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// deleteBlogPost deletes a blog post by ID
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.loadPost(w, r)
		if !ok {
			return
		}

		if err := h.blogPostRepo.Delete(post.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete blog post", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "blog post deleted successfully",
		})
	}
}

// transition wires the three status-machine endpoints to the lifecycle
// manager; all precondition failures come back as ApiErrs with 409.
func (h blogPostHandler) transition(apply func(*models.BlogPost) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.loadPost(w, r)
		if !ok {
			return
		}

		if err := apply(post); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

func (h blogPostHandler) publishBlogPost() http.HandlerFunc {
	return h.transition(h.manager.Publish)
}

func (h blogPostHandler) unpublishBlogPost() http.HandlerFunc {
	return h.transition(h.manager.Unpublish)
}

func (h blogPostHandler) archiveBlogPost() http.HandlerFunc {
	return h.transition(h.manager.Archive)
}

// loadPost parses the postID URL param and loads the record, writing the
// error response itself when either step fails.
func (h blogPostHandler) loadPost(w http.ResponseWriter, r *http.Request) (*models.BlogPost, bool) {
	postIDStr := chi.URLParam(r, "postID")
	if postIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing postID"))
		return nil, false
	}

	postID, err := uuid.Parse(postIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
		return nil, false
	}

	post, err := h.blogPostRepo.FindByID(postID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
		return nil, false
	}
	if post == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
		return nil, false
	}
	return post, true
}

func validatePostFields(title, excerpt string, seo *models.SEOMetadata) error {
	if len(title) > maxTitleLength {
		return errs.NewBadRequestErrorWithField("invalid field", "title", "title exceeds 200 characters")
	}
	if len(excerpt) > maxExcerptLength {
		return errs.NewBadRequestErrorWithField("invalid field", "excerpt", "excerpt exceeds 500 characters")
	}
	if seo != nil {
		if len(seo.MetaTitle) > maxMetaTitleLength {
			return errs.NewBadRequestErrorWithField("invalid field", "seoMetadata.metaTitle", "metaTitle exceeds 60 characters")
		}
		if len(seo.MetaDescription) > maxMetaDescriptionLength {
			return errs.NewBadRequestErrorWithField("invalid field", "seoMetadata.metaDescription", "metaDescription exceeds 160 characters")
		}
	}
	return nil
}

// estimateReadingTime assumes ~200 words per minute, minimum one minute.
func estimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
