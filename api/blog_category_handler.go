package api

import (
	"encoding/json"
	"net/http"

	"github.com/avisser/personal-site-backend/database"
	"github.com/avisser/personal-site-backend/errs"
	"github.com/avisser/personal-site-backend/lifecycle"
	"github.com/avisser/personal-site-backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type blogCategoryHandler struct {
	responder        Responder
	logger           zerolog.Logger
	blogCategoryRepo *database.BlogCategoryRepo
}

func newBlogCategoryHandler(blogCategoryRepo *database.BlogCategoryRepo) blogCategoryHandler {
	logger := log.With().Str("handlerName", "blogCategoryHandler").Logger()

	return blogCategoryHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		blogCategoryRepo: blogCategoryRepo,
	}
}

// getAllBlogCategories returns all blog categories
func (h blogCategoryHandler) getAllBlogCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.blogCategoryRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog categories", "blog_categories", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"blogCategories": categories,
			"total":          len(categories),
		})
	}
}

type blogCategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// createBlogCategory creates a new category; the slug defaults to one
// generated from the name.
func (h blogCategoryHandler) createBlogCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req blogCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog category request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Name == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("name is required"))
			return
		}

		slug := req.Slug
		if slug == "" {
			slug = lifecycle.GenerateSlug(req.Name)
		}
		if err := lifecycle.ValidateSlug(slug); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		count, err := h.blogCategoryRepo.CountSlug(slug, uuid.Nil)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("check category slug", "blog_category", err))
			return
		}
		if count > 0 {
			h.responder.WriteError(w, errs.NewDuplicateSlugError(slug))
			return
		}

		category := models.BlogCategory{
			ID:          uuid.New(),
			Slug:        slug,
			Name:        req.Name,
			Description: req.Description,
		}
		if err := h.blogCategoryRepo.Add(&category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create blog category", "blog_category", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, category)
	}
}

// updateBlogCategory updates name, slug or description of a category.
func (h blogCategoryHandler) updateBlogCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, ok := h.loadCategory(w, r)
		if !ok {
			return
		}

		var req blogCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog category request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Name != "" {
			category.Name = req.Name
		}
		if req.Description != "" {
			category.Description = req.Description
		}
		if req.Slug != "" && req.Slug != category.Slug {
			if err := lifecycle.ValidateSlug(req.Slug); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			count, err := h.blogCategoryRepo.CountSlug(req.Slug, category.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("check category slug", "blog_category", err))
				return
			}
			if count > 0 {
				h.responder.WriteError(w, errs.NewDuplicateSlugError(req.Slug))
				return
			}
			category.Slug = req.Slug
		}

		if err := h.blogCategoryRepo.Update(category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update blog category", "blog_category", err))
			return
		}

		h.responder.WriteJSON(w, category)
	}
}

// deleteBlogCategory deletes a category. Posts referencing it keep their
// dangling categoryId; the reference is loose by design of the schema.
func (h blogCategoryHandler) deleteBlogCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, ok := h.loadCategory(w, r)
		if !ok {
			return
		}

		if err := h.blogCategoryRepo.Delete(category.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete blog category", "blog_category", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "blog category deleted successfully",
		})
	}
}

func (h blogCategoryHandler) loadCategory(w http.ResponseWriter, r *http.Request) (*models.BlogCategory, bool) {
	categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid categoryID"))
		return nil, false
	}

	category, err := h.blogCategoryRepo.FindByID(categoryID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find blog category", "blog_category", err))
		return nil, false
	}
	if category == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("blog category not found"))
		return nil, false
	}
	return category, true
}
