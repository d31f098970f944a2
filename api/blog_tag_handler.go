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

type blogTagHandler struct {
	responder   Responder
	logger      zerolog.Logger
	blogTagRepo *database.BlogTagRepo
}

func newBlogTagHandler(blogTagRepo *database.BlogTagRepo) blogTagHandler {
	logger := log.With().Str("handlerName", "blogTagHandler").Logger()

	return blogTagHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		blogTagRepo: blogTagRepo,
	}
}

// getAllBlogTags returns all blog tags
func (h blogTagHandler) getAllBlogTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.blogTagRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog tags", "blog_tags", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"blogTags": tags,
			"total":    len(tags),
		})
	}
}

type blogTagRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (h blogTagHandler) createBlogTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req blogTagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog tag request body")
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
		count, err := h.blogTagRepo.CountSlug(slug, uuid.Nil)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("check tag slug", "blog_tag", err))
			return
		}
		if count > 0 {
			h.responder.WriteError(w, errs.NewDuplicateSlugError(slug))
			return
		}

		tag := models.BlogTag{
			ID:   uuid.New(),
			Slug: slug,
			Name: req.Name,
		}
		if err := h.blogTagRepo.Add(&tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create blog tag", "blog_tag", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, tag)
	}
}

func (h blogTagHandler) deleteBlogTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := uuid.Parse(chi.URLParam(r, "tagID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid tagID"))
			return
		}

		tag, err := h.blogTagRepo.FindByID(tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog tag", "blog_tag", err))
			return
		}
		if tag == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog tag not found"))
			return
		}

		if err := h.blogTagRepo.Delete(tag.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete blog tag", "blog_tag", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "blog tag deleted successfully",
		})
	}
}
