package api

import (
	"net/http"

	"github.com/avisser/personal-site-backend/database"
	"github.com/avisser/personal-site-backend/errs"
	"github.com/avisser/personal-site-backend/lifecycle"
	"github.com/avisser/personal-site-backend/models"
	"github.com/avisser/personal-site-backend/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type suggestionHandler struct {
	responder      Responder
	logger         zerolog.Logger
	blogPostRepo   *database.BlogPostRepo
	manager        *lifecycle.Manager
	suggestService *services.SuggestService
}

func newSuggestionHandler(blogPostRepo *database.BlogPostRepo, manager *lifecycle.Manager, suggestService *services.SuggestService) suggestionHandler {
	logger := log.With().Str("handlerName", "suggestionHandler").Logger()

	return suggestionHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		blogPostRepo:   blogPostRepo,
		manager:        manager,
		suggestService: suggestService,
	}
}

// generateSuggestions runs the model over the post and stores the resulting
// pending suggestions. Slots the model filled replace the old slot wholesale;
// slots it skipped keep whatever was there, so previously rejected tags keep
// steering future runs.
func (h suggestionHandler) generateSuggestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.suggestService == nil {
			h.responder.WriteError(w, errs.NewApiErr(http.StatusServiceUnavailable, "suggestion service is not configured"))
			return
		}

		post, ok := h.loadPost(w, r)
		if !ok {
			return
		}

		suggestions, err := h.suggestService.SuggestMetadata(r.Context(), post)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.manager.SaveSuggestions(post, suggestions, post.Content, post.Title); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("save suggestions", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"aiSuggestions": post.AISuggestions,
			"stale":         post.NeedsReanalysis(),
		})
	}
}

// getSuggestions returns the stored suggestion slots plus a staleness flag so
// the admin UI can prompt a re-run after the post was edited.
func (h suggestionHandler) getSuggestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.loadPost(w, r)
		if !ok {
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"aiSuggestions": post.AISuggestions,
			"stale":         post.NeedsReanalysis(),
		})
	}
}

func (h suggestionHandler) approveSuggestion() http.HandlerFunc {
	return h.reviewSuggestion(h.manager.ApproveSuggestion)
}

func (h suggestionHandler) rejectSuggestion() http.HandlerFunc {
	return h.reviewSuggestion(h.manager.RejectSuggestion)
}

func (h suggestionHandler) clearSuggestion() http.HandlerFunc {
	return h.reviewSuggestion(h.manager.ClearSuggestion)
}

// reviewSuggestion handles the shared parse-load-apply shape of the three
// per-slot review endpoints.
func (h suggestionHandler) reviewSuggestion(apply func(*models.BlogPost, lifecycle.Field) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fieldPath := chi.URLParam(r, "fieldPath")
		field, ok := lifecycle.ParseFieldPath(fieldPath)
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "fieldPath", "unknown suggestion field: "+fieldPath))
			return
		}

		post, loaded := h.loadPost(w, r)
		if !loaded {
			return
		}

		if err := apply(post, field); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"aiSuggestions": post.AISuggestions,
		})
	}
}

func (h suggestionHandler) loadPost(w http.ResponseWriter, r *http.Request) (*models.BlogPost, bool) {
	postIDStr := chi.URLParam(r, "postID")
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
