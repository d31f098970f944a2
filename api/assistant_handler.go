package api

import (
	"encoding/json"
	"net/http"

	"github.com/avisser/personal-site-backend/errs"
	"github.com/avisser/personal-site-backend/guardrail"
	"github.com/avisser/personal-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// assistantHandler fronts the two model-backed public endpoints. Every input
// passes the guardrail pipeline before it gets anywhere near a prompt.
type assistantHandler struct {
	responder    Responder
	logger       zerolog.Logger
	chatService  *services.ChatService
	fitService   *services.FitService
	chatPipeline *guardrail.Pipeline
	fitPipeline  *guardrail.Pipeline
}

func newAssistantHandler(chatService *services.ChatService, fitService *services.FitService, limiter *guardrail.RateLimiter) assistantHandler {
	logger := log.With().Str("handlerName", "assistantHandler").Logger()

	return assistantHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		chatService:  chatService,
		fitService:   fitService,
		chatPipeline: guardrail.NewPipeline(limiter, guardrail.ChatConfig()),
		fitPipeline:  guardrail.NewPipeline(limiter, guardrail.FitConfig()),
	}
}

type chatRequest struct {
	Message string                 `json:"message"`
	History []services.ChatMessage `json:"history"`
}

func (h assistantHandler) chat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.chatService == nil {
			h.responder.WriteError(w, errs.NewApiErr(http.StatusServiceUnavailable, "chat service is not configured"))
			return
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode chat request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		sanitized, violation := h.chatPipeline.Check(clientKey(r), req.Message)
		if violation != nil {
			h.responder.WriteViolation(w, violation)
			return
		}

		reply, err := h.chatService.Chat(r.Context(), req.History, sanitized)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"reply": reply})
	}
}

type fitRequest struct {
	JobDescription string `json:"jobDescription"`
}

func (h assistantHandler) assessFit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.fitService == nil {
			h.responder.WriteError(w, errs.NewApiErr(http.StatusServiceUnavailable, "fit assessment service is not configured"))
			return
		}

		var req fitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode fit assessment request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		sanitized, violation := h.fitPipeline.Check(clientKey(r), req.JobDescription)
		if violation != nil {
			h.responder.WriteViolation(w, violation)
			return
		}

		assessment, err := h.fitService.AssessFit(r.Context(), sanitized)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, assessment)
	}
}
