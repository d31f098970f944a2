package api

import (
	"github.com/avisser/personal-site-backend/database"
	"github.com/avisser/personal-site-backend/guardrail"
	"github.com/avisser/personal-site-backend/lifecycle"
	"github.com/avisser/personal-site-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct.
// The model may be nil when no API key is configured; the handlers that need
// it respond 503 in that case.
func initializeHandlers(database database.Database, model services.Model, limiter *guardrail.RateLimiter, backendPassword, jwtSecret, profile string) *routeHandlers {
	manager := lifecycle.NewManager(database.BlogPostRepo())

	var chatService *services.ChatService
	var fitService *services.FitService
	var suggestService *services.SuggestService
	if model != nil {
		chatService = services.NewChatService(model, profile)
		fitService = services.NewFitService(model, profile)
		suggestService = services.NewSuggestService(model)
	}

	return &routeHandlers{
		authHandler:         newAuthHandler(backendPassword, []byte(jwtSecret)),
		blogPostHandler:     newBlogPostHandler(database.BlogPostRepo(), manager),
		blogCategoryHandler: newBlogCategoryHandler(database.BlogCategoryRepo()),
		blogTagHandler:      newBlogTagHandler(database.BlogTagRepo()),
		projectHandler:      newProjectHandler(database.ProjectRepo()),
		suggestionHandler:   newSuggestionHandler(database.BlogPostRepo(), manager, suggestService),
		assistantHandler:    newAssistantHandler(chatService, fitService, limiter),
	}
}
