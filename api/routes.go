package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes wires the reader-facing endpoints. No authentication;
// the assistant endpoints carry their own guardrail pipeline.
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/blog-posts", handlers.blogPostHandler.getPublishedBlogPosts())
		r.Get("/blog-post/{slug}", handlers.blogPostHandler.getBlogPostBySlug())
		r.Post("/blog-post/{slug}/view", handlers.blogPostHandler.recordView())
		r.Get("/blog-categories", handlers.blogCategoryHandler.getAllBlogCategories())
		r.Get("/blog-tags", handlers.blogTagHandler.getAllBlogTags())

		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())

		r.Post("/chat", handlers.assistantHandler.chat())
		r.Post("/fit-assessment", handlers.assistantHandler.assessFit())

		r.Post("/admin/login", handlers.authHandler.login())
	})
}

// setupAdminRoutes wires the editorial endpoints behind the auth middleware.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Blog post editorial endpoints
		r.Get("/blog-posts", handlers.blogPostHandler.getAllBlogPosts())
		r.Get("/blog-post/{postID}", handlers.blogPostHandler.getBlogPost())
		r.Post("/blog-post", handlers.blogPostHandler.createBlogPost())
		r.Put("/blog-post/{postID}", handlers.blogPostHandler.updateBlogPost())
		r.Delete("/blog-post/{postID}", handlers.blogPostHandler.deleteBlogPost())

		// Status transitions
		r.Post("/blog-post/{postID}/publish", handlers.blogPostHandler.publishBlogPost())
		r.Post("/blog-post/{postID}/unpublish", handlers.blogPostHandler.unpublishBlogPost())
		r.Post("/blog-post/{postID}/archive", handlers.blogPostHandler.archiveBlogPost())

		// AI suggestion slots
		r.Get("/blog-post/{postID}/suggestions", handlers.suggestionHandler.getSuggestions())
		r.Post("/blog-post/{postID}/suggestions", handlers.suggestionHandler.generateSuggestions())
		r.Post("/blog-post/{postID}/suggestion/{fieldPath}/approve", handlers.suggestionHandler.approveSuggestion())
		r.Post("/blog-post/{postID}/suggestion/{fieldPath}/reject", handlers.suggestionHandler.rejectSuggestion())
		r.Delete("/blog-post/{postID}/suggestion/{fieldPath}", handlers.suggestionHandler.clearSuggestion())

		// Taxonomy
		r.Post("/blog-category", handlers.blogCategoryHandler.createBlogCategory())
		r.Put("/blog-category/{categoryID}", handlers.blogCategoryHandler.updateBlogCategory())
		r.Delete("/blog-category/{categoryID}", handlers.blogCategoryHandler.deleteBlogCategory())
		r.Post("/blog-tag", handlers.blogTagHandler.createBlogTag())
		r.Delete("/blog-tag/{tagID}", handlers.blogTagHandler.deleteBlogTag())

		// Portfolio projects
		r.Post("/project", handlers.projectHandler.createProject())
		r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())
	})
}
