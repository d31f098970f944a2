package api

import (
	"encoding/json"
	"net/http"

	"github.com/avisser/personal-site-backend/database"
	"github.com/avisser/personal-site-backend/errs"
	"github.com/avisser/personal-site-backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// getAllProjects returns all portfolio projects
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"projects": projects,
			"total":    len(projects),
		})
	}
}

// getProject returns a single project by ID
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := h.loadProject(w, r)
		if !ok {
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

type projectRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	GithubLink  string   `json:"github_link"`
	DemoLink    string   `json:"demo_link"`
	Type        string   `json:"type"`
	GifLink     *string  `json:"gif_link"`
	Stack       []string `json:"stack"`
}

func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("title is required"))
			return
		}
		if req.Description == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("description is required"))
			return
		}

		project := models.Project{
			ID:          uuid.New(),
			Title:       req.Title,
			Description: req.Description,
			GithubLink:  req.GithubLink,
			DemoLink:    req.DemoLink,
			Type:        req.Type,
			GifLink:     req.GifLink,
			Stack:       datatypes.JSONSlice[string](req.Stack),
		}
		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := h.loadProject(w, r)
		if !ok {
			return
		}

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title != "" {
			project.Title = req.Title
		}
		if req.Description != "" {
			project.Description = req.Description
		}
		if req.GithubLink != "" {
			project.GithubLink = req.GithubLink
		}
		if req.DemoLink != "" {
			project.DemoLink = req.DemoLink
		}
		if req.Type != "" {
			project.Type = req.Type
		}
		if req.GifLink != nil {
			project.GifLink = req.GifLink
		}
		if req.Stack != nil {
			project.Stack = datatypes.JSONSlice[string](req.Stack)
		}

		if err := h.projectRepo.Update(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := h.loadProject(w, r)
		if !ok {
			return
		}

		if err := h.projectRepo.Delete(project.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

func (h projectHandler) loadProject(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
		return nil, false
	}

	project, err := h.projectRepo.FindByID(projectID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
		return nil, false
	}
	if project == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
		return nil, false
	}
	return project, true
}
